package domain

// Cart holds the line items a shopper intends to purchase.
type Cart struct {
	UserID string     `json:"userId"`
	Items  []LineItem `json:"items"`
}

// LineItem represents one product/variant/quantity entry in the cart.
// Title, Image, and Price are display snapshots captured at add time and are
// not re-validated against the catalog.
type LineItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Subtotal returns the sum of price × quantity over all line items.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities over all line items.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindLineIndex returns the index of the line item matching the full
// (product, size, color) variant key, or -1 if not found. This is the
// identity key used when merging additions.
func (c *Cart) FindLineIndex(productID, size, color string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size && c.Items[i].Color == color {
			return i
		}
	}
	return -1
}

// HasProduct reports whether any line item references the given product,
// regardless of variant.
func (c *Cart) HasProduct(productID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return true
		}
	}
	return false
}
