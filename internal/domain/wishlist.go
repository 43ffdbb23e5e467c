package domain

// Wishlist holds the products a shopper saved for later.
type Wishlist struct {
	UserID string         `json:"userId"`
	Items  []WishlistItem `json:"items"`
}

// WishlistItem is a saved-for-later product snapshot. Entries are unique by
// ProductID alone; the wishlist is variant-agnostic.
type WishlistItem struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Discount  int     `json:"discount,omitempty"`
}

// Contains reports whether the wishlist holds an entry for the given product.
func (w *Wishlist) Contains(productID string) bool {
	return w.IndexOf(productID) != -1
}

// IndexOf returns the index of the entry for the given product, or -1.
func (w *Wishlist) IndexOf(productID string) int {
	for i := range w.Items {
		if w.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
