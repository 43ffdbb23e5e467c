package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/stylehub/storefront/pkg/kafka"

	"github.com/stylehub/storefront/internal/domain"
)

// Kafka topics for storefront domain events. The notification service
// consumes these to surface shopper-facing toasts.
var (
	TopicCartUpdated     = pkgkafka.Topic("cart", "updated")
	TopicCartCleared     = pkgkafka.Topic("cart", "cleared")
	TopicCartCheckedOut  = pkgkafka.Topic("cart", "checked_out")
	TopicWishlistUpdated = pkgkafka.Topic("wishlist", "updated")
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
)

// Source identifier for events originating from the storefront service.
const SourceStorefront = "storefront-service"

// CartUpdatedData is the payload for a cart.updated event. Message carries
// the human-readable notification text ("item added to cart", ...).
type CartUpdatedData struct {
	UserID   string         `json:"user_id"`
	Items    []LineItemData `json:"items"`
	Count    int            `json:"count"`
	Subtotal float64        `json:"subtotal"`
	Message  string         `json:"message"`
}

// LineItemData is the line-item payload within cart events.
type LineItemData struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// CartCheckedOutData is the payload for a cart.checked_out event. The order
// is simulated; the payload records what the cart held when it was placed.
type CartCheckedOutData struct {
	UserID   string  `json:"user_id"`
	Count    int     `json:"count"`
	Subtotal float64 `json:"subtotal"`
	Message  string  `json:"message"`
}

// WishlistUpdatedData is the payload for a wishlist.updated event.
type WishlistUpdatedData struct {
	UserID  string `json:"user_id"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart, message string) error {
	items := make([]LineItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = LineItemData{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
		}
	}

	data := CartUpdatedData{
		UserID:   cart.UserID,
		Items:    items,
		Count:    cart.ItemCount(),
		Subtotal: cart.Subtotal(),
		Message:  message,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.UserID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("user_id", cart.UserID),
		slog.Int("count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, userID string) error {
	data := CartClearedData{UserID: userID, Message: "cart cleared"}

	event, err := pkgkafka.NewEvent(TopicCartCleared, userID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	return nil
}

// PublishCartCheckedOut publishes a cart.checked_out event.
func (p *Producer) PublishCartCheckedOut(ctx context.Context, userID string, count int, subtotal float64) error {
	data := CartCheckedOutData{
		UserID:   userID,
		Count:    count,
		Subtotal: subtotal,
		Message:  "order placed successfully",
	}

	event, err := pkgkafka.NewEvent(TopicCartCheckedOut, userID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.checked_out event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCheckedOut, event); err != nil {
		return fmt.Errorf("publish cart.checked_out event: %w", err)
	}

	return nil
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, wishlist *domain.Wishlist, message string) error {
	data := WishlistUpdatedData{
		UserID:  wishlist.UserID,
		Count:   len(wishlist.Items),
		Message: message,
	}

	event, err := pkgkafka.NewEvent(TopicWishlistUpdated, wishlist.UserID, AggregateTypeWishlist, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create wishlist.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistUpdated, event); err != nil {
		return fmt.Errorf("publish wishlist.updated event: %w", err)
	}

	return nil
}
