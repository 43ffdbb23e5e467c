package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/stylehub/storefront/pkg/errors"

	"github.com/stylehub/storefront/internal/domain"
	"github.com/stylehub/storefront/internal/event"
	"github.com/stylehub/storefront/internal/repository"
)

// AddItemInput holds the parameters for adding a line item to the cart.
// Title, Image, and Price are snapshots the storefront captured at add time.
type AddItemInput struct {
	ProductID string  `json:"productId" validate:"required"`
	Title     string  `json:"title" validate:"required,min=1,max=500"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gte=1"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

// CheckoutResult summarizes the simulated order produced by a checkout.
type CheckoutResult struct {
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
}

// CartService implements the business logic for cart operations. Every
// mutation persists the full line-item list and publishes a best-effort
// notification event; publish failures are logged, never surfaced.
type CartService struct {
	repo     repository.CartRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a user. A missing or corrupted persisted
// cart is treated as empty; corruption is logged and never surfaced.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.Cart{UserID: userID, Items: items}, nil
}

// AddItem adds a line item to the user's cart. An existing item with the
// same (product, size, color) key merges by summing quantities; a different
// variant of the same product stays a distinct line item.
func (s *CartService) AddItem(ctx context.Context, userID string, input AddItemInput) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Quantity <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := &domain.Cart{UserID: userID, Items: items}

	if i := cart.FindLineIndex(input.ProductID, input.Size, input.Color); i != -1 {
		cart.Items[i].Quantity += input.Quantity
	} else {
		cart.Items = append(cart.Items, domain.LineItem{
			ProductID: input.ProductID,
			Title:     input.Title,
			Image:     input.Image,
			Price:     input.Price,
			Quantity:  input.Quantity,
			Size:      input.Size,
			Color:     input.Color,
		})
	}

	if err := s.repo.Save(ctx, userID, cart.Items); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart, "item added to cart")

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("user_id", userID),
		slog.String("product_id", input.ProductID),
		slog.String("size", input.Size),
		slog.String("color", input.Color),
		slog.Int("quantity", input.Quantity),
	)

	return cart, nil
}

// SetQuantity sets the quantity on every line item of the given product.
// A quantity of zero or less is equivalent to RemoveProduct. Setting the
// quantity of a product that is not in the cart is a no-op.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	if quantity <= 0 {
		return s.RemoveProduct(ctx, userID, productID)
	}

	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := &domain.Cart{UserID: userID, Items: items}
	if !cart.HasProduct(productID) {
		return cart, nil
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
		}
	}

	if err := s.repo.Save(ctx, userID, cart.Items); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart, "cart updated")

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveProduct removes every line item of the given product, regardless of
// variant. Removing a product that is not in the cart is a no-op.
func (s *CartService) RemoveProduct(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := items[:0:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	cart := &domain.Cart{UserID: userID, Items: kept}
	if len(kept) == len(items) {
		return cart, nil
	}

	if err := s.repo.Save(ctx, userID, cart.Items); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart, "item removed from cart")

	s.logger.InfoContext(ctx, "product removed from cart",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// ClearCart removes all items from the user's cart.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared", slog.String("user_id", userID))

	return nil
}

// Checkout simulates placing an order: it records the cart totals, clears
// the persisted cart, and publishes a checked-out event. There is no
// payment, inventory, or order record behind it.
func (s *CartService) Checkout(ctx context.Context, userID string) (*CheckoutResult, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	cart := &domain.Cart{UserID: userID, Items: items}
	result := &CheckoutResult{
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("clear cart on checkout: %w", err)
	}

	if err := s.producer.PublishCartCheckedOut(ctx, userID, result.ItemCount, result.Subtotal); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.checked_out event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart checked out",
		slog.String("user_id", userID),
		slog.Int("item_count", result.ItemCount),
		slog.Float64("subtotal", result.Subtotal),
	)

	return result, nil
}

// loadItems reads the persisted line items for a user. A missing key means
// an empty cart; a corrupted payload is logged and also treated as empty.
func (s *CartService) loadItems(ctx context.Context, userID string) ([]domain.LineItem, error) {
	items, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.LineItem{}, nil
		}
		if errors.Is(err, repository.ErrCorrupted) {
			s.logger.WarnContext(ctx, "persisted cart is corrupted, starting empty",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			return []domain.LineItem{}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return items, nil
}

func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart, message string) {
	if err := s.producer.PublishCartUpdated(ctx, cart, message); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("user_id", cart.UserID),
			slog.String("error", err.Error()),
		)
	}
}
