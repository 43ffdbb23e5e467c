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

// WishlistItemInput holds the parameters for adding a product to the
// wishlist. Title, Image, Price, and Discount are display snapshots.
type WishlistItemInput struct {
	ProductID string  `json:"productId" validate:"required"`
	Title     string  `json:"title" validate:"required,min=1,max=500"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" validate:"gte=0"`
	Discount  int     `json:"discount" validate:"gte=0,lte=100"`
}

// WishlistService implements the business logic for wishlist operations.
// The wishlist is a set keyed by product id: adds are idempotent and
// removes of absent products are no-ops.
type WishlistService struct {
	repo     repository.WishlistRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetWishlist retrieves the wishlist for a user. A missing or corrupted
// persisted wishlist is treated as empty.
func (s *WishlistService) GetWishlist(ctx context.Context, userID string) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.Wishlist{UserID: userID, Items: items}, nil
}

// AddItem adds a product to the user's wishlist. Adding a product that is
// already present leaves the wishlist unchanged.
func (s *WishlistService) AddItem(ctx context.Context, userID string, input WishlistItemInput) (*domain.Wishlist, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	wishlist := &domain.Wishlist{UserID: userID, Items: items}
	if wishlist.Contains(input.ProductID) {
		return wishlist, nil
	}

	wishlist.Items = append(wishlist.Items, domain.WishlistItem{
		ProductID: input.ProductID,
		Title:     input.Title,
		Image:     input.Image,
		Price:     input.Price,
		Discount:  input.Discount,
	})

	if err := s.repo.Save(ctx, userID, wishlist.Items); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}

	s.publishUpdated(ctx, wishlist, "item added to wishlist")

	s.logger.InfoContext(ctx, "item added to wishlist",
		slog.String("user_id", userID),
		slog.String("product_id", input.ProductID),
	)

	return wishlist, nil
}

// RemoveItem removes a product from the user's wishlist. Removing a product
// that is not present is a no-op.
func (s *WishlistService) RemoveItem(ctx context.Context, userID, productID string) (*domain.Wishlist, error) {
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

	wishlist := &domain.Wishlist{UserID: userID, Items: items}
	i := wishlist.IndexOf(productID)
	if i == -1 {
		return wishlist, nil
	}

	wishlist.Items = append(wishlist.Items[:i], wishlist.Items[i+1:]...)

	if err := s.repo.Save(ctx, userID, wishlist.Items); err != nil {
		return nil, fmt.Errorf("save wishlist: %w", err)
	}

	s.publishUpdated(ctx, wishlist, "item removed from wishlist")

	s.logger.InfoContext(ctx, "item removed from wishlist",
		slog.String("user_id", userID),
		slog.String("product_id", productID),
	)

	return wishlist, nil
}

// Toggle adds the product if it is absent and removes it if it is present.
// The returned flag reports whether the product is in the wishlist after
// the call.
func (s *WishlistService) Toggle(ctx context.Context, userID string, input WishlistItemInput) (*domain.Wishlist, bool, error) {
	if userID == "" {
		return nil, false, apperrors.InvalidInput("user id is required")
	}
	if input.ProductID == "" {
		return nil, false, apperrors.InvalidInput("product id is required")
	}

	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	wishlist := &domain.Wishlist{UserID: userID, Items: items}

	added := false
	message := "item removed from wishlist"
	if i := wishlist.IndexOf(input.ProductID); i != -1 {
		wishlist.Items = append(wishlist.Items[:i], wishlist.Items[i+1:]...)
	} else {
		wishlist.Items = append(wishlist.Items, domain.WishlistItem{
			ProductID: input.ProductID,
			Title:     input.Title,
			Image:     input.Image,
			Price:     input.Price,
			Discount:  input.Discount,
		})
		added = true
		message = "item added to wishlist"
	}

	if err := s.repo.Save(ctx, userID, wishlist.Items); err != nil {
		return nil, false, fmt.Errorf("save wishlist: %w", err)
	}

	s.publishUpdated(ctx, wishlist, message)

	s.logger.InfoContext(ctx, "wishlist toggled",
		slog.String("user_id", userID),
		slog.String("product_id", input.ProductID),
		slog.Bool("added", added),
	)

	return wishlist, added, nil
}

// Contains reports whether the product is in the user's wishlist.
func (s *WishlistService) Contains(ctx context.Context, userID, productID string) (bool, error) {
	if userID == "" {
		return false, apperrors.InvalidInput("user id is required")
	}
	if productID == "" {
		return false, apperrors.InvalidInput("product id is required")
	}

	items, err := s.loadItems(ctx, userID)
	if err != nil {
		return false, err
	}

	wishlist := &domain.Wishlist{UserID: userID, Items: items}

	return wishlist.Contains(productID), nil
}

// ClearWishlist removes all items from the user's wishlist.
func (s *WishlistService) ClearWishlist(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.InvalidInput("user id is required")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}

	s.publishUpdated(ctx, &domain.Wishlist{UserID: userID, Items: []domain.WishlistItem{}}, "wishlist cleared")

	s.logger.InfoContext(ctx, "wishlist cleared", slog.String("user_id", userID))

	return nil
}

func (s *WishlistService) loadItems(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	items, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.WishlistItem{}, nil
		}
		if errors.Is(err, repository.ErrCorrupted) {
			s.logger.WarnContext(ctx, "persisted wishlist is corrupted, starting empty",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			return []domain.WishlistItem{}, nil
		}
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return items, nil
}

func (s *WishlistService) publishUpdated(ctx context.Context, wishlist *domain.Wishlist, message string) {
	if err := s.producer.PublishWishlistUpdated(ctx, wishlist, message); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("user_id", wishlist.UserID),
			slog.String("error", err.Error()),
		)
	}
}
