package repository

import (
	"context"
	"errors"

	"github.com/stylehub/storefront/internal/domain"
)

// ErrCorrupted indicates that the persisted payload for a store could not be
// decoded. Callers recover by treating the store as empty; the error exists
// so they can log the data loss.
var ErrCorrupted = errors.New("stored data corrupted")

// CartRepository defines the interface for cart persistence operations.
// The persisted layout is the full line-item list, JSON-encoded, under a
// fixed per-user key.
type CartRepository interface {
	// Get retrieves the line items for a user. Returns ErrNotFound (via
	// pkg/errors) when no cart has been persisted, and ErrCorrupted when the
	// stored payload cannot be decoded.
	Get(ctx context.Context, userID string) ([]domain.LineItem, error)

	// Save persists the full line-item list, overwriting any existing cart.
	Save(ctx context.Context, userID string, items []domain.LineItem) error

	// Delete removes the persisted cart for the user.
	Delete(ctx context.Context, userID string) error
}

// WishlistRepository defines the interface for wishlist persistence
// operations. Same contract as CartRepository, distinct storage key.
type WishlistRepository interface {
	Get(ctx context.Context, userID string) ([]domain.WishlistItem, error)
	Save(ctx context.Context, userID string, items []domain.WishlistItem) error
	Delete(ctx context.Context, userID string) error
}
