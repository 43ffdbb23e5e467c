package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/stylehub/storefront/pkg/errors"

	"github.com/stylehub/storefront/internal/domain"
	"github.com/stylehub/storefront/internal/repository"
)

const wishlistKeyPrefix = "stylehub:wishlist:"

// WishlistRepository implements repository.WishlistRepository using Redis.
type WishlistRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWishlistRepository creates a new Redis-backed wishlist repository.
func NewWishlistRepository(client *redis.Client, ttl time.Duration) *WishlistRepository {
	return &WishlistRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the wishlist items for a user from Redis.
func (r *WishlistRepository) Get(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	key := wishlistKeyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("wishlist", userID)
		}
		return nil, fmt.Errorf("redis get wishlist: %w", err)
	}

	var items []domain.WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal wishlist: %w", repository.ErrCorrupted)
	}

	return items, nil
}

// Save persists the full wishlist to Redis with the configured TTL.
func (r *WishlistRepository) Save(ctx context.Context, userID string, items []domain.WishlistItem) error {
	key := wishlistKeyPrefix + userID

	if items == nil {
		items = []domain.WishlistItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set wishlist: %w", err)
	}

	return nil
}

// Delete removes the persisted wishlist for a user.
func (r *WishlistRepository) Delete(ctx context.Context, userID string) error {
	key := wishlistKeyPrefix + userID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del wishlist: %w", err)
	}

	return nil
}
