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

const cartKeyPrefix = "stylehub:cart:"

// CartRepository implements repository.CartRepository using Redis. The value
// is the JSON-encoded line-item array, mirroring the storefront's persisted
// state layout.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the line items for a user from Redis.
func (r *CartRepository) Get(ctx context.Context, userID string) ([]domain.LineItem, error) {
	key := cartKeyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", userID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", repository.ErrCorrupted)
	}

	return items, nil
}

// Save persists the full line-item list to Redis with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, userID string, items []domain.LineItem) error {
	key := cartKeyPrefix + userID

	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Delete removes the persisted cart for a user.
func (r *CartRepository) Delete(ctx context.Context, userID string) error {
	key := cartKeyPrefix + userID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}

	return nil
}
