package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-restaurant-explorer/internal/models"
	"golang-restaurant-explorer/pkg/cache"
)

const viewStateNamespace = "view_state"

type redisViewStateRepository struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

// NewRedisViewStateRepository stores snapshots as JSON under view_state:<session id>.
// Reads slide the expiry.
func NewRedisViewStateRepository(c *cache.RedisCache, ttl time.Duration) ViewStateRepository {
	return &redisViewStateRepository{cache: c.WithNamespace(viewStateNamespace), ttl: ttl}
}

func (r *redisViewStateRepository) Get(ctx context.Context, sessionID string) (*models.ViewSnapshot, error) {
	var snapshot models.ViewSnapshot
	err := r.cache.GetJSON(ctx, sessionID, &snapshot, r.ttl)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load view state %s: %w", sessionID, err)
	}
	return &snapshot, nil
}

func (r *redisViewStateRepository) Save(ctx context.Context, snapshot *models.ViewSnapshot) error {
	if err := r.cache.SetJSON(ctx, snapshot.SessionID, snapshot, r.ttl); err != nil {
		return fmt.Errorf("failed to save view state %s: %w", snapshot.SessionID, err)
	}
	return nil
}

func (r *redisViewStateRepository) Delete(ctx context.Context, sessionID string) error {
	return r.cache.Delete(ctx, sessionID)
}
