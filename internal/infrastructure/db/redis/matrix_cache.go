package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/backoffice/console-api/internal/core/domain"
)

const matrixTTL = 15 * time.Minute

// MatrixCache caches per-actor permission matrices in Redis.
// Key format: perms:<user_id>
type MatrixCache struct {
	client *redis.Client
}

// NewMatrixCache creates a MatrixCache wrapping the given Redis client.
func NewMatrixCache(client *redis.Client) *MatrixCache {
	return &MatrixCache{client: client}
}

// Get returns the cached matrix for the actor and whether it was present.
func (c *MatrixCache) Get(ctx context.Context, actorID string) (domain.PermissionMatrix, bool, error) {
	raw, err := c.client.Get(ctx, c.key(actorID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("matrix cache get: %w", err)
	}

	var matrix domain.PermissionMatrix
	if err := json.Unmarshal(raw, &matrix); err != nil {
		// A corrupt entry behaves like a miss; the caller rebuilds from storage.
		return nil, false, fmt.Errorf("matrix cache decode: %w", err)
	}
	return matrix, true, nil
}

// Set stores the actor's matrix (expires after matrixTTL).
func (c *MatrixCache) Set(ctx context.Context, actorID string, matrix domain.PermissionMatrix) error {
	raw, err := json.Marshal(matrix)
	if err != nil {
		return fmt.Errorf("matrix cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(actorID), raw, matrixTTL).Err()
}

// Invalidate drops the actor's cached matrix so the next read rebuilds it.
func (c *MatrixCache) Invalidate(ctx context.Context, actorID string) error {
	return c.client.Del(ctx, c.key(actorID)).Err()
}

func (c *MatrixCache) key(actorID string) string {
	return "perms:" + actorID
}
