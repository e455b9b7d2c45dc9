package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: key not found")

//go:generate mockgen -destination=../mocks/mock_cache.go -package=mocks videogames-be/internal/cache Cache

// Cache is a key/value store whose entries can be dropped in bulk by tag.
// Invalidating a tag discards every key ever stored under it.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration, tags ...string) error
	InvalidateByTag(ctx context.Context, tags ...string) error
	Close() error
}

// SetJSON stores a JSON-serializable value in cache
func SetJSON(ctx context.Context, c Cache, key string, value interface{}, ttl time.Duration, tags ...string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return c.Set(ctx, key, string(data), ttl, tags...)
}

// GetJSON retrieves and unmarshals a JSON value from cache
func GetJSON(ctx context.Context, c Cache, key string, dest interface{}) error {
	data, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return nil
}
