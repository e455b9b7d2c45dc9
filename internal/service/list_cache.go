package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"videogames-be/internal/cache"
	"videogames-be/internal/models"
)

// DefaultListTTL is how long a cached list page lives without mutations.
const DefaultListTTL = 3600 * time.Second

// Cache tags, one per cached kind.
const (
	categoriesTag = "categoriesCache"
	editorsTag    = "editorsCache"
	videoGamesTag = "videoGamesCache"
)

// listCache caches list pages of one kind under "<prefix>_<page>_<limit>",
// all tagged with the kind's tag. Any mutation of the kind drops the whole tag
// since a single write can shift every page.
type listCache[T any] struct {
	cache  cache.Cache
	prefix string
	tag    string
	ttl    time.Duration
}

func newListCache[T any](c cache.Cache, prefix, tag string, ttl time.Duration) *listCache[T] {
	if ttl <= 0 {
		ttl = DefaultListTTL
	}
	return &listCache[T]{cache: c, prefix: prefix, tag: tag, ttl: ttl}
}

func (l *listCache[T]) key(page models.Page) string {
	return fmt.Sprintf("%s_%d_%d", l.prefix, page.Number, page.Limit)
}

// get returns the cached page or loads it. Cache read and write failures are
// logged and the page is served from the loader.
func (l *listCache[T]) get(ctx context.Context, page models.Page, load func(ctx context.Context, limit, offset int) ([]T, error)) ([]T, error) {
	key := l.key(page)
	if l.cache != nil {
		var cached []T
		err := cache.GetJSON(ctx, l.cache, key, &cached)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil && !errors.Is(err, cache.ErrMiss) {
			slog.WarnContext(ctx, "list cache read failed", "key", key, "error", err)
		}
	}

	items, err := load(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := cache.SetJSON(ctx, l.cache, key, items, l.ttl, l.tag); err != nil {
			slog.WarnContext(ctx, "list cache write failed", "key", key, "error", err)
		}
	}
	return items, nil
}

// invalidate drops every cached page of the kind, and of the kinds tagged
// by also, whose cached pages embed records of this kind.
func (l *listCache[T]) invalidate(ctx context.Context, also ...string) error {
	if l.cache == nil {
		return nil
	}
	tags := append([]string{l.tag}, also...)
	if err := l.cache.InvalidateByTag(ctx, tags...); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", strings.Join(tags, ", "), err)
	}
	return nil
}
