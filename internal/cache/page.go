// page.go provides a Valkey-backed full-page HTML cache for the public
// routes. Rendered pages are stored so repeat requests skip Markdown
// conversion and template execution entirely. Content edits flush the
// whole cache via the document store's change feed; silent commits
// (view-count increments, current-page moves) leave it untouched so a
// popular page is not perpetually evicted by its own traffic.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "guide:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages full-page HTML caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a key. Returns false on miss or error.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML under key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached page by scanning for the prefix.
// Any edit can reshape the sidebar, the recent list, or search, so the
// whole cache goes.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache cleared", "deleted", deleted)
	}
}

// WatchStore subscribes the cache to the store's change feed and flushes
// on every non-silent commit. Returns the subscription's cancel func.
func (pc *PageCache) WatchStore(store *docstore.Store) func() {
	return store.Subscribe(func(_ docstore.Snapshot, change docstore.Change) {
		if change.Silent {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		pc.InvalidateAll(ctx)
	})
}

// HomeKey returns the cache key for the portal home page.
func HomeKey() string {
	return "_home"
}

// CategoryKey returns the cache key for a category index page.
func CategoryKey(slug string) string {
	return fmt.Sprintf("cat/%s", slug)
}

// PageKey returns the cache key for a guide page.
func PageKey(categorySlug, pageSlug string) string {
	return fmt.Sprintf("doc/%s/%s", categorySlug, pageSlug)
}
