// Package index provides the cached in-memory index snapshots that back
// the search engines. One Cache instance exists per entity type.
package index

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tripline/catsearch/internal/catalog"
	cerr "github.com/tripline/catsearch/internal/errors"
	"github.com/tripline/catsearch/internal/store"
)

// buildKey is the singleflight key. Each Cache has its own group, so a
// single constant key coalesces all builds of that cache.
const buildKey = "build"

// Cache holds one immutable index snapshot with a TTL. Concurrent callers
// hitting a cold or expired cache are coalesced into a single bulk read;
// a warm hit performs no I/O. Snapshots are never mutated after build —
// rebuilds replace the slice reference.
type Cache struct {
	source  store.Source
	ttl     time.Duration
	timeout time.Duration

	group singleflight.Group

	mu       sync.RWMutex
	snapshot []catalog.Record
	builtAt  time.Time
}

// NewCache creates a cache over the given source. ttl bounds snapshot
// staleness; timeout bounds the bulk read during a rebuild.
func NewCache(source store.Source, ttl, timeout time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Cache{source: source, ttl: ttl, timeout: timeout}
}

// Get returns the current index snapshot, rebuilding it when cold or
// expired. Safe for concurrent use; at most one bulk read is in flight
// at any time. When a rebuild fails and a previous snapshot exists, the
// stale snapshot is served and the failure logged; with no snapshot to
// fall back on the error is propagated.
func (c *Cache) Get(ctx context.Context) ([]catalog.Record, error) {
	if snap, ok := c.fresh(); ok {
		return snap, nil
	}

	// DoChan rather than Do so a caller can give up on a slow build
	// without cancelling it for the other waiters.
	ch := c.group.DoChan(buildKey, func() (any, error) {
		return c.build()
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]catalog.Record), nil
	}
}

// fresh returns the snapshot when it exists and is within TTL.
func (c *Cache) fresh() ([]catalog.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot != nil && time.Since(c.builtAt) < c.ttl {
		return c.snapshot, true
	}
	return nil, false
}

// build performs the bulk read and installs the new snapshot. Runs at
// most once concurrently (enforced by the singleflight group).
func (c *Cache) build() ([]catalog.Record, error) {
	// Re-check under the group: a caller that lost the race to a build
	// which just completed should not trigger another one.
	if snap, ok := c.fresh(); ok {
		return snap, nil
	}

	// The build context is detached from any single caller so that one
	// cancelled request cannot fail every coalesced waiter. The fetch
	// timeout guarantees the group is released even if the store stalls.
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	start := time.Now()
	records, err := c.source.FetchActive(ctx)
	if err != nil {
		c.mu.RLock()
		stale := c.snapshot
		c.mu.RUnlock()
		if stale != nil {
			slog.Warn("index rebuild failed, serving stale snapshot",
				slog.Int("records", len(stale)),
				slog.String("error", err.Error()))
			return stale, nil
		}
		return nil, cerr.SourceError("index build failed", err)
	}

	if records == nil {
		// An empty catalog is still a valid snapshot; nil would read
		// as "never built" and force a refetch on every query.
		records = []catalog.Record{}
	}

	c.mu.Lock()
	c.snapshot = records
	c.builtAt = time.Now()
	c.mu.Unlock()

	slog.Debug("index rebuilt",
		slog.Int("records", len(records)),
		slog.Duration("took", time.Since(start)))
	return records, nil
}

// Invalidate drops the snapshot and forgets any in-flight build, forcing
// the next Get to rebuild from the source. Escape hatch for callers that
// mutate the backing store and need immediate consistency.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.builtAt = time.Time{}
	c.mu.Unlock()
	c.group.Forget(buildKey)
}

// BuiltAt returns the timestamp of the current snapshot, zero when cold.
func (c *Cache) BuiltAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.builtAt
}
