package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sbmops/scorecard"
	"github.com/sbmops/scorecard/pkg/reconciler"
	"github.com/sbmops/scorecard/pkg/scorecards"
)

// snapshot is one fully reconciled month. Snapshots are immutable once
// built; handlers and the metrics collector read whichever snapshot is
// current without locking.
type snapshot struct {
	Month    scorecards.Month
	Result   *reconciler.Result
	LoadedAt time.Time
}

// cache memoizes reconciled months with a TTL. A rebuild constructs the
// whole snapshot before it becomes visible, so readers always see a
// consistent month.
type cache struct {
	client scorecard.Client
	dir    string
	ttl    time.Duration

	mu      sync.Mutex
	entries map[string]*snapshot

	latest atomic.Pointer[snapshot]
}

func newCache(client scorecard.Client, dir string, ttl time.Duration) *cache {
	return &cache{
		client:  client,
		dir:     dir,
		ttl:     ttl,
		entries: make(map[string]*snapshot),
	}
}

// get returns the snapshot for a month key, reloading when the cached
// one is older than the TTL. An empty key selects the newest export.
func (c *cache) get(ctx context.Context, key string) (*snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if snap, ok := c.entries[key]; ok && time.Since(snap.LoadedAt) < c.ttl {
		return snap, nil
	}

	var month scorecards.Month
	var err error
	if key == "" {
		month, err = scorecards.Latest(c.dir)
	} else {
		month, err = scorecards.Find(c.dir, key)
	}
	if err != nil {
		return nil, err
	}

	result, err := c.client.ReconcileFile(ctx, month.Path)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{Month: month, Result: result, LoadedAt: time.Now()}
	c.entries[key] = snap
	if key == "" || c.latest.Load() == nil {
		c.latest.Store(snap)
	}
	return snap, nil
}

// peek returns the most recently loaded latest-month snapshot without
// touching disk. Nil when nothing has been loaded yet.
func (c *cache) peek() *snapshot {
	return c.latest.Load()
}
