package storefront

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/eringen/storefront/shell"
)

// ContentCache fronts the shell store with a refresh interval. A read of
// stale content starts one background hydration and returns what is
// already there; requests never wait on the gateway.
type ContentCache struct {
	store *shell.Store
	ttl   time.Duration
	log   *zap.Logger
	now   func() time.Time

	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	refreshing atomic.Bool
}

// NewContentCache creates a ContentCache over store. A non-positive ttl
// disables interval refreshes.
func NewContentCache(store *shell.Store, ttl time.Duration, log *zap.Logger) *ContentCache {
	ctx, cancel := context.WithCancel(context.Background())
	return &ContentCache{
		store:  store,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *ContentCache) stale(st shell.State) bool {
	return c.ttl > 0 && !st.Loading && !st.LoadedAt.IsZero() && c.now().Sub(st.LoadedAt) >= c.ttl
}

// State returns the current state, scheduling a refresh if it is stale.
func (c *ContentCache) State() shell.State {
	st := c.store.State()
	if c.stale(st) {
		c.Refresh()
	}
	return st
}

// Refresh starts a background hydration unless one is already running. It
// reports whether a new one was started.
func (c *ContentCache) Refresh() bool {
	if c.ctx.Err() != nil || !c.refreshing.CompareAndSwap(false, true) {
		return false
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.refreshing.Store(false)
		if err := c.store.Hydrate(c.ctx); err != nil && !errors.Is(err, context.Canceled) {
			c.log.Warn("background hydration", zap.Error(err))
		}
	}()
	return true
}

// Reload hydrates and waits for the result, superseding any background
// refresh. The hydration runs under the cache's lifetime; ctx only bounds the
// wait, so a caller that gives up leaves the hydration running.
func (c *ContentCache) Reload(ctx context.Context) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		done <- c.store.Hydrate(c.ctx)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until background hydrations have returned.
func (c *ContentCache) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight hydration and waits for it to stop.
func (c *ContentCache) Close() {
	c.cancel()
	c.store.Close()
	c.wg.Wait()
}
