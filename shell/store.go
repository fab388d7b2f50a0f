package shell

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/storefront/content"
)

// Source is the content gateway as seen by the store.
type Source interface {
	FetchSettings(ctx context.Context) (content.SiteSettings, error)
	FetchPages(ctx context.Context) ([]content.Page, error)
	FetchServices(ctx context.Context) ([]content.ServicePackage, error)
	FetchBanners(ctx context.Context) ([]content.Banner, error)
	FetchPlatforms(ctx context.Context) ([]content.Platform, error)
	FetchPosts(ctx context.Context) ([]content.BlogPost, error)
}

// ErrSuperseded is returned by Hydrate when a newer hydration replaced it.
var ErrSuperseded = fmt.Errorf("hydration superseded: %w", context.Canceled)

// Store holds the application state and applies actions to it.
type Store struct {
	src Source
	log *zap.Logger
	now func() time.Time

	mu     sync.RWMutex
	state  State
	gen    uint64
	cancel context.CancelFunc
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for hydration summaries.
func WithStoreLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// WithStoreClock sets the time source for LoadedAt.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store fed by src. The initial state is loading.
func NewStore(src Source, opts ...StoreOption) *Store {
	s := &Store{
		src:   src,
		log:   zap.NewNop(),
		now:   time.Now,
		state: State{Loading: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a to the state.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	s.mu.Unlock()
}

// begin supersedes any running hydration and returns the new generation
// with a context scoped to it.
func (s *Store) begin(parent context.Context) (uint64, context.Context) {
	ctx, cancel := context.WithCancel(parent)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	s.cancel = cancel
	s.state = Reduce(s.state, HydrateStarted{})
	return s.gen, ctx
}

// apply dispatches a only if gen is still current and ctx is live, so a
// cancelled or superseded hydration never writes stale results.
func (s *Store) apply(ctx context.Context, gen uint64, a Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || ctx.Err() != nil {
		return false
	}
	s.state = Reduce(s.state, a)
	return true
}

// Hydrate fetches every resource concurrently. Each result is applied as
// soon as it arrives; the loading flag clears once settings, pages,
// services and banners have all settled. Platforms and posts load
// alongside without holding the flag. A failing resource never affects
// another. Hydrate returns when all fetches are done. A hydration that ends
// unsettled returns ErrSuperseded if a newer one replaced it and ctx's error
// otherwise.
func (s *Store) Hydrate(ctx context.Context) error {
	gen, ctx := s.begin(ctx)
	defer s.finish(gen)
	started := s.now()

	var core, extra errgroup.Group
	core.Go(func() error {
		v, err := s.src.FetchSettings(ctx)
		s.apply(ctx, gen, Loaded{Replace: ReplaceSettings{Settings: v}, Err: err})
		return nil
	})
	core.Go(func() error {
		v, err := s.src.FetchPages(ctx)
		s.apply(ctx, gen, Loaded{Replace: ReplacePages{Pages: v}, Err: err})
		return nil
	})
	core.Go(func() error {
		v, err := s.src.FetchServices(ctx)
		s.apply(ctx, gen, Loaded{Replace: ReplaceServices{Services: v}, Err: err})
		return nil
	})
	core.Go(func() error {
		v, err := s.src.FetchBanners(ctx)
		s.apply(ctx, gen, Loaded{Replace: ReplaceBanners{Banners: v}, Err: err})
		return nil
	})
	extra.Go(func() error {
		v, err := s.src.FetchPlatforms(ctx)
		s.apply(ctx, gen, Loaded{Replace: ReplacePlatforms{Platforms: v}, Err: err})
		return nil
	})
	extra.Go(func() error {
		v, err := s.src.FetchPosts(ctx)
		s.apply(ctx, gen, Loaded{Replace: ReplacePosts{Posts: v}, Err: err})
		return nil
	})

	_ = core.Wait()
	settled := s.apply(ctx, gen, HydrateSettled{At: s.now()})
	_ = extra.Wait()

	if !settled {
		if !s.current(gen) {
			return ErrSuperseded
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	st := s.State()
	s.log.Info("content hydrated",
		zap.Uint64("generation", gen),
		zap.Duration("took", s.now().Sub(started)),
		zap.Int("pages", len(st.Pages)),
		zap.Int("services", len(st.Services)),
		zap.Int("banners", len(st.Banners)),
		zap.String("error", st.Error),
	)
	return nil
}

func (s *Store) current(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen == s.gen
}

// finish releases the context of generation gen if it is still current. An
// unsettled current generation is aborted so Loading does not stick.
func (s *Store) finish(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.state.Loading {
		s.state = Reduce(s.state, HydrateAborted{})
	}
}

// Close cancels any hydration in flight.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
