// Package storefront serves the public shell of an SMM-panel storefront. It
// hydrates site content from a remote gateway, resolves each request path to
// a logical view and renders exactly one surface for it.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/shell"
)

const shutdownTimeout = 10 * time.Second

// App is the central storefront application. It wires together the content
// store, cache, identity, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Log    *zap.Logger
	Store  *shell.Store
	Cache  *ContentCache

	source       shell.Source
	identity     Identity
	retryLimiter *RetryLimiter
	retryMax     int
	retryWindow  time.Duration
	customRoutes []func(*App)
}

// New creates a storefront App ready to serve. Call Start to hydrate and
// listen, or use a.Echo directly as an http.Handler.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	a := &App{
		Config:      cfg,
		Echo:        echo.New(),
		retryMax:    3,
		retryWindow: time.Minute,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.retryMax <= 0 || a.retryWindow <= 0 {
		return nil, errBadRetryLimit
	}

	if a.Log == nil {
		l, err := newLogger(cfg.Debug)
		if err != nil {
			return nil, fmt.Errorf("storefront: init logger: %w", err)
		}
		a.Log = l
	}
	if a.source == nil {
		a.source = content.NewClient(cfg.APIBaseURL,
			content.WithFallbackBaseURL(fallbackOr(cfg.FallbackAPIBaseURL)),
			content.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
			content.WithLogger(a.Log.Named("content")),
		)
	}
	if a.identity == nil {
		a.identity = SessionIdentity{Name: cfg.SessionName}
	}

	a.Store = shell.NewStore(a.source, shell.WithStoreLogger(a.Log.Named("shell")))
	a.Cache = NewContentCache(a.Store, cfg.RefreshInterval, a.Log.Named("cache"))
	a.retryLimiter = NewRetryLimiter(a.retryMax, a.retryWindow)

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

func fallbackOr(u string) string {
	if u == "" {
		return content.DefaultFallbackBaseURL
	}
	return u
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Start kicks off the first hydration and serves until ctx is cancelled,
// then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	a.Cache.Refresh()

	errc := make(chan error, 1)
	go func() {
		a.Log.Info("storefront listening", zap.String("addr", a.Config.Addr), zap.String("url", a.Config.URL))
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		a.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.Log.Info("storefront shutting down")
	err := a.Echo.Shutdown(shutdownCtx)
	a.Close()
	return err
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/storefront.css", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS())))))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", a.handleHealth)

	e.POST("/retry", a.handleRetry)
	e.POST("/admin/refresh", a.handleAdminRefresh)

	e.GET("/", a.handleView)
	e.GET("/*", a.handleView)
}

// Close stops background hydration and the limiter. Call this when the app
// is shutting down.
func (a *App) Close() {
	a.Cache.Close()
	a.retryLimiter.Stop()
	_ = a.Log.Sync()
}
