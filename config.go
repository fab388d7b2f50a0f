package storefront

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/eringen/storefront/shell"
)

// SiteConfig holds all configuration for a storefront site.
type SiteConfig struct {
	URL  string // Canonical URL (default "http://localhost:3000")
	Addr string // Listen address (default ":3000")

	APIBaseURL         string        // Content gateway base URL; settings need it
	FallbackAPIBaseURL string        // Used for collections when APIBaseURL is empty
	RequestTimeout     time.Duration // Per-request gateway timeout (default 10s)
	RefreshInterval    time.Duration // Content older than this is refetched (default 5min)

	SessionSecret string // Required: shared with the auth service that issues sessions
	SessionName   string // Cookie session name (default "storefront_session")
	CookieSecure  bool   // Set true for HTTPS

	StaticDir string // Directory served under /public (default "public")
	Debug     bool   // Development logging
}

var (
	errNoSessionSecret = errors.New("storefront: SessionSecret is required")
	errBadRetryLimit   = errors.New("storefront: retry limit and window must be positive")
)

func (c *SiteConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.RefreshInterval == 0 {
		c.RefreshInterval = 5 * time.Minute
	}
	if c.SessionName == "" {
		c.SessionName = "storefront_session"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
}

func (c SiteConfig) validate() error {
	if c.SessionSecret == "" {
		return errNoSessionSecret
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger replaces the logger built from the config.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.Log = l }
}

// WithSource replaces the gateway client, mostly for tests.
func WithSource(src shell.Source) Option {
	return func(a *App) { a.source = src }
}

// WithIdentity replaces the cookie-session identity.
func WithIdentity(id Identity) Option {
	return func(a *App) { a.identity = id }
}

// WithRetryLimit sets how many manual refetches one IP may request per window.
func WithRetryLimit(max int, window time.Duration) Option {
	return func(a *App) { a.retryMax, a.retryWindow = max, window }
}
