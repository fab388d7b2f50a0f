package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultFallbackBaseURL is used for every resource except site settings
// when no gateway base URL is configured.
const DefaultFallbackBaseURL = "http://localhost:5000/api"

// ErrNoBaseURL is returned for site settings when no base URL is configured.
var ErrNoBaseURL = errors.New("content: gateway base URL not configured")

var endpoints = map[Resource]string{
	ResourceSettings:  "manage-setting",
	ResourcePages:     "managepages",
	ResourceServices:  "services-list",
	ResourceBanners:   "managepanners",
	ResourcePlatforms: "manageplatforms",
	ResourcePosts:     "blog",
}

// errorMessages are the user-facing strings recorded when a resource fails.
var errorMessages = map[Resource]string{
	ResourceSettings:  "فشل في تحميل إعدادات الموقع",
	ResourcePages:     "فشل في تحميل الصفحات",
	ResourceServices:  "فشل في تحميل الخدمات",
	ResourceBanners:   "فشل في تحميل البانرات",
	ResourcePlatforms: "فشل في تحميل المنصات",
	ResourcePosts:     "فشل في تحميل المقالات",
}

// LoadError is the failure of one resource. Message is the localized string
// shown to visitors; Err is the transport, status or decode cause.
type LoadError struct {
	Resource Resource
	Message  string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("content: load %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Client talks to the remote content gateway.
type Client struct {
	baseURL     string
	fallbackURL string
	http        *http.Client
	log         *zap.Logger
	now         func() time.Time
	newID       func() string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithFallbackBaseURL overrides DefaultFallbackBaseURL.
func WithFallbackBaseURL(u string) ClientOption {
	return func(c *Client) { c.fallbackURL = strings.TrimSpace(u) }
}

// WithLogger sets the logger for request failures and fallbacks.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// WithClock sets the time source for defaulted date fields.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

// WithIDGenerator sets how missing identifiers are filled in.
func WithIDGenerator(fn func() string) ClientOption {
	return func(c *Client) { c.newID = fn }
}

// NewClient creates a gateway client for baseURL (may be empty).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     strings.TrimSpace(baseURL),
		fallbackURL: DefaultFallbackBaseURL,
		http:        &http.Client{Timeout: 10 * time.Second},
		log:         zap.NewNop(),
		now:         time.Now,
		newID:       func() string { return "local-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpoint(res Resource) (string, error) {
	base := c.baseURL
	if base == "" {
		if res == ResourceSettings {
			return "", ErrNoBaseURL
		}
		base = c.fallbackURL
	}
	return url.JoinPath(strings.TrimRight(base, "/"), endpoints[res])
}

// getJSON issues the single GET for res and decodes the body into any.
func (c *Client) getJSON(ctx context.Context, res Resource) (any, error) {
	endpoint, err := c.endpoint(res)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway status %d", resp.StatusCode)
	}
	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", res, err)
	}
	return payload, nil
}

// fetchRecords loads an array resource. A single object is accepted as a
// one-element array; a payload of another shape is a decode failure.
func (c *Client) fetchRecords(ctx context.Context, res Resource) ([]record, error) {
	payload, err := c.getJSON(ctx, res)
	if err != nil {
		return nil, c.fail(res, err)
	}
	switch t := payload.(type) {
	case []any:
		out := make([]record, 0, len(t))
		for _, el := range t {
			if m, ok := el.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out, nil
	case map[string]any:
		if items, ok := record(t).Objects("data", "items"); ok {
			return items, nil
		}
		return []record{t}, nil
	case nil:
		return nil, nil
	}
	return nil, c.fail(res, fmt.Errorf("unexpected %T payload", payload))
}

func (c *Client) fail(res Resource, err error) *LoadError {
	le := &LoadError{Resource: res, Message: errorMessages[res], Err: err}
	if !errors.Is(err, context.Canceled) {
		c.log.Warn("content resource failed",
			zap.String("resource", string(res)),
			zap.Error(err),
		)
	}
	return le
}
