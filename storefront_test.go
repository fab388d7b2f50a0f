package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/shell"
)

type fakeSource struct {
	hydrations atomic.Int32
	// gate, when set, holds pages until it is closed or ctx is done.
	gate chan struct{}
}

func (f *fakeSource) FetchSettings(context.Context) (content.SiteSettings, error) {
	f.hydrations.Add(1)
	s := content.DefaultSettings()
	s.SiteName = "Boost"
	return s, nil
}

func (f *fakeSource) FetchPages(ctx context.Context) ([]content.Page, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return []content.Page{}, ctx.Err()
		}
	}
	return []content.Page{
		{ID: "p1", Title: "About us", Slug: "about", Content: "<p>We grow accounts.</p>", IsPublished: true,
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "p2", Title: "Hidden", Slug: "hidden", IsPublished: false},
	}, nil
}

func (f *fakeSource) FetchServices(context.Context) ([]content.ServicePackage, error) {
	return []content.ServicePackage{
		{ID: "s1", Title: "Instagram followers", Price: 4.5, Platform: "instagram", IsActive: true, MinOrder: 100, MaxOrder: 10000},
		{ID: "s2", Title: "TikTok likes", Price: 2, Platform: "tiktok", IsActive: true, MinOrder: 100, MaxOrder: 5000},
	}, nil
}

func (f *fakeSource) FetchBanners(context.Context) ([]content.Banner, error) {
	return []content.Banner{{ID: "b1", Title: "Spring sale", IsActive: true}}, nil
}

func (f *fakeSource) FetchPlatforms(context.Context) ([]content.Platform, error) {
	return []content.Platform{
		{ID: "instagram", Name: "Instagram", Slug: "instagram", IsActive: true},
		{ID: "tiktok", Name: "TikTok", Slug: "tiktok", IsActive: true},
	}, nil
}

func (f *fakeSource) FetchPosts(context.Context) ([]content.BlogPost, error) {
	return []content.BlogPost{
		{ID: "a1", Title: "Grow fast", Slug: "grow-fast", Excerpt: "Tips", Content: "Body", Format: content.FormatHTML,
			Status: content.StatusPublished, PublishedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "a2", Title: "Draft", Slug: "draft", Status: content.StatusDraft},
	}, nil
}

// fakeIdentity returns whatever user the test last set.
type fakeIdentity struct {
	mu   sync.Mutex
	user *shell.User
}

func (f *fakeIdentity) User(echo.Context) *shell.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

func (f *fakeIdentity) set(u *shell.User) {
	f.mu.Lock()
	f.user = u
	f.mu.Unlock()
}

func newTestApp(t *testing.T, opts ...Option) (*App, *fakeSource) {
	t.Helper()
	src := &fakeSource{}
	opts = append([]Option{WithLogger(zaptest.NewLogger(t)), WithSource(src)}, opts...)
	a, err := New(SiteConfig{URL: "https://shop.example", SessionSecret: "test-secret"}, opts...)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, src
}

func hydrated(t *testing.T, opts ...Option) (*App, *fakeSource) {
	t.Helper()
	a, src := newTestApp(t, opts...)
	require.NoError(t, a.Cache.Reload(context.Background()))
	return a, src
}

// client carries cookies between requests against the app.
type client struct {
	t       *testing.T
	a       *App
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, a *App) *client {
	return &client{t: t, a: a, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.a.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return c.do(req)
}

func (c *client) csrf() string {
	c.get("/")
	ck, ok := c.cookies["_csrf"]
	require.True(c.t, ok, "csrf cookie")
	return ck.Value
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestNewRequiresSessionSecret(t *testing.T) {
	_, err := New(SiteConfig{}, WithLogger(zaptest.NewLogger(t)))
	require.ErrorIs(t, err, errNoSessionSecret)
}

func TestNewRejectsNonPositiveRetryLimit(t *testing.T) {
	cfg := SiteConfig{SessionSecret: "test-secret"}
	_, err := New(cfg, WithLogger(zaptest.NewLogger(t)), WithRetryLimit(3, 0))
	require.ErrorIs(t, err, errBadRetryLimit)
	_, err = New(cfg, WithLogger(zaptest.NewLogger(t)), WithRetryLimit(0, time.Minute))
	require.ErrorIs(t, err, errBadRetryLimit)
}

func TestLoadingBeforeHydration(t *testing.T) {
	a, _ := newTestApp(t)

	rec := newClient(t, a).get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, shell.MsgLoading, doc.Find(".message.loading p").Text())
	assert.Equal(t, 0, doc.Find("header").Length())
}

func TestHomeAfterHydration(t *testing.T) {
	a, _ := hydrated(t)

	rec := newClient(t, a).get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "private, no-cache", rec.Header().Get("Cache-Control"))
	doc := parse(t, rec)
	assert.Equal(t, "Boost", doc.Find(".brand span").Text())
	assert.Equal(t, 2, doc.Find("#services .service-card").Length())
	assert.Equal(t, "b1", doc.Find("section.banner").AttrOr("data-banner", ""))
}

func TestHomePlatformFilter(t *testing.T) {
	a, _ := hydrated(t)

	doc := parse(t, newClient(t, a).get("/?platform=tiktok"))
	cards := doc.Find("#services .service-card")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "s2", cards.AttrOr("data-service", ""))
}

func TestPageRoutes(t *testing.T) {
	a, _ := hydrated(t)
	c := newClient(t, a)

	rec := c.get("/page/about")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, "About us", doc.Find("article.page h1").Text())
	assert.Equal(t, "We grow accounts.", doc.Find(".prose p").Text())

	rec = c.get("/page/hidden")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, shell.MsgPageNotFound, parse(t, rec).Find(".message.not-found p").Text())

	rec = c.get("/page/about/")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/page/about", rec.Header().Get("Location"))
}

func TestBlogRoutes(t *testing.T) {
	a, _ := hydrated(t)
	c := newClient(t, a)

	doc := parse(t, c.get("/blog"))
	links := doc.Find("a.post-card")
	require.Equal(t, 1, links.Length())
	assert.Equal(t, "/blog/grow-fast", links.AttrOr("href", ""))

	rec := c.get("/blog/grow-fast")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Grow fast", parse(t, rec).Find("article.post h1").Text())

	assert.Equal(t, http.StatusNotFound, c.get("/blog/draft").Code)
}

func TestUnknownPathIsHome(t *testing.T) {
	a, _ := hydrated(t)

	rec := newClient(t, a).get("/nowhere/at/all")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, parse(t, rec).Find("section.hero").Length())
}

func TestGuestDeniedPanels(t *testing.T) {
	a, _ := hydrated(t)
	c := newClient(t, a)

	for _, path := range []string{"/admin", "/admin/coupons", "/client/orders"} {
		rec := c.get(path)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
		assert.Equal(t, "2; url=/", rec.Header().Get("Refresh"), path)
		doc := parse(t, rec)
		assert.Equal(t, shell.MsgAccessDenied, doc.Find(".message.denied p").Text(), path)
		assert.Equal(t, 0, doc.Find("section.panel").Length(), path)
	}
}

func TestUserDeniedAdmin(t *testing.T) {
	id := &fakeIdentity{}
	a, _ := hydrated(t, WithIdentity(id))
	c := newClient(t, a)
	c.get("/")
	id.set(&shell.User{ID: "u1", Role: shell.RoleUser})
	c.get("/") // consumes the login transition

	rec := c.get("/admin")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, parse(t, rec).Find("section.panel.admin").Length())
}

func TestLoginTransitionRedirectsOnce(t *testing.T) {
	id := &fakeIdentity{}
	a, _ := hydrated(t, WithIdentity(id))
	c := newClient(t, a)

	assert.Equal(t, http.StatusOK, c.get("/blog").Code)

	id.set(&shell.User{ID: "admin-1", Role: shell.RoleAdmin})
	rec := c.get("/blog")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	rec = c.get("/admin")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, parse(t, rec).Find("section.panel.admin").Length())

	assert.Equal(t, http.StatusOK, c.get("/blog").Code)
}

func TestClientLoginRedirectsToClientPanel(t *testing.T) {
	id := &fakeIdentity{}
	a, _ := hydrated(t, WithIdentity(id))
	c := newClient(t, a)
	c.get("/")

	id.set(&shell.User{ID: "u1", Role: shell.RoleUser})
	rec := c.get("/")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/client", rec.Header().Get("Location"))
}

func TestLogoutTransition(t *testing.T) {
	id := &fakeIdentity{}
	a, _ := hydrated(t, WithIdentity(id))

	c := newClient(t, a)
	id.set(&shell.User{ID: "u1", Role: shell.RoleUser})
	c.get("/client")
	require.Equal(t, http.StatusOK, c.get("/client").Code)

	id.set(nil)
	rec := c.get("/client/orders")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// Public views survive logout.
	c2 := newClient(t, a)
	id.set(&shell.User{ID: "u2", Role: shell.RoleUser})
	c2.get("/")
	c2.get("/page/about")
	id.set(nil)
	assert.Equal(t, http.StatusOK, c2.get("/page/about").Code)
}

func TestSessionIdentity(t *testing.T) {
	a, _ := hydrated(t, WithCustomRoutes(func(a *App) {
		a.Echo.GET("/test/login", func(c echo.Context) error {
			sess, err := session.Get(a.Config.SessionName, c)
			if err != nil {
				return err
			}
			sess.Values[keyUserID] = "admin-7"
			sess.Values[keyUserRole] = "admin"
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				return err
			}
			return c.NoContent(http.StatusNoContent)
		})
	}))
	c := newClient(t, a)

	require.Equal(t, http.StatusNoContent, c.get("/test/login").Code)
	rec := c.get("/")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	rec = c.get("/admin/providers")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "providers", parse(t, rec).Find("section.panel.admin").AttrOr("data-section", ""))
}

func TestRetryRequiresCSRF(t *testing.T) {
	a, _ := hydrated(t)

	rec := newClient(t, a).post("/retry", url.Values{"view": {"/page/about"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRetryRefetchesAndReturns(t *testing.T) {
	a, src := hydrated(t)
	c := newClient(t, a)
	token := c.csrf()

	rec := c.post("/retry", url.Values{"_csrf": {token}, "view": {"/page/about"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/page/about", rec.Header().Get("Location"))

	a.Cache.Wait()
	assert.Equal(t, int32(2), src.hydrations.Load())
}

func TestRetryIsRateLimited(t *testing.T) {
	a, _ := hydrated(t, WithRetryLimit(1, time.Minute))
	c := newClient(t, a)
	token := c.csrf()

	assert.Equal(t, http.StatusSeeOther, c.post("/retry", url.Values{"_csrf": {token}}).Code)
	a.Cache.Wait()
	assert.Equal(t, http.StatusTooManyRequests, c.post("/retry", url.Values{"_csrf": {token}}).Code)
}

func TestRetryRejectsForeignRedirects(t *testing.T) {
	a, _ := hydrated(t)
	c := newClient(t, a)
	token := c.csrf()

	rec := c.post("/retry", url.Values{"_csrf": {token}, "view": {"//evil.example/x"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	a.Cache.Wait()
}

func TestAdminRefresh(t *testing.T) {
	id := &fakeIdentity{}
	a, src := hydrated(t, WithIdentity(id))
	c := newClient(t, a)
	token := c.csrf()

	rec := c.post("/admin/refresh", url.Values{"_csrf": {token}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	id.set(&shell.User{ID: "admin-1", Role: shell.RoleAdmin})
	rec = c.post("/admin/refresh", url.Values{"_csrf": {token}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
	assert.Equal(t, int32(2), src.hydrations.Load())
}

func TestSitemap(t *testing.T) {
	a, _ := hydrated(t)

	rec := newClient(t, a).get("/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://shop.example/page/about</loc>")
	assert.Contains(t, body, "<loc>https://shop.example/blog/grow-fast</loc>")
	assert.Contains(t, body, "<lastmod>2024-04-02</lastmod>")
	assert.NotContains(t, body, "hidden")
	assert.NotContains(t, body, "draft")
}

func TestFeed(t *testing.T) {
	a, _ := hydrated(t)

	rec := newClient(t, a).get("/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Boost</title>")
	assert.Contains(t, body, "<title>Grow fast</title>")
	assert.Contains(t, body, "<guid>https://shop.example/blog/grow-fast</guid>")
	assert.NotContains(t, body, "Draft")
}

func TestRobots(t *testing.T) {
	a, _ := newTestApp(t)

	rec := newClient(t, a).get("/robots.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sitemap: https://shop.example/sitemap.xml")
}

func TestHealthz(t *testing.T) {
	a, _ := hydrated(t)

	rec := newClient(t, a).get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	var h healthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "ok", h.Status)
	assert.False(t, h.Loading)
	assert.Equal(t, 2, h.Services)
}

func TestEmbeddedStylesheet(t *testing.T) {
	a, _ := newTestApp(t)

	rec := newClient(t, a).get("/public/storefront.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--primary")
}

func TestStaleContentRefreshesInBackground(t *testing.T) {
	a, src := hydrated(t)
	a.Cache.now = func() time.Time { return time.Now().Add(time.Hour) }

	rec := newClient(t, a).get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	a.Cache.Wait()
	assert.Equal(t, int32(2), src.hydrations.Load())
}

func TestReloadOutlivesCaller(t *testing.T) {
	a, src := hydrated(t)
	src.gate = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Cache.Reload(ctx) }()
	require.Eventually(t, func() bool { return src.hydrations.Load() == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	close(src.gate)
	a.Cache.Wait()
	assert.False(t, a.Store.State().Loading)
	assert.Len(t, a.Store.State().Pages, 2)
}

func TestStaleRefreshAfterCancelledReload(t *testing.T) {
	a, src := hydrated(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = a.Cache.Reload(ctx)
	a.Cache.Wait()
	require.False(t, a.Store.State().Loading)
	before := src.hydrations.Load()

	a.Cache.now = func() time.Time { return time.Now().Add(time.Hour) }
	a.Cache.State()
	a.Cache.Wait()
	assert.Equal(t, before+1, src.hydrations.Load())
}

func TestAdminRefreshSupersededIsSuccess(t *testing.T) {
	id := &fakeIdentity{}
	id.set(&shell.User{ID: "admin-1", Role: shell.RoleAdmin})
	a, src := hydrated(t, WithIdentity(id))
	c := newClient(t, a)
	token := c.csrf()
	src.gate = make(chan struct{})

	res := make(chan *httptest.ResponseRecorder, 1)
	go func() { res <- c.post("/admin/refresh", url.Values{"_csrf": {token}}) }()
	require.Eventually(t, func() bool { return src.hydrations.Load() == 2 }, time.Second, 5*time.Millisecond)
	require.True(t, a.Cache.Refresh())

	rec := <-res
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))

	close(src.gate)
	a.Cache.Wait()
	assert.False(t, a.Store.State().Loading)
}
