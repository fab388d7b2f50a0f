package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// gateway serves canned bodies per endpoint; an empty body means 500.
func gateway(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok || body == "" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testClient(base string, opts ...ClientOption) *Client {
	n := 0
	opts = append([]ClientOption{
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return "gen-" + string(rune('0'+n))
		}),
	}, opts...)
	return NewClient(base, opts...)
}

func TestFetchSettingsFailureReturnsDefaults(t *testing.T) {
	t.Parallel()

	srv := gateway(t, nil)
	c := testClient(srv.URL)

	got, err := c.FetchSettings(context.Background())
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ResourceSettings, le.Resource)
	assert.Equal(t, "فشل في تحميل إعدادات الموقع", le.Message)

	if diff := cmp.Diff(DefaultSettings(), got); diff != "" {
		t.Fatalf("settings differ from defaults (-want +got):\n%s", diff)
	}
}

func TestFetchSettingsMalformedJSON(t *testing.T) {
	t.Parallel()

	srv := gateway(t, map[string]string{"/manage-setting": `[{"siteName": `})
	got, err := testClient(srv.URL).FetchSettings(context.Background())
	require.Error(t, err)
	assert.Empty(t, cmp.Diff(DefaultSettings(), got))
}

func TestFetchSettingsWithoutBaseURL(t *testing.T) {
	t.Parallel()

	got, err := testClient("").FetchSettings(context.Background())
	require.ErrorIs(t, err, ErrNoBaseURL)
	assert.Empty(t, cmp.Diff(DefaultSettings(), got))
}

func TestFetchSettingsMergesOverDefaults(t *testing.T) {
	t.Parallel()

	srv := gateway(t, map[string]string{"/manage-setting": `[{
		"siteName": "Boost",
		"themeColor": "#ff0000",
		"announcement": {"enabled": true, "text": "sale"},
		"homepageContent": {
			"hero": {"title": "Grow"},
			"features": {"items": [{"title": "Fast"}]}
		}
	}, {"siteName": "ignored"}]`})

	got, err := testClient(srv.URL).FetchSettings(context.Background())
	require.NoError(t, err)

	d := DefaultSettings()
	assert.Equal(t, "Boost", got.SiteName)
	assert.Equal(t, "#ff0000", got.ThemeColor)
	assert.Equal(t, d.LogoURL, got.LogoURL)
	assert.True(t, got.Announcement.Enabled)
	assert.Equal(t, "sale", got.Announcement.Text)
	assert.Equal(t, d.Announcement.Link, got.Announcement.Link)
	assert.Equal(t, "Grow", got.Homepage.Hero.Title)
	assert.Equal(t, d.Homepage.Hero.Subtitle, got.Homepage.Hero.Subtitle)
	assert.Equal(t, []Feature{{Title: "Fast"}}, got.Homepage.Features.Items)
	assert.Equal(t, d.Homepage.HowItWorks, got.Homepage.HowItWorks)
}

func TestFetchSettingsEmptyArrayIsAllDefaults(t *testing.T) {
	t.Parallel()

	srv := gateway(t, map[string]string{"/manage-setting": `[]`})
	got, err := testClient(srv.URL).FetchSettings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(DefaultSettings(), got))
}

func TestFetchPagesAppliesDefaults(t *testing.T) {
	t.Parallel()

	srv := gateway(t, map[string]string{"/managepages": `[
		{"_id": "p1", "title": "About", "slug": "about", "content": "<p>hi</p>", "isPublished": false, "createdAt": "2024-05-01T10:00:00Z"},
		{"slug": "terms"}
	]`})

	pages, err := testClient(srv.URL).FetchPages(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, "p1", pages[0].ID)
	assert.False(t, pages[0].IsPublished)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), pages[0].CreatedAt)

	assert.Equal(t, "gen-1", pages[1].ID)
	assert.True(t, pages[1].IsPublished, "missing publish flag defaults to published")
	assert.Equal(t, PageDefaults.Title, pages[1].Title)
	assert.Equal(t, fixedNow, pages[1].CreatedAt)
}

func TestGeneratedIDsOnlyForRecordsWithoutOne(t *testing.T) {
	t.Parallel()

	srv := gateway(t, map[string]string{"/managepages": `[
		{"id": "a", "slug": "one"},
		{"slug": "two"},
		{"_id": "b", "slug": "three"},
		{"slug": "four"}
	]`})

	pages, err := testClient(srv.URL).FetchPages(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(pages))
	for _, p := range pages {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "gen-1", "b", "gen-2"}, ids)
}

func TestFetchServicesLenientNumbers(t *testing.T) {
	t.Parallel()

	srv := gateway(t, map[string]string{"/services-list": `[
		{"id": 7, "title": "1k followers", "price": "12.5", "platform": "Instagram", "minOrder": "50", "isActive": "false"}
	]`})

	services, err := testClient(srv.URL).FetchServices(context.Background())
	require.NoError(t, err)
	require.Len(t, services, 1)

	s := services[0]
	assert.Equal(t, "7", s.ID)
	assert.InDelta(t, 12.5, s.Price, 0.0001)
	assert.Equal(t, "instagram", s.Platform)
	assert.Equal(t, 50, s.MinOrder)
	assert.Equal(t, ServiceDefaults.MaxOrder, s.MaxOrder)
	assert.False(t, s.IsActive)
	assert.Equal(t, fixedNow, s.UpdatedAt)
}

func TestFetchCollectionFailures(t *testing.T) {
	t.Parallel()

	srv := gateway(t, map[string]string{"/managepanners": `{"oops": `})
	c := testClient(srv.URL)

	banners, err := c.FetchBanners(context.Background())
	require.Error(t, err)
	assert.Empty(t, banners)
	assert.NotNil(t, banners)

	services, err := c.FetchServices(context.Background())
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "فشل في تحميل الخدمات", le.Message)
	assert.Empty(t, services)
}

func TestFallbackBaseURLForCollections(t *testing.T) {
	t.Parallel()

	srv := gateway(t, map[string]string{"/manageplatforms": `[{"name": "TikTok"}]`})
	c := testClient("", WithFallbackBaseURL(srv.URL))

	platforms, err := c.FetchPlatforms(context.Background())
	require.NoError(t, err)
	require.Len(t, platforms, 1)
	assert.Equal(t, "tiktok", platforms[0].Slug)
	assert.True(t, platforms[0].IsActive)
}

func TestFetchPostsReconcilesShapes(t *testing.T) {
	t.Parallel()

	srv := gateway(t, map[string]string{"/blog": `[
		{"_id": "a", "title": "Live", "link": "https://shop.example/blog/live-post/"},
		{"id": "b", "slug": "draft", "status": "draft"},
		{"slug": "md", "isPublished": true, "format": "Markdown", "tags": "growth, tips"}
	]`})

	posts, err := testClient(srv.URL).FetchPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "live-post", posts[0].Slug)
	assert.True(t, posts[0].Published())
	assert.Equal(t, FormatHTML, posts[0].Format)

	assert.Equal(t, StatusDraft, posts[1].Status)

	assert.Equal(t, FormatMarkdown, posts[2].Format)
	assert.Equal(t, []string{"growth", "tips"}, posts[2].Tags)
}

func TestFetchHonorsCancellation(t *testing.T) {
	t.Parallel()

	srv := gateway(t, map[string]string{"/managepages": `[]`})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pages, err := testClient(srv.URL).FetchPages(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pages)
}
