package storefront

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/nav"
	"github.com/eringen/storefront/shell"
	"github.com/eringen/storefront/views"
)

const (
	msgNotFound    = "الصفحة غير موجودة"
	msgServerError = "حدث خطأ غير متوقع، يرجى المحاولة لاحقاً"
	msgTooMany     = "محاولات كثيرة، يرجى الانتظار قليلاً ثم المحاولة مرة أخرى"
	msgForbidden   = "غير مصرح لك بتنفيذ هذا الإجراء"
)

// handleView serves every logical view. The request path plays the part of
// the URL fragment.
func (a *App) handleView(c echo.Context) error {
	n := newRequestNavigator(c.Request().URL.EscapedPath())
	user := a.identity.User(c)

	if target, ok := a.observeSession(c, user, n.Current()); ok {
		n.Navigate(target)
	}
	if loc, ok := n.Location(); ok {
		return c.Redirect(http.StatusSeeOther, loc)
	}

	s := shell.Dispatch(shell.Input{
		State:    a.Cache.State(),
		View:     n.Current(),
		User:     user,
		Platform: c.QueryParam("platform"),
	})
	shell.Present(n, s)
	if loc, ok := n.Location(); ok {
		if s.Kind != shell.SurfaceAccessDenied {
			return c.Redirect(http.StatusSeeOther, loc)
		}
		// The notice is shown briefly before the browser follows.
		c.Response().Header().Set("Refresh", "2; url="+loc)
	}

	return RenderStatus(c, surfaceStatus(s.Kind), views.Surface(s, a.renderContext(c)))
}

func (a *App) renderContext(c echo.Context) views.RenderContext {
	return views.RenderContext{SiteURL: a.Config.URL, CSRFToken: CsrfToken(c)}
}

// handleRetry starts a manual refetch and sends the browser back to the
// view it came from.
func (a *App) handleRetry(c echo.Context) error {
	if !a.retryLimiter.Allow(c.RealIP()) {
		return RenderStatus(c, http.StatusTooManyRequests, views.ErrorPage(http.StatusTooManyRequests, msgTooMany))
	}
	if a.Cache.Refresh() {
		a.Log.Info("manual refetch", zap.String("ip", c.RealIP()))
	}
	back := nav.Fragment(nav.Resolve(c.FormValue("view")))
	return c.Redirect(http.StatusSeeOther, back)
}

// handleAdminRefresh refetches everything synchronously, replacing each
// collection wholesale with what the gateway now returns.
func (a *App) handleAdminRefresh(c echo.Context) error {
	if !a.identity.User(c).IsAdmin() {
		return RenderStatus(c, http.StatusForbidden, views.ErrorPage(http.StatusForbidden, msgForbidden))
	}
	// A superseding hydration is already fetching the same content.
	if err := a.Cache.Reload(c.Request().Context()); err != nil && !errors.Is(err, shell.ErrSuperseded) {
		return err
	}
	return c.Redirect(http.StatusSeeOther, nav.Fragment(nav.ViewSelector{Kind: nav.KindAdmin}))
}

type healthStatus struct {
	Status   string    `json:"status"`
	Loading  bool      `json:"loading"`
	Error    string    `json:"error,omitempty"`
	LoadedAt time.Time `json:"loadedAt"`
	Pages    int       `json:"pages"`
	Services int       `json:"services"`
	Posts    int       `json:"posts"`
}

func (a *App) handleHealth(c echo.Context) error {
	st := a.Store.State()
	h := healthStatus{
		Status:   "ok",
		Loading:  st.Loading,
		Error:    st.Error,
		LoadedAt: st.LoadedAt,
		Pages:    len(st.Pages),
		Services: len(st.Services),
		Posts:    len(st.Posts),
	}
	if st.Error != "" {
		h.Status = "degraded"
	}
	return c.JSON(http.StatusOK, h)
}

func (a *App) handleSitemap(c echo.Context) error {
	st := a.Cache.State()
	return a.renderSitemap(c, shell.PublishedPages(st.Pages), shell.PublishedPosts(st.Posts))
}

func (a *App) handleFeed(c echo.Context) error {
	st := a.Cache.State()
	settings := content.DefaultSettings()
	if st.Settings != nil {
		settings = *st.Settings
	}
	return a.renderRSS(c, settings, shell.PublishedPosts(st.Posts))
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /client\n")
	b.WriteString("Sitemap: " + views.BuildURL(a.Config.URL, "sitemap.xml") + "\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.ErrorPage(http.StatusNotFound, msgNotFound))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
		)
		_ = RenderStatus(c, code, views.ErrorPage(code, msgServerError))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
