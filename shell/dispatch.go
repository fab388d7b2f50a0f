package shell

import (
	"strings"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/nav"
)

// Messages shown by the dispatcher.
const (
	MsgLoading         = "جارٍ التحميل..."
	MsgLoadingSettings = "جارٍ تحميل إعدادات الموقع..."
	MsgAccessDenied    = "غير مصرح لك بالوصول إلى هذه الصفحة. جارٍ التحويل إلى الصفحة الرئيسية..."
	MsgPageNotFound    = "الصفحة غير موجودة"
	MsgPostNotFound    = "المقال غير موجود"
)

// SurfaceKind names what the dispatcher decided to render.
type SurfaceKind string

const (
	SurfaceLoading         SurfaceKind = "loading"
	SurfaceError           SurfaceKind = "error"
	SurfaceSettingsLoading SurfaceKind = "settingsLoading"
	SurfaceAccessDenied    SurfaceKind = "accessDenied"
	SurfaceAdmin           SurfaceKind = "admin"
	SurfaceClient          SurfaceKind = "client"
	SurfacePage            SurfaceKind = "page"
	SurfaceBlog            SurfaceKind = "blog"
	SurfaceBlogPost        SurfaceKind = "blogPost"
	SurfaceNotFound        SurfaceKind = "notFound"
	SurfaceHome            SurfaceKind = "home"
)

// Input is everything the dispatcher looks at.
type Input struct {
	State State
	View  nav.ViewSelector
	User  *User
	// Platform optionally narrows the home services section.
	Platform string
}

// Surface is the single renderable result of a dispatch.
type Surface struct {
	Kind     SurfaceKind
	View     nav.ViewSelector
	Message  string
	Settings content.SiteSettings
	User     *User
	Page     content.Page
	Post     content.BlogPost
	Posts    []content.BlogPost
	Home     Home
	Panel    Panel
	// Redirect is set when the surface must be followed by navigation.
	Redirect *nav.ViewSelector
}

// Home is the composed landing page.
type Home struct {
	Banner    *content.Banner
	Services  []content.ServicePackage
	Platforms []content.Platform
	Platform  string
}

// Panel is what the thin admin and client entry points show.
type Panel struct {
	Section  string
	Pages    int
	Services int
	Banners  int
	Posts    int
}

// Dispatch picks exactly one surface for in.
func Dispatch(in Input) Surface {
	st := in.State
	empty := len(st.Pages) == 0 && len(st.Services) == 0

	switch {
	case st.Loading && empty:
		return Surface{Kind: SurfaceLoading, View: in.View, Message: MsgLoading}
	case st.Error != "" && empty:
		return Surface{Kind: SurfaceError, View: in.View, Message: st.Error}
	case st.Settings == nil:
		return Surface{Kind: SurfaceSettingsLoading, View: in.View, Message: MsgLoadingSettings}
	}

	s := Surface{Kind: SurfaceHome, View: in.View, Settings: *st.Settings, User: in.User}

	switch in.View.Kind {
	case nav.KindAdmin:
		if !in.User.IsAdmin() {
			return denied(s)
		}
		s.Kind = SurfaceAdmin
		s.Panel = panel(st, in.View.Slug)
	case nav.KindClient:
		if in.User == nil {
			return denied(s)
		}
		s.Kind = SurfaceClient
		s.Panel = panel(st, in.View.Slug)
	case nav.KindPage:
		page, ok := FindPage(st.Pages, in.View.Slug)
		if !ok {
			s.Kind, s.Message = SurfaceNotFound, MsgPageNotFound
			return s
		}
		s.Kind, s.Page = SurfacePage, page
	case nav.KindBlog:
		s.Kind, s.Posts = SurfaceBlog, PublishedPosts(st.Posts)
	case nav.KindBlogPost:
		post, ok := FindPost(st.Posts, in.View.Slug)
		if !ok {
			s.Kind, s.Message = SurfaceNotFound, MsgPostNotFound
			return s
		}
		s.Kind, s.Post = SurfaceBlogPost, post
	default:
		s.Home = composeHome(st, in.Platform)
	}
	return s
}

func denied(s Surface) Surface {
	home := nav.Home
	return Surface{
		Kind:     SurfaceAccessDenied,
		View:     s.View,
		Message:  MsgAccessDenied,
		Settings: s.Settings,
		Redirect: &home,
	}
}

func panel(st State, section string) Panel {
	return Panel{
		Section:  section,
		Pages:    len(st.Pages),
		Services: len(st.Services),
		Banners:  len(st.Banners),
		Posts:    len(st.Posts),
	}
}

// Present issues the surface's redirect, if any, through n. It navigates at
// most once per call.
func Present(n nav.Navigator, s Surface) {
	if s.Redirect != nil {
		n.Navigate(*s.Redirect)
	}
}

// SelectPost is the blog list's post-selection callback.
func SelectPost(n nav.Navigator, slug string) {
	n.Navigate(nav.ViewSelector{Kind: nav.KindBlogPost, Slug: slug})
}

// FindPage returns the published page with slug.
func FindPage(pages []content.Page, slug string) (content.Page, bool) {
	for _, p := range pages {
		if p.Slug == slug && p.IsPublished {
			return p, true
		}
	}
	return content.Page{}, false
}

// FindPost returns the published post with slug.
func FindPost(posts []content.BlogPost, slug string) (content.BlogPost, bool) {
	for _, p := range posts {
		if p.Slug == slug && p.Published() {
			return p, true
		}
	}
	return content.BlogPost{}, false
}

// PublishedPosts filters out drafts and posts without a slug.
func PublishedPosts(posts []content.BlogPost) []content.BlogPost {
	var out []content.BlogPost
	for _, p := range posts {
		if p.Published() && p.Slug != "" {
			out = append(out, p)
		}
	}
	return out
}

// PublishedPages filters out unpublished pages and pages without a slug.
func PublishedPages(pages []content.Page) []content.Page {
	var out []content.Page
	for _, p := range pages {
		if p.IsPublished && p.Slug != "" {
			out = append(out, p)
		}
	}
	return out
}

func composeHome(st State, platform string) Home {
	platform = strings.ToLower(strings.TrimSpace(platform))
	h := Home{Platform: platform}
	for i := range st.Banners {
		if st.Banners[i].IsActive {
			b := st.Banners[i]
			h.Banner = &b
			break
		}
	}
	for _, p := range st.Platforms {
		if p.IsActive {
			h.Platforms = append(h.Platforms, p)
		}
	}
	for _, s := range st.Services {
		if !s.IsActive {
			continue
		}
		if platform != "" && s.Platform != platform {
			continue
		}
		h.Services = append(h.Services, s)
	}
	return h
}
