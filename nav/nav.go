// Package nav resolves the storefront's logical routing grammar
// (#/{admin|client|blog|page}[/{slug}]) into view selectors and back.
package nav

import (
	"net/url"
	"strings"
)

// Kind identifies which logical view is selected.
type Kind string

const (
	KindHome     Kind = "home"
	KindPage     Kind = "page"
	KindBlog     Kind = "blog"
	KindBlogPost Kind = "blogPost"
	KindClient   Kind = "client"
	KindAdmin    Kind = "admin"
)

// DefaultPanelSlug is the section shown when a panel is opened without one.
const DefaultPanelSlug = "dashboard"

// ViewSelector is the resolved view. It is replaced wholesale on every change.
type ViewSelector struct {
	Kind Kind
	Slug string
}

// Home is the selector every unknown fragment resolves to.
var Home = ViewSelector{Kind: KindHome}

// Resolve parses a fragment such as "#/page/about" into a ViewSelector.
// Request paths ("/page/about") are accepted as well. Anything not starting
// with "#/" or "/" is home.
func Resolve(fragment string) ViewSelector {
	rest, ok := strings.CutPrefix(fragment, "#/")
	if !ok {
		rest, ok = strings.CutPrefix(fragment, "/")
	}
	if !ok {
		return Home
	}
	path, slug, _ := strings.Cut(rest, "/")
	slug, _, _ = strings.Cut(slug, "/")
	if s, err := url.PathUnescape(slug); err == nil {
		slug = s
	}

	switch path {
	case "admin":
		if slug == "coupons" || slug == "copons" {
			return ViewSelector{Kind: KindAdmin, Slug: "coupons"}
		}
		return ViewSelector{Kind: KindAdmin, Slug: orDefault(slug)}
	case "client":
		return ViewSelector{Kind: KindClient, Slug: orDefault(slug)}
	case "blog":
		if slug != "" {
			return ViewSelector{Kind: KindBlogPost, Slug: slug}
		}
		return ViewSelector{Kind: KindBlog}
	case "page":
		if slug != "" {
			return ViewSelector{Kind: KindPage, Slug: slug}
		}
		return Home
	default:
		return Home
	}
}

// Fragment writes the fragment path for v, without the leading "#".
// Resolve(Fragment(v)) == v for every selector Resolve can produce.
func Fragment(v ViewSelector) string {
	switch v.Kind {
	case KindPage:
		if v.Slug == "" {
			return "/"
		}
		return "/page/" + url.PathEscape(v.Slug)
	case KindBlog:
		return "/blog"
	case KindBlogPost:
		if v.Slug == "" {
			return "/blog"
		}
		return "/blog/" + url.PathEscape(v.Slug)
	case KindAdmin, KindClient:
		if v.Slug == "" || v.Slug == DefaultPanelSlug {
			return "/" + string(v.Kind)
		}
		return "/" + string(v.Kind) + "/" + url.PathEscape(v.Slug)
	default:
		return "/"
	}
}

// IsPrivate reports whether the view requires an authenticated identity.
func (v ViewSelector) IsPrivate() bool {
	return v.Kind == KindAdmin || v.Kind == KindClient
}

func orDefault(slug string) string {
	if slug == "" {
		return DefaultPanelSlug
	}
	return slug
}
