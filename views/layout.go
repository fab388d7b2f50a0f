package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/nav"
)

// hashRoutePattern matches the legacy fragments that map onto a local path.
// Anything else, "#//host" included, is left alone.
const hashRoutePattern = `^#/(admin|client|blog|page)(/[^/\\]*)?$`

// hashRouteScript turns legacy "#/page/x" links into real paths.
var hashRouteScript = `<script>(function(){var h=location.hash;if(new RegExp(` +
	strconv.Quote(hashRoutePattern) +
	`).test(h)){location.replace(h.slice(1));}})();</script>`

// Layout wraps body in the themed document shell.
func Layout(meta PageMeta, s content.SiteSettings, body templ.Component) templ.Component {
	return component(func(w *writer) {
		document(w, meta, s, func() {
			if s.Announcement.Enabled && s.Announcement.Text != "" {
				w.wrap("div", attrs("class", "announcement"), func() {
					w.el("a", s.Announcement.Text, "href", safeURL(s.Announcement.Link))
				})
			}
			header(w, s)
			w.wrap("main", attrs("class", "container"), func() { w.render(body) })
			footer(w, s)
		})
	})
}

// Bare is the document used before site settings exist.
func Bare(meta PageMeta, body templ.Component) templ.Component {
	return component(func(w *writer) {
		document(w, meta, content.SiteSettings{ThemeColor: content.DefaultThemeColor}, func() {
			w.wrap("main", attrs("class", "container centered"), func() { w.render(body) })
		})
	})
}

func document(w *writer, meta PageMeta, s content.SiteSettings, body func()) {
	w.raw("<!doctype html>")
	w.wrap("html", attrs("lang", "ar", "dir", "rtl"), func() {
		head(w, meta, s)
		w.wrap("body", nil, body)
	})
}

func head(w *writer, meta PageMeta, s content.SiteSettings) {
	title := meta.Title
	if title == "" {
		title = s.SEOTitle
	}
	desc := meta.Description
	if desc == "" {
		desc = s.SEODescription
	}
	w.wrap("head", nil, func() {
		w.tag("meta", "charset", "utf-8")
		w.tag("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		w.el("title", title)
		if desc != "" {
			w.tag("meta", "name", "description", "content", desc)
		}
		if meta.URL != "" {
			w.tag("link", "rel", "canonical", "href", meta.URL)
		}
		if meta.Refresh > 0 {
			v := strconv.Itoa(meta.Refresh)
			if meta.RefreshURL != "" {
				v += "; url=" + meta.RefreshURL
			}
			w.tag("meta", "http-equiv", "refresh", "content", v)
		}
		if s.FaviconURL != "" {
			w.tag("link", "rel", "icon", "href", safeURL(s.FaviconURL))
		}
		w.tag("link", "rel", "stylesheet", "href", "/public/storefront.css")
		w.wrap("style", nil, func() {
			w.raw(":root{")
			for _, v := range ThemeVars(s.ThemeColor) {
				w.raw(v.Name, ":", v.Value, ";")
			}
			w.raw("}")
		})
		w.raw(hashRouteScript)
	})
}

func header(w *writer, s content.SiteSettings) {
	w.wrap("header", attrs("class", "site-header"), func() {
		w.wrap("a", attrs("class", "brand", "href", nav.Fragment(nav.Home)), func() {
			if s.LogoURL != "" {
				w.tag("img", "src", safeURL(s.LogoURL), "alt", s.SiteName, "class", "logo")
			}
			w.el("span", s.SiteName)
		})
		w.wrap("nav", nil, func() {
			w.el("a", "الرئيسية", "href", nav.Fragment(nav.Home))
			w.el("a", "الخدمات", "href", "/#services")
			w.el("a", "المدونة", "href", nav.Fragment(nav.ViewSelector{Kind: nav.KindBlog}))
			w.el("a", "حسابي", "href", nav.Fragment(nav.ViewSelector{Kind: nav.KindClient}))
		})
	})
}

func footer(w *writer, s content.SiteSettings) {
	w.wrap("footer", attrs("class", "site-footer"), func() {
		w.el("p", "© "+s.SiteName)
	})
}
