package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/nav"
	"github.com/eringen/storefront/shell"
)

// RenderContext is the request-scoped data a surface may need.
type RenderContext struct {
	SiteURL   string
	CSRFToken string
}

// Surface renders exactly the surface the dispatcher selected.
func Surface(s shell.Surface, rc RenderContext) templ.Component {
	meta := PageMeta{URL: BuildURL(rc.SiteURL, nav.Fragment(s.View))}

	switch s.Kind {
	case shell.SurfaceLoading, shell.SurfaceSettingsLoading:
		meta.Refresh = 2
		return Bare(meta, message("loading", s.Message))
	case shell.SurfaceError:
		return Bare(meta, errorBox(s.Message, nav.Fragment(s.View), rc.CSRFToken))
	case shell.SurfaceAccessDenied:
		meta.Refresh, meta.RefreshURL = 2, nav.Fragment(nav.Home)
		return Layout(meta, s.Settings, message("denied", s.Message))
	case shell.SurfaceNotFound:
		return Layout(meta, s.Settings, message("not-found", s.Message))
	case shell.SurfacePage:
		meta.Title = s.Page.Title + " | " + s.Settings.SiteName
		return Layout(meta, s.Settings, pageView(s.Page))
	case shell.SurfaceBlog:
		meta.Title = "المدونة | " + s.Settings.SiteName
		return Layout(meta, s.Settings, blogList(s.Posts))
	case shell.SurfaceBlogPost:
		meta.Title = s.Post.Title + " | " + s.Settings.SiteName
		meta.Description = s.Post.Excerpt
		return Layout(meta, s.Settings, postView(s.Post))
	case shell.SurfaceAdmin:
		return Layout(meta, s.Settings, adminPanel(s.Panel, s.User, rc.CSRFToken))
	case shell.SurfaceClient:
		return Layout(meta, s.Settings, clientPanel(s.Panel, s.User))
	default:
		return Layout(meta, s.Settings, home(s.Settings.Homepage, s.Home))
	}
}

// ErrorPage is used by the HTTP error handler, outside the dispatcher.
func ErrorPage(code int, msg string) templ.Component {
	return Bare(PageMeta{Title: strconv.Itoa(code)}, message("error", msg))
}

func message(class, text string) templ.Component {
	return component(func(w *writer) {
		w.wrap("div", attrs("class", "message "+class, "role", "status"), func() {
			w.el("p", text)
		})
	})
}

// errorBox offers a manual refetch that returns to back afterwards.
func errorBox(msg, back, csrf string) templ.Component {
	return component(func(w *writer) {
		w.wrap("div", attrs("class", "message error", "role", "alert"), func() {
			w.el("p", msg)
			w.wrap("form", attrs("method", "post", "action", "/retry"), func() {
				w.tag("input", "type", "hidden", "name", "_csrf", "value", csrf)
				w.tag("input", "type", "hidden", "name", "view", "value", back)
				w.el("button", "إعادة المحاولة", "type", "submit", "class", "btn")
			})
		})
	})
}

func pageView(p content.Page) templ.Component {
	return component(func(w *writer) {
		w.wrap("article", attrs("class", "page"), func() {
			w.el("h1", p.Title)
			w.wrap("div", attrs("class", "prose"), func() {
				w.render(Body(p.Content, content.FormatHTML))
			})
		})
	})
}

func blogList(posts []content.BlogPost) templ.Component {
	return component(func(w *writer) {
		w.wrap("section", attrs("class", "blog"), func() {
			w.el("h1", "المدونة")
			if len(posts) == 0 {
				w.el("p", "لا توجد مقالات حالياً", "class", "empty")
			}
			w.wrap("div", attrs("class", "post-grid"), func() {
				for _, p := range posts {
					postCard(w, p)
				}
			})
		})
	})
}

func postCard(w *writer, p content.BlogPost) {
	href := nav.Fragment(nav.ViewSelector{Kind: nav.KindBlogPost, Slug: p.Slug})
	w.wrap("a", attrs("class", "post-card", "href", href), func() {
		if p.CoverImage != "" {
			w.tag("img", "src", safeURL(p.CoverImage), "alt", p.Title, "loading", "lazy")
		}
		w.el("h2", p.Title)
		if p.Excerpt != "" {
			w.el("p", p.Excerpt)
		}
		w.el("time", p.PublishedAt.Format("2006-01-02"), "datetime", p.PublishedAt.Format("2006-01-02"))
	})
}

func postView(p content.BlogPost) templ.Component {
	return component(func(w *writer) {
		w.wrap("article", attrs("class", "post"), func() {
			w.el("h1", p.Title)
			w.wrap("p", attrs("class", "byline"), func() {
				w.text(p.Author + " · ")
				w.el("time", p.PublishedAt.Format("2006-01-02"), "datetime", p.PublishedAt.Format("2006-01-02"))
			})
			if p.CoverImage != "" {
				w.tag("img", "class", "cover", "src", safeURL(p.CoverImage), "alt", p.Title)
			}
			w.wrap("div", attrs("class", "prose"), func() {
				w.render(Body(p.Content, p.Format))
			})
			if len(p.Tags) > 0 {
				w.el("p", strings.Join(p.Tags, "، "), "class", "tags")
			}
			w.el("a", "← العودة إلى المدونة", "href", nav.Fragment(nav.ViewSelector{Kind: nav.KindBlog}))
		})
	})
}

func home(c content.HomepageContent, h shell.Home) templ.Component {
	return component(func(w *writer) {
		hero(w, c.Hero)
		if h.Banner != nil {
			banner(w, *h.Banner)
		}
		features(w, c.Features)
		services(w, c.Services, h)
		howItWorks(w, c.HowItWorks)
		testimonials(w, c.Testimonials)
	})
}

func hero(w *writer, h content.Hero) {
	w.wrap("section", attrs("class", "hero"), func() {
		w.el("h1", h.Title)
		w.el("p", h.Subtitle)
		if h.CTAText != "" {
			w.el("a", h.CTAText, "class", "btn", "href", safeURL(h.CTALink))
		}
		if h.ImageURL != "" {
			w.tag("img", "src", safeURL(h.ImageURL), "alt", h.Title)
		}
	})
}

func banner(w *writer, b content.Banner) {
	w.wrap("section", attrs("class", "banner", "data-banner", b.ID), func() {
		if b.ImageURL != "" {
			w.tag("img", "src", safeURL(b.ImageURL), "alt", b.Title)
		}
		w.el("h2", b.Title)
		if b.Subtitle != "" {
			w.el("p", b.Subtitle)
		}
		w.el("a", b.CTAText, "class", "btn", "href", safeURL(b.CTALink))
	})
}

func sectionHeading(w *writer, h content.SectionHeading) {
	w.el("h2", h.Title)
	if h.Subtitle != "" {
		w.el("p", h.Subtitle, "class", "subtitle")
	}
}

func features(w *writer, f content.FeatureSection) {
	w.wrap("section", attrs("class", "features"), func() {
		sectionHeading(w, f.SectionHeading)
		w.wrap("div", attrs("class", "grid"), func() {
			for _, it := range f.Items {
				w.wrap("div", attrs("class", "feature"), func() {
					if it.Icon != "" {
						w.el("span", it.Icon, "class", "icon")
					}
					w.el("h3", it.Title)
					w.el("p", it.Description)
				})
			}
		})
	})
}

func services(w *writer, heading content.SectionHeading, h shell.Home) {
	w.wrap("section", attrs("class", "services", "id", "services"), func() {
		sectionHeading(w, heading)
		if len(h.Platforms) > 0 {
			w.wrap("div", attrs("class", "platform-filter"), func() {
				w.el("a", "الكل", "href", "/#services", "class", activeClass(h.Platform == ""))
				for _, p := range h.Platforms {
					w.el("a", p.Name, "href", "/?platform="+templ.EscapeString(p.Slug)+"#services", "class", activeClass(h.Platform == p.Slug))
				}
			})
		}
		if len(h.Services) == 0 {
			w.el("p", "لا توجد خدمات متاحة حالياً", "class", "empty")
		}
		w.wrap("div", attrs("class", "grid"), func() {
			for _, s := range h.Services {
				serviceCard(w, s)
			}
		})
	})
}

func serviceCard(w *writer, s content.ServicePackage) {
	w.wrap("div", attrs("class", "service-card", "data-service", s.ID, "data-platform", s.Platform), func() {
		if s.ImageURL != "" {
			w.tag("img", "src", safeURL(s.ImageURL), "alt", s.Title, "loading", "lazy")
		}
		w.el("h3", s.Title)
		if s.Description != "" {
			w.el("p", s.Description)
		}
		w.el("p", FormatPrice(s.Price), "class", "price")
		w.el("p", "الحد الأدنى "+strconv.Itoa(s.MinOrder)+" · الحد الأقصى "+strconv.Itoa(s.MaxOrder), "class", "limits")
		w.el("a", "اطلب الآن", "class", "btn", "href", nav.Fragment(nav.ViewSelector{Kind: nav.KindClient, Slug: "new-order"}))
	})
}

func activeClass(active bool) string {
	if active {
		return "chip active"
	}
	return "chip"
}

func howItWorks(w *writer, s content.StepSection) {
	w.wrap("section", attrs("class", "how-it-works"), func() {
		sectionHeading(w, s.SectionHeading)
		w.wrap("ol", nil, func() {
			for _, st := range s.Steps {
				w.wrap("li", nil, func() {
					w.el("h3", st.Title)
					w.el("p", st.Description)
				})
			}
		})
	})
}

func testimonials(w *writer, t content.TestimonialSection) {
	w.wrap("section", attrs("class", "testimonials"), func() {
		sectionHeading(w, t.SectionHeading)
		w.wrap("div", attrs("class", "grid"), func() {
			for _, it := range t.Items {
				w.wrap("figure", attrs("class", "testimonial"), func() {
					w.el("blockquote", it.Quote)
					w.wrap("figcaption", nil, func() {
						w.el("strong", it.Name)
						if it.Role != "" {
							w.el("span", it.Role)
						}
						w.el("span", strings.Repeat("★", it.Rating), "class", "rating", "aria-label", strconv.Itoa(it.Rating)+"/5")
					})
				})
			}
		})
	})
}

func adminPanel(p shell.Panel, u *shell.User, csrf string) templ.Component {
	return component(func(w *writer) {
		w.wrap("section", attrs("class", "panel admin", "data-section", p.Section), func() {
			w.el("h1", "لوحة التحكم")
			if u != nil {
				w.el("p", "مرحباً "+displayName(u))
			}
			w.wrap("ul", attrs("class", "stats"), func() {
				w.el("li", "الصفحات: "+strconv.Itoa(p.Pages))
				w.el("li", "الخدمات: "+strconv.Itoa(p.Services))
				w.el("li", "البانرات: "+strconv.Itoa(p.Banners))
				w.el("li", "المقالات: "+strconv.Itoa(p.Posts))
			})
			w.wrap("form", attrs("method", "post", "action", "/admin/refresh"), func() {
				w.tag("input", "type", "hidden", "name", "_csrf", "value", csrf)
				w.el("button", "تحديث المحتوى", "type", "submit", "class", "btn")
			})
		})
	})
}

func clientPanel(p shell.Panel, u *shell.User) templ.Component {
	return component(func(w *writer) {
		w.wrap("section", attrs("class", "panel client", "data-section", p.Section), func() {
			w.el("h1", "حسابي")
			if u != nil {
				w.el("p", "مرحباً "+displayName(u))
			}
			w.el("p", "الخدمات المتاحة: "+strconv.Itoa(p.Services))
		})
	})
}

func displayName(u *shell.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}
