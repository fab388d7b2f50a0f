package storefront

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/nav"
	"github.com/eringen/storefront/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, pages []content.Page, posts []content.BlogPost) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: views.BuildURL(base)},
		{Loc: views.BuildURL(base, nav.Fragment(nav.ViewSelector{Kind: nav.KindBlog}))},
	}
	for _, p := range pages {
		u := sitemapURL{Loc: views.BuildURL(base, nav.Fragment(nav.ViewSelector{Kind: nav.KindPage, Slug: p.Slug}))}
		if !p.CreatedAt.IsZero() {
			u.LastMod = p.CreatedAt.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	for _, p := range posts {
		u := sitemapURL{Loc: views.BuildURL(base, nav.Fragment(nav.ViewSelector{Kind: nav.KindBlogPost, Slug: p.Slug}))}
		if !p.PublishedAt.IsZero() {
			u.LastMod = p.PublishedAt.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
