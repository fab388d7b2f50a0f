package content

import (
	"context"
	"net/url"
	"path"
	"strings"
)

// FetchSettings loads site settings. On any failure it returns the complete
// DefaultSettings together with a *LoadError, so callers always have a
// renderable configuration.
func (c *Client) FetchSettings(ctx context.Context) (SiteSettings, error) {
	payload, err := c.getJSON(ctx, ResourceSettings)
	if err != nil {
		return DefaultSettings(), c.fail(ResourceSettings, err)
	}
	var r record
	switch t := payload.(type) {
	case []any:
		if len(t) > 0 {
			if m, ok := t[0].(map[string]any); ok {
				r = m
			}
		}
	case map[string]any:
		r = t
	}
	return normalizeSettings(r), nil
}

func (c *Client) FetchPages(ctx context.Context) ([]Page, error) {
	recs, err := c.fetchRecords(ctx, ResourcePages)
	if err != nil {
		return []Page{}, err
	}
	out := make([]Page, 0, len(recs))
	for _, r := range recs {
		out = append(out, c.normalizePage(r))
	}
	return out, nil
}

func (c *Client) FetchServices(ctx context.Context) ([]ServicePackage, error) {
	recs, err := c.fetchRecords(ctx, ResourceServices)
	if err != nil {
		return []ServicePackage{}, err
	}
	out := make([]ServicePackage, 0, len(recs))
	for _, r := range recs {
		out = append(out, c.normalizeService(r))
	}
	return out, nil
}

func (c *Client) FetchBanners(ctx context.Context) ([]Banner, error) {
	recs, err := c.fetchRecords(ctx, ResourceBanners)
	if err != nil {
		return []Banner{}, err
	}
	out := make([]Banner, 0, len(recs))
	for _, r := range recs {
		out = append(out, c.normalizeBanner(r))
	}
	return out, nil
}

func (c *Client) FetchPlatforms(ctx context.Context) ([]Platform, error) {
	recs, err := c.fetchRecords(ctx, ResourcePlatforms)
	if err != nil {
		return []Platform{}, err
	}
	out := make([]Platform, 0, len(recs))
	for _, r := range recs {
		out = append(out, c.normalizePlatform(r))
	}
	return out, nil
}

func (c *Client) FetchPosts(ctx context.Context) ([]BlogPost, error) {
	recs, err := c.fetchRecords(ctx, ResourcePosts)
	if err != nil {
		return []BlogPost{}, err
	}
	out := make([]BlogPost, 0, len(recs))
	for _, r := range recs {
		out = append(out, c.normalizePost(r))
	}
	return out, nil
}

func normalizeSettings(r record) SiteSettings {
	d := DefaultSettings()
	if r == nil {
		return d
	}
	s := SiteSettings{
		SiteName:       r.String(d.SiteName, "siteName", "site_name", "name"),
		LogoURL:        r.String(d.LogoURL, "logoUrl", "logo"),
		FaviconURL:     r.String(d.FaviconURL, "faviconUrl", "favicon"),
		ThemeColor:     r.String(d.ThemeColor, "themeColor", "primaryColor"),
		SEOTitle:       r.String(d.SEOTitle, "seoTitle", "metaTitle"),
		SEODescription: r.String(d.SEODescription, "seoDescription", "metaDescription"),
	}

	a := r.Object("announcement")
	s.Announcement = Announcement{
		Enabled: a.Bool(d.Announcement.Enabled, "enabled", "isActive"),
		Text:    a.String(d.Announcement.Text, "text", "message"),
		Link:    a.String(d.Announcement.Link, "link", "url"),
	}

	h := r.Object("homepageContent", "homepage")
	dh := d.Homepage

	hero := h.Object("hero")
	s.Homepage.Hero = Hero{
		Title:    hero.String(dh.Hero.Title, "title"),
		Subtitle: hero.String(dh.Hero.Subtitle, "subtitle"),
		CTAText:  hero.String(dh.Hero.CTAText, "ctaText", "buttonText"),
		CTALink:  hero.String(dh.Hero.CTALink, "ctaLink", "buttonLink"),
		ImageURL: hero.String(dh.Hero.ImageURL, "imageUrl", "image"),
	}

	f := h.Object("features")
	s.Homepage.Features = FeatureSection{SectionHeading: heading(f, dh.Features.SectionHeading), Items: dh.Features.Items}
	if items, ok := f.Objects("items"); ok {
		s.Homepage.Features.Items = make([]Feature, 0, len(items))
		for _, it := range items {
			s.Homepage.Features.Items = append(s.Homepage.Features.Items, Feature{
				Icon:        it.String("", "icon"),
				Title:       it.String("", "title"),
				Description: it.String("", "description"),
			})
		}
	}

	s.Homepage.Services = heading(h.Object("services"), dh.Services)

	hw := h.Object("howItWorks")
	s.Homepage.HowItWorks = StepSection{SectionHeading: heading(hw, dh.HowItWorks.SectionHeading), Steps: dh.HowItWorks.Steps}
	if steps, ok := hw.Objects("steps", "items"); ok {
		s.Homepage.HowItWorks.Steps = make([]Step, 0, len(steps))
		for _, st := range steps {
			s.Homepage.HowItWorks.Steps = append(s.Homepage.HowItWorks.Steps, Step{
				Title:       st.String("", "title"),
				Description: st.String("", "description"),
			})
		}
	}

	t := h.Object("testimonials")
	s.Homepage.Testimonials = TestimonialSection{SectionHeading: heading(t, dh.Testimonials.SectionHeading), Items: dh.Testimonials.Items}
	if items, ok := t.Objects("items"); ok {
		s.Homepage.Testimonials.Items = make([]Testimonial, 0, len(items))
		for _, it := range items {
			s.Homepage.Testimonials.Items = append(s.Homepage.Testimonials.Items, Testimonial{
				Name:      it.String("", "name"),
				Role:      it.String("", "role"),
				Quote:     it.String("", "quote", "text"),
				AvatarURL: it.String("", "avatarUrl", "avatar"),
				Rating:    clampRating(it.Int(5, "rating")),
			})
		}
	}
	return s
}

func heading(r record, def SectionHeading) SectionHeading {
	return SectionHeading{
		Title:    r.String(def.Title, "title"),
		Subtitle: r.String(def.Subtitle, "subtitle"),
	}
}

func clampRating(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 5:
		return 5
	}
	return n
}

func (c *Client) normalizePage(r record) Page {
	d := PageDefaults
	now := c.now()
	return Page{
		ID:          c.id(r),
		Title:       r.String(d.Title, "title"),
		Slug:        r.String(d.Slug, "slug"),
		Content:     r.String(d.Content, "content"),
		IsPublished: r.Bool(d.IsPublished, "isPublished", "published"),
		CreatedAt:   r.Time(now, "createdAt", "created_at"),
	}
}

func (c *Client) normalizeService(r record) ServicePackage {
	d := ServiceDefaults
	now := c.now()
	return ServicePackage{
		ID:           c.id(r),
		Title:        r.String(d.Title, "title", "name"),
		Description:  r.String(d.Description, "description"),
		Price:        r.Float(d.Price, "price"),
		Platform:     strings.ToLower(r.String(d.Platform, "platform")),
		IsActive:     r.Bool(d.IsActive, "isActive", "active"),
		MinOrder:     r.Int(d.MinOrder, "minOrder", "min"),
		MaxOrder:     r.Int(d.MaxOrder, "maxOrder", "max"),
		Provider:     r.String(d.Provider, "provider"),
		ProviderRate: r.Float(d.ProviderRate, "providerRate", "rate"),
		ImageURL:     r.String(d.ImageURL, "imageUrl", "image"),
		CreatedAt:    r.Time(now, "createdAt", "created_at"),
		UpdatedAt:    r.Time(now, "updatedAt", "updated_at"),
	}
}

func (c *Client) normalizeBanner(r record) Banner {
	d := BannerDefaults
	return Banner{
		ID:       c.id(r),
		Title:    r.String(d.Title, "title"),
		Subtitle: r.String(d.Subtitle, "subtitle", "description"),
		CTAText:  r.String(d.CTAText, "ctaText", "buttonText"),
		CTALink:  r.String(d.CTALink, "ctaLink", "buttonLink", "link"),
		ImageURL: r.String(d.ImageURL, "imageUrl", "image"),
		IsActive: r.Bool(d.IsActive, "isActive", "active"),
	}
}

func (c *Client) normalizePlatform(r record) Platform {
	d := PlatformDefaults
	name := r.String(d.Name, "name", "title")
	return Platform{
		ID:       c.id(r),
		Name:     name,
		Slug:     strings.ToLower(r.String(name, "slug", "key")),
		Icon:     r.String(d.Icon, "icon"),
		IsActive: r.Bool(d.IsActive, "isActive", "active"),
	}
}

func (c *Client) normalizePost(r record) BlogPost {
	d := PostDefaults
	slug := r.String("", "slug")
	if slug == "" {
		slug = slugFromLink(r.String("", "link", "url"))
	}
	status := d.Status
	if s := r.String("", "status"); s != "" {
		if strings.EqualFold(s, string(StatusPublished)) {
			status = StatusPublished
		} else {
			status = StatusDraft
		}
	} else if !r.Bool(true, "isPublished", "published") {
		status = StatusDraft
	}
	format := strings.ToLower(r.String(d.Format, "format"))
	if format != FormatMarkdown {
		format = FormatHTML
	}
	return BlogPost{
		ID:          c.id(r),
		Title:       r.String(d.Title, "title"),
		Slug:        slug,
		Excerpt:     r.String(d.Excerpt, "excerpt", "summary"),
		Content:     r.String(d.Content, "content", "body"),
		Format:      format,
		CoverImage:  r.String(d.CoverImage, "coverImage", "image", "imageUrl"),
		Author:      r.String(d.Author, "author"),
		Tags:        r.Strings("tags"),
		Status:      status,
		PublishedAt: r.Time(c.now(), "publishedAt", "date", "createdAt"),
	}
}

// id returns the record's identifier, generating one only when it has none.
func (c *Client) id(r record) string {
	if id := r.String("", "id", "_id"); id != "" {
		return id
	}
	return c.newID()
}

// slugFromLink takes the last path segment of a post link such as
// "https://example.com/blog/grow-fast/" or "/blog/grow-fast".
func slugFromLink(link string) string {
	if link == "" {
		return ""
	}
	if u, err := url.Parse(link); err == nil {
		link = u.Path
	}
	base := path.Base(strings.TrimRight(link, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return base
}
