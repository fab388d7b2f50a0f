// Package content fetches the storefront's resources from the remote content
// gateway and normalizes them into strict types with field-level defaults.
package content

import "time"

// Resource names one kind of gateway resource.
type Resource string

const (
	ResourceSettings  Resource = "settings"
	ResourcePages     Resource = "pages"
	ResourceServices  Resource = "services"
	ResourceBanners   Resource = "banners"
	ResourcePlatforms Resource = "platforms"
	ResourcePosts     Resource = "posts"
)

// SiteSettings carries branding and homepage copy.
type SiteSettings struct {
	SiteName       string
	LogoURL        string
	FaviconURL     string
	ThemeColor     string
	SEOTitle       string
	SEODescription string
	Announcement   Announcement
	Homepage       HomepageContent
}

// Announcement is the optional bar above the header.
type Announcement struct {
	Enabled bool
	Text    string
	Link    string
}

// HomepageContent holds the copy of every landing page section.
type HomepageContent struct {
	Hero         Hero
	Features     FeatureSection
	Services     SectionHeading
	HowItWorks   StepSection
	Testimonials TestimonialSection
}

// SectionHeading is a section title and subtitle.
type SectionHeading struct {
	Title    string
	Subtitle string
}

type Hero struct {
	Title    string
	Subtitle string
	CTAText  string
	CTALink  string
	ImageURL string
}

type Feature struct {
	Icon        string
	Title       string
	Description string
}

type FeatureSection struct {
	SectionHeading
	Items []Feature
}

type Step struct {
	Title       string
	Description string
}

type StepSection struct {
	SectionHeading
	Steps []Step
}

type Testimonial struct {
	Name      string
	Role      string
	Quote     string
	AvatarURL string
	Rating    int
}

type TestimonialSection struct {
	SectionHeading
	Items []Testimonial
}

// Page is a CMS page; Content is HTML.
type Page struct {
	ID          string
	Title       string
	Slug        string
	Content     string
	IsPublished bool
	CreatedAt   time.Time
}

// ServicePackage is a catalog entry.
type ServicePackage struct {
	ID           string
	Title        string
	Description  string
	Price        float64
	Platform     string
	IsActive     bool
	MinOrder     int
	MaxOrder     int
	Provider     string
	ProviderRate float64
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Banner is a promotional entry; only the first active one is shown.
type Banner struct {
	ID       string
	Title    string
	Subtitle string
	CTAText  string
	CTALink  string
	ImageURL string
	IsActive bool
}

// Platform is a lookup entity used to filter services.
type Platform struct {
	ID       string
	Name     string
	Slug     string
	Icon     string
	IsActive bool
}

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	StatusPublished PostStatus = "Published"
	StatusDraft     PostStatus = "Draft"
)

// Post body formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// BlogPost is a blog entry keyed by slug.
type BlogPost struct {
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	Format      string
	CoverImage  string
	Author      string
	Tags        []string
	Status      PostStatus
	PublishedAt time.Time
}

// Published reports whether the post may be shown publicly.
func (p BlogPost) Published() bool {
	return p.Status == StatusPublished
}
