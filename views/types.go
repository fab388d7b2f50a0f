// Package views renders the storefront surfaces as templ components.
package views

// PageMeta carries per-page title and description into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical
	// Refresh, when positive, makes the browser reload (or follow
	// RefreshURL) after that many seconds.
	Refresh    int
	RefreshURL string
}

// CSSVar is one custom property written to :root.
type CSSVar struct {
	Name  string
	Value string
}
