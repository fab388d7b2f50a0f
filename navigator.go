package storefront

import (
	"github.com/eringen/storefront/nav"
)

// requestNavigator adapts nav.Navigator to one HTTP request. The request
// path is the current view; Navigate records where the response should
// send the browser. Only the first navigation of a request counts.
type requestNavigator struct {
	view   nav.ViewSelector
	target *nav.ViewSelector
}

func newRequestNavigator(escapedPath string) *requestNavigator {
	return &requestNavigator{view: nav.Resolve(escapedPath)}
}

func (n *requestNavigator) Current() nav.ViewSelector {
	return n.view
}

func (n *requestNavigator) Navigate(v nav.ViewSelector) {
	if n.target == nil {
		n.target = &v
	}
}

// Location is the path the browser should go to, if any.
func (n *requestNavigator) Location() (string, bool) {
	if n.target == nil {
		return "", false
	}
	return nav.Fragment(*n.target), true
}
