// Package shell owns the storefront's application state: the hydrated
// resources, the view dispatcher and the session-transition reactor.
package shell

import (
	"errors"
	"time"

	"github.com/eringen/storefront/content"
)

// genericLoadError is recorded when a failure carries no localized message.
const genericLoadError = "حدث خطأ أثناء تحميل البيانات"

// State is the whole application state. It is replaced, never mutated, by
// Reduce; slices in a State must be treated as read-only.
type State struct {
	Loading   bool
	Error     string
	Settings  *content.SiteSettings
	Pages     []content.Page
	Services  []content.ServicePackage
	Banners   []content.Banner
	Platforms []content.Platform
	Posts     []content.BlogPost
	LoadedAt  time.Time
}

// Action is a state transition.
type Action interface {
	reduce(State) State
}

// Reduce applies a to s and returns the new state.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.reduce(s)
}

// HydrateStarted marks the beginning of a fetch batch.
type HydrateStarted struct{}

func (HydrateStarted) reduce(s State) State {
	s.Loading = true
	s.Error = ""
	return s
}

// HydrateSettled marks that every core resource has settled.
type HydrateSettled struct{ At time.Time }

func (a HydrateSettled) reduce(s State) State {
	s.Loading = false
	s.LoadedAt = a.At
	return s
}

// HydrateAborted marks a batch that ended without settling. Content that
// settled before stays current; a store that never loaded keeps loading.
type HydrateAborted struct{}

func (HydrateAborted) reduce(s State) State {
	if !s.LoadedAt.IsZero() {
		s.Loading = false
	}
	return s
}

// Replacement actions merge panel edits by full replacement.
type (
	ReplaceSettings  struct{ Settings content.SiteSettings }
	ReplacePages     struct{ Pages []content.Page }
	ReplaceServices  struct{ Services []content.ServicePackage }
	ReplaceBanners   struct{ Banners []content.Banner }
	ReplacePlatforms struct{ Platforms []content.Platform }
	ReplacePosts     struct{ Posts []content.BlogPost }
)

func (a ReplaceSettings) reduce(s State) State {
	settings := a.Settings
	s.Settings = &settings
	return s
}

func (a ReplacePages) reduce(s State) State     { s.Pages = a.Pages; return s }
func (a ReplaceServices) reduce(s State) State  { s.Services = a.Services; return s }
func (a ReplaceBanners) reduce(s State) State   { s.Banners = a.Banners; return s }
func (a ReplacePlatforms) reduce(s State) State { s.Platforms = a.Platforms; return s }
func (a ReplacePosts) reduce(s State) State     { s.Posts = a.Posts; return s }

// Loaded carries one resource's fetch result: the replacement it implies
// plus the error to record, if any.
type Loaded struct {
	Replace Action
	Err     error
}

func (a Loaded) reduce(s State) State {
	s = Reduce(s, a.Replace)
	if a.Err != nil {
		s.Error = errorMessage(a.Err)
	}
	return s
}

func errorMessage(err error) string {
	var le *content.LoadError
	if errors.As(err, &le) && le.Message != "" {
		return le.Message
	}
	return genericLoadError
}
