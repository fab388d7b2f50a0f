package shell

import (
	"sync"

	"github.com/eringen/storefront/nav"
)

// Role is the authenticated user's role.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity supplied by the external session collaborator. The
// shell only reads it.
type User struct {
	ID   string
	Name string
	Role Role
}

// IsAdmin is nil-safe.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Transition decides the redirect, if any, caused by the identity moving
// from prev to cur while view is shown.
func Transition(prev, cur *User, view nav.ViewSelector) (nav.ViewSelector, bool) {
	switch {
	case prev == nil && cur != nil:
		if cur.IsAdmin() {
			return nav.ViewSelector{Kind: nav.KindAdmin, Slug: nav.DefaultPanelSlug}, true
		}
		return nav.ViewSelector{Kind: nav.KindClient, Slug: nav.DefaultPanelSlug}, true
	case prev != nil && cur == nil:
		if view.IsPrivate() {
			return nav.Home, true
		}
	}
	return nav.ViewSelector{}, false
}

// Reactor watches identity transitions and remembers the previous identity
// between observations.
type Reactor struct {
	mu   sync.Mutex
	prev *User
}

// Observe evaluates the transition to cur and then records cur as the
// previous identity, so every edge is seen exactly once.
func (r *Reactor) Observe(cur *User, view nav.ViewSelector) (nav.ViewSelector, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, ok := Transition(r.prev, cur, view)
	r.prev = cur
	return target, ok
}

// React observes cur against n's current view and navigates when a
// transition calls for it.
func (r *Reactor) React(n nav.Navigator, cur *User) {
	if target, ok := r.Observe(cur, n.Current()); ok {
		n.Navigate(target)
	}
}
