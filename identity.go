package storefront

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/storefront/nav"
	"github.com/eringen/storefront/shell"
)

// Session keys written by the auth service that owns sign-in.
const (
	keyUserID   = "uid"
	keyUserName = "name"
	keyUserRole = "role"

	// The previously observed identity, kept so transitions are seen once.
	keySeenID   = "seen_uid"
	keySeenRole = "seen_role"
)

// Identity supplies the current user, or nil for a guest. The storefront
// only reads identity; it never signs anyone in.
type Identity interface {
	User(c echo.Context) *shell.User
}

// SessionIdentity reads the user from the gorilla cookie session.
type SessionIdentity struct {
	Name string
}

func (s SessionIdentity) User(c echo.Context) *shell.User {
	sess, err := session.Get(s.Name, c)
	if err != nil {
		return nil
	}
	id, _ := sess.Values[keyUserID].(string)
	if id == "" {
		return nil
	}
	name, _ := sess.Values[keyUserName].(string)
	role, _ := sess.Values[keyUserRole].(string)
	if role == "" {
		role = string(shell.RoleUser)
	}
	return &shell.User{ID: id, Name: name, Role: shell.Role(role)}
}

// observeSession compares cur with the identity recorded on the previous
// request and records cur. It returns the redirect a transition calls for.
func (a *App) observeSession(c echo.Context, cur *shell.User, view nav.ViewSelector) (nav.ViewSelector, bool) {
	sess, err := session.Get(a.Config.SessionName, c)
	if err != nil {
		a.Log.Debug("session unavailable", zap.Error(err))
		return nav.ViewSelector{}, false
	}

	var prev *shell.User
	if id, _ := sess.Values[keySeenID].(string); id != "" {
		role, _ := sess.Values[keySeenRole].(string)
		prev = &shell.User{ID: id, Role: shell.Role(role)}
	}

	target, ok := shell.Transition(prev, cur, view)
	if sameUser(prev, cur) {
		return target, ok
	}

	if cur == nil {
		delete(sess.Values, keySeenID)
		delete(sess.Values, keySeenRole)
	} else {
		sess.Values[keySeenID] = cur.ID
		sess.Values[keySeenRole] = string(cur.Role)
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		a.Log.Warn("save session marker", zap.Error(err))
	}
	return target, ok
}

func sameUser(a, b *shell.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID && a.Role == b.Role
}
