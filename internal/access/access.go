// Package access decides whether a navigation target is permitted for the
// current session. The decision is pure and recomputed on every request;
// sessions and roles change between navigations.
package access

import "clinic-management-api/internal/model"

type Decision int

const (
	// Allow forwards to the protected content.
	Allow Decision = iota
	// RedirectLogin: no session at all.
	RedirectLogin
	// RedirectNotFound: a session with the wrong role. Not-found rather than
	// forbidden, so protected routes are invisible to roles that lack them.
	RedirectNotFound
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectNotFound:
		return "redirect-not-found"
	}
	return "unknown"
}

// Decide gates a route that requires one of the allowed roles.
func Decide(user *model.User, allowed []model.Role) Decision {
	if user == nil {
		return RedirectLogin
	}
	for _, r := range allowed {
		if user.Role == r {
			return Allow
		}
	}
	return RedirectNotFound
}
