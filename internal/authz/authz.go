// Package authz is the role-hierarchy gate applied to every protected
// route. It never renders a denial: the outcome is either the wrapped
// handler or a redirect, to login when unauthenticated and to the
// caller's own home when authenticated but outranked.
package authz

import (
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

// Outcome is the gate's three-way decision.
type Outcome int

const (
	// Allow renders the protected content.
	Allow Outcome = iota
	// RedirectLogin sends the caller to the login page.
	RedirectLogin
	// RedirectHome sends the caller to their own role's landing page,
	// never the originally requested path, so an outranked caller cannot
	// bounce in a redirect loop.
	RedirectHome
)

// Decision is an outcome plus the redirect target when applicable.
type Decision struct {
	Outcome  Outcome
	Location string
}

// CanAccess reports whether current satisfies the required role under
// the hierarchy admin > provider > {user, client}. A higher-ranked role
// always satisfies a lower-ranked requirement.
func CanAccess(required, current session.Role) bool {
	return session.Rank(current) >= session.Rank(required)
}

// Decide resolves the gate for the current session. A nil session (no
// role recorded) or a missing token is unauthenticated; an authenticated
// session with insufficient rank goes to its own home.
func Decide(sess *session.Session, authenticated bool, required session.Role) Decision {
	if sess == nil || !authenticated {
		return Decision{Outcome: RedirectLogin, Location: "/login"}
	}
	if required != "" && !CanAccess(required, sess.Role) {
		return Decision{Outcome: RedirectHome, Location: session.HomeRoute(sess.Role)}
	}
	return Decision{Outcome: Allow}
}
