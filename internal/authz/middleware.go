package authz

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

// RequireRole wraps protected routes with the gate. The decision is
// re-evaluated per request so a role promotion or logout takes effect on
// the next navigation.
func RequireRole(required session.Role, accessor *session.Accessor) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := Decide(accessor.GetUser(), accessor.IsAuthenticated(), required)
			if decision.Outcome == Allow {
				next.ServeHTTP(w, r)
				return
			}
			http.Redirect(w, r, decision.Location, http.StatusSeeOther)
		})
	}
}
