package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/credstore"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

// Role monotonicity over every pair drawn from the hierarchy.
func TestCanAccess_AllPairs(t *testing.T) {
	roles := []session.Role{session.RoleUser, session.RoleClient, session.RoleProvider, session.RoleAdmin}

	for _, required := range roles {
		for _, current := range roles {
			want := session.Rank(current) >= session.Rank(required)
			if got := CanAccess(required, current); got != want {
				t.Errorf("CanAccess(%s, %s) = %v, want %v", required, current, got, want)
			}
		}
	}
}

func TestCanAccess_UserClientEquivalent(t *testing.T) {
	if !CanAccess(session.RoleUser, session.RoleClient) {
		t.Error("client should satisfy a user requirement")
	}
	if !CanAccess(session.RoleClient, session.RoleUser) {
		t.Error("user should satisfy a client requirement")
	}
}

func TestDecide_Unauthenticated(t *testing.T) {
	d := Decide(nil, false, session.RoleUser)
	if d.Outcome != RedirectLogin || d.Location != "/login" {
		t.Errorf("Decide(nil) = %+v, want redirect to /login", d)
	}

	// A role without a token still fails the authenticated check.
	sess := &session.Session{Role: session.RoleClient}
	d = Decide(sess, false, session.RoleUser)
	if d.Outcome != RedirectLogin {
		t.Errorf("Decide(role without token) = %+v, want redirect to /login", d)
	}
}

// Scenario: a client hitting a provider route lands on /dashboard, not
// /login and not the requested path.
func TestDecide_InsufficientRankGoesHome(t *testing.T) {
	sess := &session.Session{Role: session.RoleClient, Token: "tok"}

	d := Decide(sess, true, session.RoleProvider)
	if d.Outcome != RedirectHome {
		t.Fatalf("Outcome = %v, want RedirectHome", d.Outcome)
	}
	if d.Location != "/dashboard" {
		t.Errorf("Location = %s, want /dashboard", d.Location)
	}

	prov := &session.Session{Role: session.RoleProvider, Token: "tok"}
	d = Decide(prov, true, session.RoleAdmin)
	if d.Location != "/provider" {
		t.Errorf("provider bounced from admin should land on /provider, got %s", d.Location)
	}
}

func TestDecide_SufficientRankAllows(t *testing.T) {
	admin := &session.Session{Role: session.RoleAdmin, Token: "tok"}
	for _, required := range []session.Role{session.RoleUser, session.RoleClient, session.RoleProvider, session.RoleAdmin} {
		if d := Decide(admin, true, required); d.Outcome != Allow {
			t.Errorf("admin should pass a %s gate, got %+v", required, d)
		}
	}
}

func TestDecide_NoRequiredRole(t *testing.T) {
	sess := &session.Session{Role: session.RoleUser, Token: "tok"}
	if d := Decide(sess, true, ""); d.Outcome != Allow {
		t.Errorf("authenticated session should pass an unrestricted gate, got %+v", d)
	}
}

func newRouter(accessor *session.Accessor) *mux.Router {
	r := mux.NewRouter()

	provider := r.PathPrefix("/provider").Subrouter()
	provider.Use(RequireRole(session.RoleProvider, accessor))
	provider.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("provider home"))
	})
	return r
}

func TestRequireRole_Middleware(t *testing.T) {
	store := credstore.NewMemory()
	accessor := session.NewAccessor(store)
	router := newRouter(accessor)

	// Unauthenticated: to login.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/provider", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("unauthenticated: code %d location %q", rec.Code, rec.Header().Get("Location"))
	}

	// Client: to own dashboard.
	accessor.SetUser(session.User{Role: session.RoleClient, Email: "c@x.y", Token: "tok"})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/provider", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/dashboard" {
		t.Errorf("outranked: code %d location %q", rec.Code, rec.Header().Get("Location"))
	}

	// Promotion takes effect on the next request.
	accessor.UpdateRole(session.RoleProvider)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/provider", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("provider after promotion: code %d, want 200", rec.Code)
	}
}
