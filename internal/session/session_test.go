package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/credstore"
)

func TestRank_Hierarchy(t *testing.T) {
	if Rank(RoleAdmin) <= Rank(RoleProvider) {
		t.Error("admin should outrank provider")
	}
	if Rank(RoleProvider) <= Rank(RoleUser) {
		t.Error("provider should outrank user")
	}
	if Rank(RoleUser) != Rank(RoleClient) {
		t.Error("user and client should share a rank")
	}
	if Rank(Role("ghost")) != 0 {
		t.Error("unknown roles should rank below every real role")
	}
}

func TestHomeRoute(t *testing.T) {
	cases := map[Role]string{
		RoleUser:     "/dashboard",
		RoleClient:   "/dashboard",
		RoleProvider: "/provider",
		RoleAdmin:    "/admin",
		Role("x"):    "/login",
	}
	for role, want := range cases {
		if got := HomeRoute(role); got != want {
			t.Errorf("HomeRoute(%s) = %s, want %s", role, got, want)
		}
	}
}

func TestAccessor_GetUserNilWithoutRole(t *testing.T) {
	a := NewAccessor(credstore.NewMemory())

	if a.GetUser() != nil {
		t.Fatal("GetUser() should be nil on an empty store")
	}
}

func TestAccessor_SetUserRoundTrip(t *testing.T) {
	a := NewAccessor(credstore.NewMemory())

	err := a.SetUser(User{
		Role:     RoleClient,
		Email:    "dana@example.com",
		Token:    "tok-1",
		ID:       "u-1",
		FullName: "Dana Cruz",
	})
	if err != nil {
		t.Fatalf("SetUser() error = %v", err)
	}

	sess := a.GetUser()
	if sess == nil {
		t.Fatal("GetUser() = nil after SetUser")
	}
	if sess.Role != RoleClient || sess.Email != "dana@example.com" || sess.ID != "u-1" {
		t.Errorf("unexpected session: %+v", sess)
	}
	if !a.IsAuthenticated() {
		t.Error("IsAuthenticated() should be true with token and role")
	}
}

func TestAccessor_RoleWithoutTokenIsNotAuthenticated(t *testing.T) {
	a := NewAccessor(credstore.NewMemory())

	if err := a.SetUser(User{Role: RoleUser, Email: "x@y.z"}); err != nil {
		t.Fatalf("SetUser() error = %v", err)
	}

	if a.GetUser() == nil {
		t.Error("a role alone should still produce a session for redirects")
	}
	if a.IsAuthenticated() {
		t.Error("IsAuthenticated() must require a token")
	}
}

func TestAccessor_UpdateRoleKeepsToken(t *testing.T) {
	a := NewAccessor(credstore.NewMemory())
	a.SetUser(User{Role: RoleClient, Email: "p@example.com", Token: "tok-1"})

	if err := a.UpdateRole(RoleProvider); err != nil {
		t.Fatalf("UpdateRole() error = %v", err)
	}

	sess := a.GetUser()
	if sess.Role != RoleProvider {
		t.Errorf("role = %s, want provider", sess.Role)
	}
	if !a.IsAuthenticated() {
		t.Error("promotion must not drop authentication")
	}
	if sess.Email != "p@example.com" {
		t.Error("promotion must not touch identity fields")
	}
}

func TestAccessor_ClearIdempotent(t *testing.T) {
	a := NewAccessor(credstore.NewMemory())
	a.SetUser(User{Role: RoleAdmin, Email: "a@b.c", Token: "tok"})

	if err := a.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := a.Clear(); err != nil {
		t.Fatalf("second Clear() error = %v", err)
	}
	if a.GetUser() != nil {
		t.Error("GetUser() should be nil after Clear")
	}
	if a.IsAuthenticated() {
		t.Error("IsAuthenticated() should be false after Clear")
	}
}

func TestParseTokenClaims(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u-42",
		"email": "dana@example.com",
		"role":  "provider",
		"exp":   exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	claims, err := ParseTokenClaims(signed)
	if err != nil {
		t.Fatalf("ParseTokenClaims() error = %v", err)
	}
	if claims.Subject != "u-42" || claims.Email != "dana@example.com" || claims.Role != "provider" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt, exp)
	}
	if claims.Expired(time.Now()) {
		t.Error("token should not report expired before exp")
	}
	if !claims.Expired(exp.Add(time.Second)) {
		t.Error("token should report expired after exp")
	}
}

func TestParseTokenClaims_Garbage(t *testing.T) {
	if _, err := ParseTokenClaims("not-a-jwt"); err == nil {
		t.Fatal("ParseTokenClaims() should reject a malformed token")
	}
	if _, err := ParseTokenClaims(""); err == nil {
		t.Fatal("ParseTokenClaims() should reject an empty token")
	}
}
