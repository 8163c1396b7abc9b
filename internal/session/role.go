package session

// Role is the account role the server issues as user_type.
type Role string

const (
	RoleUser     Role = "user"
	RoleClient   Role = "client" // same rank as user
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

var roleRank = map[Role]int{
	RoleUser:     1,
	RoleClient:   1,
	RoleProvider: 2,
	RoleAdmin:    3,
}

var roleHome = map[Role]string{
	RoleUser:     "/dashboard",
	RoleClient:   "/dashboard",
	RoleProvider: "/provider",
	RoleAdmin:    "/admin",
}

// ParseRole validates a server-issued role string. Unknown values return
// false so callers can treat them as unauthenticated.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	_, ok := roleRank[r]
	return r, ok
}

// Rank returns the role's position in the hierarchy. Unknown roles rank
// below every real role.
func Rank(r Role) int {
	return roleRank[r]
}

// HomeRoute returns the role's own landing route. Unknown roles land on
// the login page.
func HomeRoute(r Role) string {
	if home, ok := roleHome[r]; ok {
		return home
	}
	return "/login"
}
