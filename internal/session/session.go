// Package session derives the current user from the credential store and
// owns every session mutation. Other packages read through an Accessor;
// only the accessor and the gateway's refresh path write.
package session

import (
	"github.com/mamasalanang-gerald/Servify-sub000/internal/credstore"
)

// Session is the client-held record of the authenticated identity.
type Session struct {
	Role         Role
	Email        string
	ID           string
	FullName     string
	ProfileImage string
	Token        string
}

// User is the field set accepted by SetUser. Token, ID, FullName and
// ProfileImage are optional: role-promotion flows update identity fields
// without reissuing a token.
type User struct {
	Role         Role
	Email        string
	Token        string
	ID           string
	FullName     string
	ProfileImage string
}

// Accessor reads and writes the session through a credential store.
type Accessor struct {
	store credstore.Store
}

// NewAccessor creates an accessor over the given store.
func NewAccessor(store credstore.Store) *Accessor {
	return &Accessor{store: store}
}

// GetUser returns the current session, or nil when no role is recorded.
// The absence of the role key is the sole logged-out signal; a session
// may exist without a token during a refresh race.
func (a *Accessor) GetUser() *Session {
	roleValue, ok := a.store.Get(credstore.KeyRole)
	if !ok {
		return nil
	}
	role, _ := ParseRole(roleValue)

	sess := &Session{Role: role}
	sess.Email, _ = a.store.Get(credstore.KeyEmail)
	sess.ID, _ = a.store.Get(credstore.KeyUserID)
	sess.FullName, _ = a.store.Get(credstore.KeyFullName)
	sess.ProfileImage, _ = a.store.Get(credstore.KeyProfileImage)
	sess.Token, _ = a.store.Get(credstore.KeyToken)
	return sess
}

// SetUser writes all provided fields. Empty optional fields are left
// untouched so partial updates do not erase known identity data.
func (a *Accessor) SetUser(u User) error {
	if err := a.store.Set(credstore.KeyRole, string(u.Role)); err != nil {
		return err
	}
	if err := a.store.Set(credstore.KeyEmail, u.Email); err != nil {
		return err
	}
	if u.Token != "" {
		if err := a.store.Set(credstore.KeyToken, u.Token); err != nil {
			return err
		}
	}
	if u.ID != "" {
		if err := a.store.Set(credstore.KeyUserID, u.ID); err != nil {
			return err
		}
	}
	if u.FullName != "" {
		if err := a.store.Set(credstore.KeyFullName, u.FullName); err != nil {
			return err
		}
	}
	if u.ProfileImage != "" {
		if err := a.store.Set(credstore.KeyProfileImage, u.ProfileImage); err != nil {
			return err
		}
	}
	return nil
}

// UpdateRole mutates only the role, for out-of-band promotions (e.g. a
// provider application approved while the session is open).
func (a *Accessor) UpdateRole(r Role) error {
	return a.store.Set(credstore.KeyRole, string(r))
}

// SetProfileImage caches the profile image URL without touching other
// session fields.
func (a *Accessor) SetProfileImage(url string) error {
	return a.store.Set(credstore.KeyProfileImage, url)
}

// Clear removes every session field. Idempotent.
func (a *Accessor) Clear() error {
	return a.store.Clear()
}

// IsAuthenticated reports whether both a token and a role are present.
// This is stricter than GetUser() != nil: a bare role still drives UI
// redirects, but authenticated-only actions need the token too.
func (a *Accessor) IsAuthenticated() bool {
	if _, ok := a.store.Get(credstore.KeyToken); !ok {
		return false
	}
	_, ok := a.store.Get(credstore.KeyRole)
	return ok
}

// Token returns the stored access token, if any.
func (a *Accessor) Token() (string, bool) {
	return a.store.Get(credstore.KeyToken)
}

// SetToken stores a new access token without touching identity fields.
func (a *Accessor) SetToken(token string) error {
	return a.store.Set(credstore.KeyToken, token)
}

// Subscribe registers fn to run after every session mutation.
func (a *Accessor) Subscribe(fn func()) (cancel func()) {
	return a.store.Subscribe(fn)
}
