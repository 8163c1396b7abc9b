package api

import (
	"context"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/gateway"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

// Profile is the user's account record.
type Profile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	UserType     string `json:"user_type"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	FullName     string `json:"full_name,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// Me returns the authenticated user's identity.
func (c *Client) Me(ctx context.Context) (Profile, error) {
	var out Profile
	resp, err := c.gw.Get(ctx, "/users/me")
	if err != nil {
		return out, err
	}
	return out, gateway.DecodeResponse(resp, &out)
}

// GetProfile returns the full profile record.
func (c *Client) GetProfile(ctx context.Context) (Profile, error) {
	var out Profile
	resp, err := c.gw.Get(ctx, "/users/profile")
	if err != nil {
		return out, err
	}
	return out, gateway.DecodeResponse(resp, &out)
}

// UpdateProfile writes the editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (Profile, error) {
	var out Profile
	resp, err := c.gw.Put(ctx, "/users/profile", update)
	if err != nil {
		return out, err
	}
	if err := gateway.DecodeResponse(resp, &out); err != nil {
		return out, err
	}
	if out.ProfileImage != "" {
		if err := c.session.SetProfileImage(out.ProfileImage); err != nil {
			c.log.WithError(err).Warn("failed to cache profile image")
		}
	}
	return out, nil
}

// Promote asks the server to promote the account from client to
// provider; on success the stored role is updated in place, so the
// session stays authenticated under the new role.
func (c *Client) Promote(ctx context.Context) error {
	resp, err := c.gw.Patch(ctx, "/users/promote", nil)
	if err != nil {
		return err
	}
	if err := gateway.DecodeResponse(resp, nil); err != nil {
		return err
	}
	return c.session.UpdateRole(session.RoleProvider)
}
