package api

import (
	"context"
	"fmt"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/gateway"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

// RegisterRequest is the payload for client registration.
type RegisterRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	User        struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		UserType string `json:"user_type"`
	} `json:"user"`
}

// Login authenticates with email and password and establishes the local
// session: token, role, email, id and full name, plus a best-effort
// profile-image fetch that never fails the login.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	resp, err := c.gw.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var out loginResponse
	if err := gateway.DecodeResponse(resp, &out); err != nil {
		return nil, err
	}

	role, ok := session.ParseRole(out.User.UserType)
	if !ok {
		return nil, fmt.Errorf("api: server issued unknown role %q", out.User.UserType)
	}

	if err := c.session.SetUser(session.User{
		Role:     role,
		Email:    out.User.Email,
		Token:    out.AccessToken,
		ID:       out.User.ID,
		FullName: out.User.FullName,
	}); err != nil {
		return nil, err
	}

	if profile, err := c.GetProfile(ctx); err == nil && profile.ProfileImage != "" {
		if err := c.session.SetProfileImage(profile.ProfileImage); err != nil {
			c.log.WithError(err).Warn("failed to cache profile image")
		}
	}

	return c.session.GetUser(), nil
}

// Register creates a client account. It does not establish a session;
// callers follow up with Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	resp, err := c.gw.Post(ctx, "/auth/register", req)
	if err != nil {
		return err
	}
	return gateway.DecodeResponse(resp, nil)
}

// RegisterProvider creates a provider account.
func (c *Client) RegisterProvider(ctx context.Context, req RegisterRequest) error {
	resp, err := c.gw.Post(ctx, "/auth/register-provider", req)
	if err != nil {
		return err
	}
	return gateway.DecodeResponse(resp, nil)
}

// Logout revokes the refresh cookie server-side on a best-effort basis
// and clears the local session regardless of the server's answer.
func (c *Client) Logout(ctx context.Context) error {
	if resp, err := c.gw.Post(ctx, "/auth/logout", nil); err != nil {
		c.log.WithError(err).Warn("logout request failed, clearing session anyway")
	} else {
		resp.Body.Close()
	}
	return c.session.Clear()
}
