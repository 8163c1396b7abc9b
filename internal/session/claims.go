package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of access-token claims the client displays.
// The token is opaque to the protocol; nothing here is used for
// authorization decisions, which belong to the server.
type TokenClaims struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// ParseTokenClaims decodes the access token without verifying its
// signature. The client has no key material; verification happens on the
// server on every request.
func ParseTokenClaims(token string) (*TokenClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("session: token is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session: parse token: %w", err)
	}

	out := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	} else if role, ok := claims["user_type"].(string); ok {
		out.Role = role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	return out, nil
}

// Expired reports whether the token's expiry has passed. Tokens without
// an exp claim never report expired.
func (c *TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
