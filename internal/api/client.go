// Package api provides typed wrappers over the Servify REST surface.
// All transport concerns (bearer tokens, refresh, error translation)
// live in the gateway; this layer only shapes requests and responses.
package api

import (
	"github.com/mamasalanang-gerald/Servify-sub000/internal/gateway"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
	"github.com/mamasalanang-gerald/Servify-sub000/pkg/logger"
)

// Client groups the endpoint wrappers around one gateway and session.
type Client struct {
	gw      *gateway.Client
	session *session.Accessor
	log     *logger.Logger
}

// New creates an API client.
func New(gw *gateway.Client, sess *session.Accessor, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}
	return &Client{gw: gw, session: sess, log: log}
}

// Admin returns the admin endpoint surface. The server enforces the role;
// this is only a namespace.
func (c *Client) Admin() *Admin {
	return &Admin{gw: c.gw}
}
