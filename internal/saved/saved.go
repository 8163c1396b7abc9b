// Package saved tracks which services the current user has saved. The
// membership set is updated optimistically: the heart icon flips at once
// and flips back if the server declines.
package saved

import (
	"context"
	"errors"
	"net/url"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/gateway"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/optimistic"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

// ErrNotAuthenticated is returned when a save is attempted without a
// full session (token and role).
var ErrNotAuthenticated = errors.New("saved: authentication required")

// Set is the saved-service membership set.
type Set struct {
	gw      *gateway.Client
	session *session.Accessor
	col     *optimistic.Collection[string, struct{}]
}

// NewSet creates an empty membership set.
func NewSet(gw *gateway.Client, sess *session.Accessor) *Set {
	return &Set{
		gw:      gw,
		session: sess,
		col:     optimistic.New[string, struct{}](),
	}
}

// Refresh replaces the set with the server's view. An unauthenticated
// session simply holds an empty set.
func (s *Set) Refresh(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		s.col.Replace(nil)
		return nil
	}

	resp, err := s.gw.Get(ctx, "/saved-services")
	if err != nil {
		return err
	}

	var rows []struct {
		ID        string `json:"id"`
		ServiceID string `json:"service_id"`
	}
	if err := gateway.DecodeResponse(resp, &rows); err != nil {
		return err
	}

	items := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		// Some endpoints key the row by service_id, some by id.
		id := row.ServiceID
		if id == "" {
			id = row.ID
		}
		items[id] = struct{}{}
	}
	s.col.Replace(items)
	return nil
}

// IsSaved reports membership of the service id.
func (s *Set) IsSaved(serviceID string) bool {
	return s.col.Has(serviceID)
}

// IDs returns a snapshot of the saved service ids.
func (s *Set) IDs() []string {
	snap := s.col.Snapshot()
	out := make([]string, 0, len(snap))
	for id := range snap {
		out = append(out, id)
	}
	return out
}

// Save adds the service optimistically and confirms with the server.
func (s *Set) Save(ctx context.Context, serviceID string) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	apply := func(struct{}, bool) (struct{}, bool) { return struct{}{}, true }
	remote := func(ctx context.Context) (struct{}, bool, error) {
		resp, err := s.gw.Post(ctx, "/saved-services/"+url.PathEscape(serviceID), nil)
		if err != nil {
			return struct{}{}, false, err
		}
		return struct{}{}, false, gateway.DecodeResponse(resp, nil)
	}
	return s.col.Mutate(ctx, serviceID, apply, remote)
}

// Unsave removes the service optimistically and confirms with the server.
func (s *Set) Unsave(ctx context.Context, serviceID string) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	apply := func(struct{}, bool) (struct{}, bool) { return struct{}{}, false }
	remote := func(ctx context.Context) (struct{}, bool, error) {
		resp, err := s.gw.Delete(ctx, "/saved-services/"+url.PathEscape(serviceID))
		if err != nil {
			return struct{}{}, false, err
		}
		return struct{}{}, false, gateway.DecodeResponse(resp, nil)
	}
	return s.col.Mutate(ctx, serviceID, apply, remote)
}
