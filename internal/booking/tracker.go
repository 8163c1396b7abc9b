// Package booking tracks the session's bookings and keeps their status
// consistent with the server through optimistic updates.
package booking

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/gateway"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/optimistic"
	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

var (
	// ErrIllegalTransition is returned before any network call when the
	// requested status change is not permitted for the actor's role.
	ErrIllegalTransition = errors.New("booking: illegal status transition")
	// ErrUnknownBooking is returned for ids the tracker has not loaded.
	ErrUnknownBooking = errors.New("booking: unknown booking")
)

// Tracker owns a collection of bookings keyed by id. Status changes are
// applied optimistically and rolled back if the server rejects them.
type Tracker struct {
	gw    *gateway.Client
	actor session.Role
	col   *optimistic.Collection[string, Booking]
}

// NewTracker creates a tracker acting with the given role's authority.
func NewTracker(gw *gateway.Client, actor session.Role) *Tracker {
	return &Tracker{
		gw:    gw,
		actor: actor,
		col:   optimistic.New[string, Booking](),
	}
}

// LoadClient replaces the tracked set with the client's bookings.
func (t *Tracker) LoadClient(ctx context.Context, clientID string) error {
	return t.load(ctx, "/bookings/client/"+url.PathEscape(clientID))
}

// LoadProvider replaces the tracked set with the provider's bookings.
func (t *Tracker) LoadProvider(ctx context.Context, providerID string) error {
	return t.load(ctx, "/bookings/provider/"+url.PathEscape(providerID))
}

func (t *Tracker) load(ctx context.Context, path string) error {
	resp, err := t.gw.Get(ctx, path)
	if err != nil {
		return err
	}

	var rows []wireBooking
	if err := gateway.DecodeResponse(resp, &rows); err != nil {
		return err
	}

	items := make(map[string]Booking, len(rows))
	for _, row := range rows {
		items[row.ID] = row.toBooking()
	}
	t.col.Replace(items)
	return nil
}

// Get returns the tracked booking with the given id.
func (t *Tracker) Get(id string) (Booking, bool) {
	return t.col.Get(id)
}

// Snapshot returns a copy of every tracked booking.
func (t *Tracker) Snapshot() map[string]Booking {
	return t.col.Snapshot()
}

// UpdateStatus moves a booking to a new status. The transition is checked
// against the state machine for the tracker's role before any network
// traffic; the local status flips immediately and is restored if the
// server rejects the change.
func (t *Tracker) UpdateStatus(ctx context.Context, id string, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %q is not a booking status", ErrIllegalTransition, to)
	}

	current, ok := t.col.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBooking, id)
	}
	if !CanTransition(t.actor, current.Status, to) {
		return fmt.Errorf("%w: %s may not move %s from %s to %s",
			ErrIllegalTransition, t.actor, id, current.Status, to)
	}

	apply := func(b Booking, _ bool) (Booking, bool) {
		b.Status = to
		return b, true
	}
	remote := func(ctx context.Context) (Booking, bool, error) {
		resp, err := t.gw.Patch(ctx, "/bookings/"+url.PathEscape(id)+"/status",
			map[string]string{"status": ToWire(to)})
		if err != nil {
			return Booking{}, false, err
		}
		var row wireBooking
		if err := gateway.DecodeResponse(resp, &row); err != nil {
			return Booking{}, false, err
		}
		if row.ID == "" {
			// Server confirmed but returned no row; keep the guess.
			return Booking{}, false, nil
		}
		return row.toBooking(), true, nil
	}

	return t.col.Mutate(ctx, id, apply, remote)
}
