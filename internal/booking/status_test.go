package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

func TestFromWire(t *testing.T) {
	cases := map[string]Status{
		"pending":   StatusPending,
		"accepted":  StatusConfirmed,
		"confirmed": StatusConfirmed,
		"rejected":  StatusCancelled,
		"cancelled": StatusCancelled,
		"completed": StatusCompleted,
		"ACCEPTED":  StatusConfirmed,
		" Rejected": StatusCancelled,
		"":          StatusPending,
	}
	for wire, want := range cases {
		assert.Equal(t, want, FromWire(wire), "FromWire(%q)", wire)
	}
}

func TestToWire(t *testing.T) {
	assert.Equal(t, "accepted", ToWire(StatusConfirmed))
	assert.Equal(t, "pending", ToWire(StatusPending))
	assert.Equal(t, "cancelled", ToWire(StatusCancelled))
	assert.Equal(t, "completed", ToWire(StatusCompleted))
}

func TestWireRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		assert.Equal(t, s, FromWire(ToWire(s)), "round trip for %s", s)
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

// Exhaustive check of the transition table over every role and state pair.
func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

	type move struct{ from, to Status }
	allowed := map[session.Role]map[move]bool{
		session.RoleClient: {
			{StatusPending, StatusCancelled}:   true,
			{StatusConfirmed, StatusCompleted}: true,
		},
		session.RoleUser: {
			{StatusPending, StatusCancelled}:   true,
			{StatusConfirmed, StatusCompleted}: true,
		},
		session.RoleProvider: {
			{StatusPending, StatusConfirmed}: true,
			{StatusPending, StatusCancelled}: true,
		},
		session.RoleAdmin: {},
	}

	for role, table := range allowed {
		for _, from := range all {
			for _, to := range all {
				want := table[move{from, to}]
				got := CanTransition(role, from, to)
				assert.Equal(t, want, got, "%s: %s -> %s", role, from, to)
			}
		}
	}
}

func TestCanTransition_NeverIntoPendingOrOutOfTerminal(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
	roles := []session.Role{session.RoleUser, session.RoleClient, session.RoleProvider, session.RoleAdmin}

	for _, role := range roles {
		for _, from := range all {
			assert.False(t, CanTransition(role, from, StatusPending),
				"%s must not move %s into pending", role, from)
		}
		for _, to := range all {
			assert.False(t, CanTransition(role, StatusCompleted, to),
				"%s must not reopen completed", role)
			assert.False(t, CanTransition(role, StatusCancelled, to),
				"%s must not reopen cancelled", role)
		}
	}
}
