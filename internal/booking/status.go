package booking

import (
	"strings"

	"github.com/mamasalanang-gerald/Servify-sub000/internal/session"
)

// Status is the canonical, client-facing booking status. The wire
// vocabulary additionally uses "accepted" for confirmed and "rejected"
// for cancelled; FromWire and ToWire are the only translation points.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// FromWire normalizes a server-issued status to the canonical vocabulary.
// An empty value means a booking that has not been acted on yet.
func FromWire(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pending":
		return StatusPending
	case "accepted", "confirmed":
		return StatusConfirmed
	case "rejected", "cancelled":
		return StatusCancelled
	case "completed":
		return StatusCompleted
	default:
		return Status(strings.ToLower(strings.TrimSpace(s)))
	}
}

// ToWire converts a canonical status to the vocabulary the API expects.
func ToWire(s Status) string {
	if s == StatusConfirmed {
		return "accepted"
	}
	return string(s)
}

// Valid reports whether s is one of the four canonical states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether the actor's role may move a booking from
// one status to another. Nobody moves into pending or reopens a terminal
// state; clients cancel pending work and complete confirmed work;
// providers accept or decline pending work.
func CanTransition(actor session.Role, from, to Status) bool {
	switch actor {
	case session.RoleClient, session.RoleUser:
		return (from == StatusPending && to == StatusCancelled) ||
			(from == StatusConfirmed && to == StatusCompleted)
	case session.RoleProvider:
		return from == StatusPending && (to == StatusConfirmed || to == StatusCancelled)
	default:
		return false
	}
}
