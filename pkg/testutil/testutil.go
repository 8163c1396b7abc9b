// Package testutil provides common testing utilities and fault-injecting
// doubles shared across packages.
package testutil

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// GenerateID returns a random identifier for test fixtures.
func GenerateID() string {
	return uuid.NewString()
}

// RoundTripFunc adapts a function to http.RoundTripper.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// FaultyStore is an in-memory credential store whose writes can be made
// to fail, for exercising persistence error paths.
type FaultyStore struct {
	mu        sync.RWMutex
	values    map[string]string
	listeners map[int]func()
	nextID    int

	// SetErr, when non-nil, is returned by every Set call.
	SetErr error
	// ClearErr, when non-nil, is returned by every Clear call.
	ClearErr error
}

// NewFaultyStore creates an empty store with no injected faults.
func NewFaultyStore() *FaultyStore {
	return &FaultyStore{
		values:    make(map[string]string),
		listeners: make(map[int]func()),
	}
}

// Get returns the stored value for key.
func (s *FaultyStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key, or fails with SetErr.
func (s *FaultyStore) Set(key, value string) error {
	s.mu.Lock()
	if s.SetErr != nil {
		err := s.SetErr
		s.mu.Unlock()
		return fmt.Errorf("testutil: %w", err)
	}
	s.values[key] = value
	s.mu.Unlock()
	s.notify()
	return nil
}

// Remove deletes key.
func (s *FaultyStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Clear removes every value, or fails with ClearErr.
func (s *FaultyStore) Clear() error {
	s.mu.Lock()
	if s.ClearErr != nil {
		err := s.ClearErr
		s.mu.Unlock()
		return fmt.Errorf("testutil: %w", err)
	}
	s.values = make(map[string]string)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Subscribe registers fn to run after every mutation.
func (s *FaultyStore) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *FaultyStore) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}
