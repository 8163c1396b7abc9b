// Package credstore persists the client session's credentials in a flat
// key/value store. The store is intentionally dumb: no validation, no
// multi-key atomicity. A single writer (the session accessor or the
// gateway's refresh path) updates it; everything else only reads.
package credstore

import "sync"

// Well-known credential keys. They mirror the keys the Servify web client
// uses so a shared credential file round-trips cleanly.
const (
	KeyToken        = "servify_token"
	KeyRole         = "servify_role"
	KeyEmail        = "servify_email"
	KeyUserID       = "servify_user_id"
	KeyFullName     = "servify_full_name"
	KeyProfileImage = "servify_profile_image"
)

// Store is the credential store contract. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)
	// Set stores value under key.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	// Clear removes every key. Idempotent.
	Clear() error
	// Subscribe registers fn to run after every successful mutation and
	// returns a cancel function. Callbacks run synchronously on the
	// mutating goroutine and must not call back into the store.
	Subscribe(fn func()) (cancel func())
}

// Memory is an in-process Store for tests and ephemeral sessions.
type Memory struct {
	mu        sync.RWMutex
	values    map[string]string
	listeners map[int]func()
	nextSub   int
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values:    make(map[string]string),
		listeners: make(map[int]func()),
	}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	fns := m.listenersLocked()
	m.mu.Unlock()

	notify(fns)
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	fns := m.listenersLocked()
	m.mu.Unlock()

	notify(fns)
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	m.values = make(map[string]string)
	fns := m.listenersLocked()
	m.mu.Unlock()

	notify(fns)
	return nil
}

func (m *Memory) Subscribe(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Memory) listenersLocked() []func() {
	fns := make([]func(), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func notify(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
