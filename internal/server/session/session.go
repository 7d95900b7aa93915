// Package session describes the per-client state bag the auth gate works
// with. The web layer owns the real store; this package only fixes the
// capability the rest of the server depends on.
package session

import "sync"

// Session is a per-client key-value bag identified by a cookie.
type Session interface {
	// Get returns the value stored under key and whether it is present.
	Get(key string) (string, bool)
	// Set stores value under key and persists the session.
	Set(key, value string) error
	// Renew moves the attributes to a freshly minted identifier. A cookie
	// carrying the previous identifier no longer reaches them.
	Renew() error
	// Invalidate drops every attribute and ends the session.
	Invalidate() error
}

// Memory is a Session held entirely in process memory.
type Memory struct {
	mu          sync.RWMutex
	values      map[string]string
	invalidated bool
	renewals    int
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.invalidated = false
	return nil
}

func (m *Memory) Renew() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renewals++
	return nil
}

func (m *Memory) Invalidate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.values)
	m.invalidated = true
	return nil
}

// Invalidated reports whether Invalidate ran since the last Set.
func (m *Memory) Invalidated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.invalidated
}

// Renewals counts Renew calls.
func (m *Memory) Renewals() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.renewals
}
