package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// MemSettings is a map-backed settings store for tests.
type MemSettings struct {
	mu     sync.Mutex
	values map[string]string
}

var _ ports.SettingsStore = (*MemSettings)(nil)

// NewMemSettings returns an empty in-memory settings store.
func NewMemSettings() *MemSettings {
	return &MemSettings{values: make(map[string]string)}
}

// Get returns the stored value for a key.
func (m *MemSettings) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("get setting %q: not found", key)
	}
	return v, nil
}

// Set writes a value.
func (m *MemSettings) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes a key.
func (m *MemSettings) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// MemSessionLog is a slice-backed session log for tests.
type MemSessionLog struct {
	mu       sync.Mutex
	sessions []*domain.FocusSession
}

var _ ports.SessionLog = (*MemSessionLog)(nil)

// NewMemSessionLog returns an empty in-memory session log.
func NewMemSessionLog() *MemSessionLog {
	return &MemSessionLog{}
}

// Append stores a session.
func (m *MemSessionLog) Append(_ context.Context, session *domain.FocusSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, session)
	return nil
}

// Recent returns up to limit sessions, newest first.
func (m *MemSessionLog) Recent(_ context.Context, limit int) ([]*domain.FocusSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.FocusSession
	for i := len(m.sessions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.sessions[i])
	}
	return out, nil
}

// Clear removes all sessions.
func (m *MemSessionLog) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = nil
	return nil
}

// Len reports the number of stored sessions.
func (m *MemSessionLog) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
