// Package ports defines the interfaces (driven and driving ports) between
// the session engine and external infrastructure: settings persistence,
// the session log, tick scheduling, notifications, and git detection.
package ports

import (
	"context"

	"github.com/xvierd/pomo-cli/internal/domain"
)

// Settings store keys. The values are primitives rendered as text; the
// weekly ledger is a JSON array of daily stats.
const (
	KeyTotalFocusTime     = "totalFocusTime"
	KeyTotalSessions      = "totalSessions"
	KeyTodaySessions      = "todaySessions"
	KeyLastSessionDate    = "lastSessionDate"
	KeyWeeklyData         = "weeklyData"
	KeyFocusDuration      = "focusDuration"
	KeyShortBreakDuration = "shortBreakDuration"
	KeyLongBreakDuration  = "longBreakDuration"
)

// SettingsStore is a flat string-keyed store for counters, durations, and
// the weekly ledger. This is a driven port (implemented by adapters).
// Reads of missing or unreadable keys surface as errors; callers fall back
// to documented defaults rather than propagating.
type SettingsStore interface {
	// Get returns the stored value for a key.
	Get(key string) (string, error)

	// Set writes a value, replacing any previous one.
	Set(key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
}

// SessionLog persists completed focus sessions. This is a driven port
// (implemented by adapters).
type SessionLog interface {
	// Append stores a completed focus session.
	Append(ctx context.Context, session *domain.FocusSession) error

	// Recent returns up to limit sessions, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.FocusSession, error)

	// Clear removes all logged sessions.
	Clear(ctx context.Context) error
}
