package domain

import (
	"time"

	"github.com/google/uuid"
)

// FocusSession is one completed focus interval as persisted in the session
// log. Git context is best-effort and empty outside a repository.
type FocusSession struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	Seconds   float64
	GitBranch string
	GitCommit string
}

// NewFocusSession builds a log record for a focus interval that just
// completed.
func NewFocusSession(start, end time.Time, seconds float64) *FocusSession {
	return &FocusSession{
		ID:        uuid.NewString(),
		StartedAt: start,
		EndedAt:   end,
		Seconds:   seconds,
	}
}

// Minutes returns the session length in minutes.
func (s *FocusSession) Minutes() float64 {
	return s.Seconds / 60
}

// ShortCommit returns an abbreviated commit hash for display.
func (s *FocusSession) ShortCommit() string {
	if len(s.GitCommit) > 7 {
		return s.GitCommit[:7]
	}
	return s.GitCommit
}
