// Package domain holds the core types for the pomodoro session engine:
// timer modes, run states, daily statistics, and the focus session record.
package domain

import "errors"

// Mode identifies which interval the timer is counting down.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// RunState identifies whether the timer is advancing.
type RunState string

const (
	RunStopped RunState = "stopped"
	RunRunning RunState = "running"
	RunPaused  RunState = "paused"
)

// SessionsPerCycle is the number of focus sessions before a long break.
const SessionsPerCycle = 4

// Default durations in minutes.
const (
	DefaultFocusMinutes      = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
)

// ErrDurationOutOfRange is returned when a configured duration falls
// outside the allowed bounds for its mode.
var ErrDurationOutOfRange = errors.New("duration out of range")

// IsBreak returns true for either break mode.
func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Label returns a human-readable name for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// Label returns a human-readable name for the run state.
func (r RunState) Label() string {
	switch r {
	case RunStopped:
		return "Stopped"
	case RunRunning:
		return "Running"
	case RunPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// DefaultMinutes returns the default countdown length for the mode.
func (m Mode) DefaultMinutes() int {
	switch m {
	case ModeShortBreak:
		return DefaultShortBreakMinutes
	case ModeLongBreak:
		return DefaultLongBreakMinutes
	default:
		return DefaultFocusMinutes
	}
}

// DurationBounds returns the allowed range, in minutes, for the mode's
// configurable duration.
func (m Mode) DurationBounds() (min, max int) {
	switch m {
	case ModeShortBreak:
		return 1, 15
	case ModeLongBreak:
		return 5, 30
	default:
		return 5, 60
	}
}

// ValidateMinutes checks a candidate duration against the mode's bounds.
func (m Mode) ValidateMinutes(minutes int) error {
	min, max := m.DurationBounds()
	if minutes < min || minutes > max {
		return ErrDurationOutOfRange
	}
	return nil
}
