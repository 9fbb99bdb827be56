// Package notification provides desktop notification utilities.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// Notifier handles desktop notifications and the completion sound.
type Notifier struct {
	cfg *config.NotificationConfig
}

var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// SessionComplete announces the end of an interval with copy specific to
// the mode that just finished.
func (n *Notifier) SessionComplete(completed domain.Mode) error {
	if n.cfg == nil || !n.cfg.Enabled {
		return nil
	}

	if n.cfg.Sound {
		_ = beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
	}

	title, message := completionCopy(completed)
	return beeep.Notify(title, message, "")
}

// completionCopy returns the notification title and message for the mode
// that just finished.
func completionCopy(completed domain.Mode) (title, message string) {
	switch completed {
	case domain.ModeFocus:
		return "🍅 Focus complete!", "Great work. Time for a break."
	case domain.ModeShortBreak:
		return "☕ Break over!", "Your short break is done. Ready to focus?"
	case domain.ModeLongBreak:
		return "🌿 Long break over!", "Recharged? Let's get back to it."
	}
	return "", ""
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
