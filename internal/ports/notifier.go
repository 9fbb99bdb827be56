package ports

import "github.com/xvierd/pomo-cli/internal/domain"

// Notifier delivers completion notifications. This is a driven port
// (implemented by adapters). Delivery is fire-and-forget: the engine
// ignores the returned error.
type Notifier interface {
	// SessionComplete announces that the given mode just finished.
	SessionComplete(completed domain.Mode) error
}
