// Package schedule provides the time.Ticker implementation of the
// engine's periodic scheduler port.
package schedule

import (
	"sync"
	"time"

	"github.com/xvierd/pomo-cli/internal/ports"
)

// Ticker delivers 1 Hz callbacks from a background goroutine. At most one
// tick source is active at a time; Start while armed is a no-op.
type Ticker struct {
	mu     sync.Mutex
	cancel chan struct{}
}

var _ ports.Scheduler = (*Ticker)(nil)

// NewTicker returns an idle ticker.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Start arms the ticker with a callback invoked once per second.
func (t *Ticker) Start(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}

	done := make(chan struct{})
	t.cancel = done

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
}

// Stop disarms the ticker. Safe to call from inside the tick callback:
// the goroutine observes the closed channel on its next select.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel == nil {
		return
	}
	close(t.cancel)
	t.cancel = nil
}
