package ports

// Scheduler is the periodic tick capability supplied by the host: call the
// registered function roughly once per second while armed. This is a
// driven port (implemented by adapters). Implementations must tolerate
// Stop being called from inside the tick callback.
type Scheduler interface {
	// Start arms the scheduler with a 1 Hz callback. Starting an already
	// armed scheduler is a no-op; there is never more than one active
	// tick source.
	Start(fn func())

	// Stop disarms the scheduler. Stopping an idle scheduler is a no-op.
	Stop()
}
