// Package engine implements the pomodoro session engine: a timer state
// machine driven by a 1 Hz scheduler, with persisted counters and a
// trailing 7-day statistics ledger.
package engine

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// Snapshot is an immutable view of the engine state, published to
// listeners after every committed mutation.
type Snapshot struct {
	Mode              domain.Mode
	RunState          domain.RunState
	Remaining         int // seconds
	CycleCount        int
	TotalSessions     int
	TodaySessions     int
	TotalFocusSeconds float64
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
}

// DurationSeconds returns the full countdown length for the snapshot's
// current mode.
func (s Snapshot) DurationSeconds() int {
	switch s.Mode {
	case domain.ModeShortBreak:
		return s.ShortBreakMinutes * 60
	case domain.ModeLongBreak:
		return s.LongBreakMinutes * 60
	default:
		return s.FocusMinutes * 60
	}
}

// Progress returns completion of the current countdown in [0, 1].
func (s Snapshot) Progress() float64 {
	total := s.DurationSeconds()
	if total == 0 {
		return 0
	}
	p := 1 - float64(s.Remaining)/float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Engine is the session engine. One instance is constructed at application
// start and shared by reference; reset is a method, never a replacement
// instance. All mutations go through the mutex because ticks arrive from
// the scheduler goroutine while commands arrive from the host.
type Engine struct {
	mu       sync.Mutex
	settings ports.SettingsStore
	log      ports.SessionLog
	sched    ports.Scheduler
	notifier ports.Notifier
	git      ports.GitDetector
	now      func() time.Time

	mode         domain.Mode
	runState     domain.RunState
	remaining    int // seconds
	cycleCount   int
	sessionStart time.Time // zero when no session baseline exists

	durations map[domain.Mode]int // minutes

	totalFocusSeconds float64
	totalSessions     int
	todaySessions     int
	lastSessionDate   string

	listeners []func(Snapshot)
}

// New constructs the engine and synchronously loads persisted state.
// log, notifier, and git may be nil. A lastSessionDate from a previous
// day lazily resets the today counter.
func New(settings ports.SettingsStore, log ports.SessionLog, sched ports.Scheduler, notifier ports.Notifier, git ports.GitDetector) *Engine {
	e := &Engine{
		settings: settings,
		log:      log,
		sched:    sched,
		notifier: notifier,
		git:      git,
		now:      time.Now,
		mode:     domain.ModeFocus,
		runState: domain.RunStopped,
	}

	e.durations = map[domain.Mode]int{
		domain.ModeFocus:      e.loadDuration(ports.KeyFocusDuration, domain.ModeFocus),
		domain.ModeShortBreak: e.loadDuration(ports.KeyShortBreakDuration, domain.ModeShortBreak),
		domain.ModeLongBreak:  e.loadDuration(ports.KeyLongBreakDuration, domain.ModeLongBreak),
	}
	e.remaining = e.durationSeconds(domain.ModeFocus)

	e.totalFocusSeconds = e.getFloat(ports.KeyTotalFocusTime, 0)
	e.totalSessions = e.getInt(ports.KeyTotalSessions, 0)
	e.todaySessions = e.getInt(ports.KeyTodaySessions, 0)
	e.lastSessionDate = e.getString(ports.KeyLastSessionDate, "")

	if today := e.now().Format(domain.DateLayout); e.lastSessionDate != today {
		e.todaySessions = 0
		_ = e.settings.Set(ports.KeyTodaySessions, "0")
	}

	return e
}

// Subscribe registers a listener called synchronously with a consistent
// snapshot after each state change.
func (e *Engine) Subscribe(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Start arms the tick source and begins (or resumes) the countdown.
// Calling Start while already running is a no-op. Resuming from pause
// keeps the original session baseline so elapsed-time accounting reflects
// full wall-clock time.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.runState == domain.RunRunning {
		e.mu.Unlock()
		return
	}
	if e.runState == domain.RunStopped || e.sessionStart.IsZero() {
		e.sessionStart = e.now()
	}
	e.runState = domain.RunRunning
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.sched.Start(e.tick)
	e.publish(snap)
}

// Pause halts ticking while preserving the remaining time and the session
// baseline.
func (e *Engine) Pause() {
	e.sched.Stop()

	e.mu.Lock()
	e.runState = domain.RunPaused
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
}

// Stop abandons the current countdown: the mode stays put, the remaining
// time resets to the full duration, and nothing is recorded.
func (e *Engine) Stop() {
	e.sched.Stop()

	e.mu.Lock()
	e.runState = domain.RunStopped
	e.remaining = e.durationSeconds(e.mode)
	e.sessionStart = time.Time{}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
}

// Skip forces an immediate mode transition, identical to natural
// completion including statistics recording when leaving focus.
func (e *Engine) Skip() {
	e.mu.Lock()
	e.completeLocked()
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
}

// tick advances the countdown by one second. Invoked by the scheduler
// while running; a tick that lands after a stop or pause is ignored.
func (e *Engine) tick() {
	e.mu.Lock()
	if e.runState != domain.RunRunning {
		e.mu.Unlock()
		return
	}
	if e.remaining > 0 {
		e.remaining--
	} else {
		e.completeLocked()
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
}

// completeLocked is the shared transition for tick-driven completion and
// Skip. The completed mode is captured first so the notification names
// the interval that ended, not the upcoming one. The engine always halts
// at the boundary; auto-continuing is a host decision.
func (e *Engine) completeLocked() {
	e.sched.Stop()
	completed := e.mode

	if completed == domain.ModeFocus {
		now := e.now()
		var elapsed float64
		if !e.sessionStart.IsZero() {
			elapsed = now.Sub(e.sessionStart).Seconds()
		}

		e.cycleCount++
		e.totalSessions++
		e.todaySessions++
		e.totalFocusSeconds += elapsed
		e.recordFocusLocked(elapsed, now)
	}

	if completed == domain.ModeFocus {
		if e.cycleCount%domain.SessionsPerCycle == 0 {
			e.mode = domain.ModeLongBreak
		} else {
			e.mode = domain.ModeShortBreak
		}
	} else {
		e.mode = domain.ModeFocus
	}

	e.remaining = e.durationSeconds(e.mode)
	e.runState = domain.RunStopped
	e.sessionStart = time.Time{}

	if e.notifier != nil {
		_ = e.notifier.SessionComplete(completed)
	}
}

// UpdateDuration sets a mode's configured duration in minutes. When the
// affected mode is the current one, a stopped timer resets to the new full
// duration; a running or paused timer keeps credit for elapsed wall-clock
// time.
func (e *Engine) UpdateDuration(mode domain.Mode, minutes int) error {
	if err := mode.ValidateMinutes(minutes); err != nil {
		return err
	}

	e.mu.Lock()
	e.durations[mode] = minutes
	_ = e.settings.Set(durationKey(mode), strconv.Itoa(minutes))

	if mode == e.mode {
		if e.runState == domain.RunStopped {
			e.remaining = minutes * 60
		} else {
			var elapsed int
			if !e.sessionStart.IsZero() {
				elapsed = int(e.now().Sub(e.sessionStart).Seconds())
			}
			remaining := minutes*60 - elapsed
			if remaining < 0 {
				remaining = 0
			}
			e.remaining = remaining
		}
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.publish(snap)
	return nil
}

// Duration returns the configured minutes for a mode.
func (e *Engine) Duration(mode domain.Mode) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.durations[mode]
}

// Reset clears every persisted counter, empties the ledger and session
// log, and reinitializes the timer to a stopped focus session at full
// duration. This is the only operation that destroys ledger history.
func (e *Engine) Reset(ctx context.Context) error {
	e.sched.Stop()

	e.mu.Lock()
	e.totalFocusSeconds = 0
	e.totalSessions = 0
	e.todaySessions = 0
	e.lastSessionDate = ""
	e.cycleCount = 0

	_ = e.settings.Set(ports.KeyTotalFocusTime, "0")
	_ = e.settings.Set(ports.KeyTotalSessions, "0")
	_ = e.settings.Set(ports.KeyTodaySessions, "0")
	_ = e.settings.Set(ports.KeyLastSessionDate, "")
	_ = e.settings.Set(ports.KeyWeeklyData, "[]")

	e.mode = domain.ModeFocus
	e.runState = domain.RunStopped
	e.remaining = e.durationSeconds(domain.ModeFocus)
	e.sessionStart = time.Time{}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	var err error
	if e.log != nil {
		err = e.log.Clear(ctx)
	}

	e.publish(snap)
	return err
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Mode:              e.mode,
		RunState:          e.runState,
		Remaining:         e.remaining,
		CycleCount:        e.cycleCount,
		TotalSessions:     e.totalSessions,
		TodaySessions:     e.todaySessions,
		TotalFocusSeconds: e.totalFocusSeconds,
		FocusMinutes:      e.durations[domain.ModeFocus],
		ShortBreakMinutes: e.durations[domain.ModeShortBreak],
		LongBreakMinutes:  e.durations[domain.ModeLongBreak],
	}
}

// publish runs listeners outside the lock so a listener may call back
// into the engine.
func (e *Engine) publish(snap Snapshot) {
	e.mu.Lock()
	listeners := make([]func(Snapshot), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

func (e *Engine) durationSeconds(mode domain.Mode) int {
	return e.durations[mode] * 60
}

func durationKey(mode domain.Mode) string {
	switch mode {
	case domain.ModeShortBreak:
		return ports.KeyShortBreakDuration
	case domain.ModeLongBreak:
		return ports.KeyLongBreakDuration
	default:
		return ports.KeyFocusDuration
	}
}

// loadDuration reads a configured duration, falling back to the mode
// default when the key is missing, unparsable, or out of bounds.
func (e *Engine) loadDuration(key string, mode domain.Mode) int {
	minutes := e.getInt(key, mode.DefaultMinutes())
	if mode.ValidateMinutes(minutes) != nil {
		return mode.DefaultMinutes()
	}
	return minutes
}

func (e *Engine) getString(key, fallback string) string {
	v, err := e.settings.Get(key)
	if err != nil {
		return fallback
	}
	return v
}

func (e *Engine) getInt(key string, fallback int) int {
	v, err := e.settings.Get(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func (e *Engine) getFloat(key string, fallback float64) float64 {
	v, err := e.settings.Get(key)
	if err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return f
}

func (e *Engine) saveCountersLocked() {
	// Failed writes leave the in-memory state authoritative.
	_ = e.settings.Set(ports.KeyTotalFocusTime, strconv.FormatFloat(e.totalFocusSeconds, 'f', -1, 64))
	_ = e.settings.Set(ports.KeyTotalSessions, strconv.Itoa(e.totalSessions))
	_ = e.settings.Set(ports.KeyTodaySessions, strconv.Itoa(e.todaySessions))
	_ = e.settings.Set(ports.KeyLastSessionDate, e.lastSessionDate)
}
