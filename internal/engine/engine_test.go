package engine

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/pomo-cli/internal/adapters/storage"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// manualScheduler lets tests deliver ticks by hand.
type manualScheduler struct {
	mu     sync.Mutex
	fn     func()
	starts int
}

func (s *manualScheduler) Start(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fn == nil {
		s.fn = fn
	}
	s.starts++
}

func (s *manualScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = nil
}

func (s *manualScheduler) armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn != nil
}

func (s *manualScheduler) step() {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

type fakeNotifier struct {
	completed []domain.Mode
}

func (n *fakeNotifier) SessionComplete(m domain.Mode) error {
	n.completed = append(n.completed, m)
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEngine struct {
	eng      *Engine
	settings *storage.MemSettings
	log      *storage.MemSessionLog
	sched    *manualScheduler
	notifier *fakeNotifier
	clock    *fakeClock
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	te := &testEngine{
		settings: storage.NewMemSettings(),
		log:      storage.NewMemSessionLog(),
		sched:    &manualScheduler{},
		notifier: &fakeNotifier{},
		clock:    &fakeClock{t: time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)},
	}
	te.eng = New(te.settings, te.log, te.sched, te.notifier, nil)
	te.eng.now = te.clock.Now
	return te
}

func TestEngine_InitialState(t *testing.T) {
	te := newTestEngine(t)
	snap := te.eng.Snapshot()

	assert.Equal(t, domain.ModeFocus, snap.Mode)
	assert.Equal(t, domain.RunStopped, snap.RunState)
	assert.Equal(t, domain.DefaultFocusMinutes*60, snap.Remaining)
	assert.Equal(t, 0, snap.CycleCount)
}

func TestEngine_StartPauseStop(t *testing.T) {
	te := newTestEngine(t)

	t.Run("start runs and arms the scheduler", func(t *testing.T) {
		te.eng.Start()
		require.Equal(t, domain.RunRunning, te.eng.Snapshot().RunState)
		require.True(t, te.sched.armed())
	})

	t.Run("start while running is a no-op", func(t *testing.T) {
		before := te.eng.Snapshot()
		te.eng.Start()
		assert.Equal(t, before, te.eng.Snapshot())
	})

	t.Run("pause halts ticking and preserves remaining", func(t *testing.T) {
		te.sched.step()
		te.sched.step()
		remaining := te.eng.Snapshot().Remaining
		te.eng.Pause()

		snap := te.eng.Snapshot()
		assert.Equal(t, domain.RunPaused, snap.RunState)
		assert.Equal(t, remaining, snap.Remaining)
		assert.False(t, te.sched.armed())
	})

	t.Run("stop resets remaining without advancing mode", func(t *testing.T) {
		te.eng.Stop()

		snap := te.eng.Snapshot()
		assert.Equal(t, domain.RunStopped, snap.RunState)
		assert.Equal(t, domain.ModeFocus, snap.Mode)
		assert.Equal(t, snap.FocusMinutes*60, snap.Remaining)
		assert.Equal(t, 0, snap.TotalSessions, "a stopped session records nothing")
	})
}

func TestEngine_TickCountdown(t *testing.T) {
	te := newTestEngine(t)
	te.eng.Start()

	te.eng.mu.Lock()
	te.eng.remaining = 2
	te.eng.mu.Unlock()

	te.sched.step()
	assert.Equal(t, 1, te.eng.Snapshot().Remaining)
	te.sched.step()
	assert.Equal(t, 0, te.eng.Snapshot().Remaining)

	// The tick after reaching zero runs the completion transition.
	te.clock.Advance(25 * time.Minute)
	te.sched.step()

	snap := te.eng.Snapshot()
	assert.Equal(t, domain.ModeShortBreak, snap.Mode)
	assert.Equal(t, domain.RunStopped, snap.RunState)
	assert.Equal(t, snap.ShortBreakMinutes*60, snap.Remaining)
	assert.Equal(t, 1, snap.TotalSessions)
	assert.False(t, te.sched.armed())
}

func TestEngine_TickIgnoredWhenNotRunning(t *testing.T) {
	te := newTestEngine(t)
	te.eng.Start()
	te.eng.Pause()

	before := te.eng.Snapshot()
	te.eng.tick()
	assert.Equal(t, before, te.eng.Snapshot())
	assert.GreaterOrEqual(t, te.eng.Snapshot().Remaining, 0)
}

func TestEngine_CycleRouting(t *testing.T) {
	te := newTestEngine(t)

	completeFocus := func() domain.Mode {
		te.eng.Start()
		te.clock.Advance(time.Minute)
		te.eng.Skip()
		return te.eng.Snapshot().Mode
	}
	completeBreak := func() domain.Mode {
		te.eng.Start()
		te.eng.Skip()
		return te.eng.Snapshot().Mode
	}

	// Focus 1-3 route to short breaks, the 4th to a long break.
	assert.Equal(t, domain.ModeShortBreak, completeFocus())
	assert.Equal(t, domain.ModeFocus, completeBreak())
	assert.Equal(t, domain.ModeShortBreak, completeFocus())
	assert.Equal(t, domain.ModeFocus, completeBreak())
	assert.Equal(t, domain.ModeShortBreak, completeFocus())
	assert.Equal(t, domain.ModeFocus, completeBreak())
	assert.Equal(t, domain.ModeLongBreak, completeFocus())

	assert.Equal(t, 4, te.eng.Snapshot().CycleCount)
	assert.Equal(t, []domain.Mode{
		domain.ModeFocus, domain.ModeShortBreak,
		domain.ModeFocus, domain.ModeShortBreak,
		domain.ModeFocus, domain.ModeShortBreak,
		domain.ModeFocus,
	}, te.notifier.completed)
}

func TestEngine_FocusCompletionRecords(t *testing.T) {
	te := newTestEngine(t)

	te.eng.Start()
	te.clock.Advance(25 * time.Minute)
	te.eng.Skip()

	snap := te.eng.Snapshot()
	assert.Equal(t, 1, snap.TotalSessions)
	assert.Equal(t, 1, snap.TodaySessions)
	assert.InDelta(t, 1500, snap.TotalFocusSeconds, 0.001)

	t.Run("counters are persisted", func(t *testing.T) {
		total, err := te.settings.Get(ports.KeyTotalSessions)
		require.NoError(t, err)
		assert.Equal(t, "1", total)

		last, err := te.settings.Get(ports.KeyLastSessionDate)
		require.NoError(t, err)
		assert.Equal(t, te.clock.Now().Format(domain.DateLayout), last)
	})

	t.Run("session log receives the record", func(t *testing.T) {
		require.Equal(t, 1, te.log.Len())
		sessions, err := te.log.Recent(context.Background(), 1)
		require.NoError(t, err)
		assert.InDelta(t, 1500, sessions[0].Seconds, 0.001)
	})

	t.Run("break completion records nothing", func(t *testing.T) {
		te.eng.Start()
		te.eng.Skip()
		assert.Equal(t, 1, te.eng.Snapshot().TotalSessions)
		assert.Equal(t, 1, te.log.Len())
	})
}

func TestEngine_PauseKeepsElapsedBaseline(t *testing.T) {
	te := newTestEngine(t)

	te.eng.Start()
	te.clock.Advance(10 * time.Minute)
	te.eng.Pause()
	te.clock.Advance(5 * time.Minute)
	te.eng.Start() // resume
	te.clock.Advance(10 * time.Minute)
	te.eng.Skip()

	// Elapsed covers the full 25 wall-clock minutes from the original
	// session start, pause included.
	assert.InDelta(t, 1500, te.eng.Snapshot().TotalFocusSeconds, 0.001)
}

func TestEngine_SkipWithoutStart(t *testing.T) {
	te := newTestEngine(t)
	te.eng.Skip()

	snap := te.eng.Snapshot()
	assert.Equal(t, domain.ModeShortBreak, snap.Mode)
	assert.Equal(t, 1, snap.TotalSessions)
	assert.InDelta(t, 0, snap.TotalFocusSeconds, 0.001, "no baseline means zero elapsed")
}

func TestEngine_UpdateDuration(t *testing.T) {
	t.Run("rejects out-of-range values", func(t *testing.T) {
		te := newTestEngine(t)
		err := te.eng.UpdateDuration(domain.ModeFocus, 61)
		assert.ErrorIs(t, err, domain.ErrDurationOutOfRange)
		err = te.eng.UpdateDuration(domain.ModeShortBreak, 0)
		assert.ErrorIs(t, err, domain.ErrDurationOutOfRange)
	})

	t.Run("stopped timer resets to the new duration", func(t *testing.T) {
		te := newTestEngine(t)
		require.NoError(t, te.eng.UpdateDuration(domain.ModeFocus, 30))
		assert.Equal(t, 30*60, te.eng.Snapshot().Remaining)
	})

	t.Run("running timer keeps elapsed credit", func(t *testing.T) {
		te := newTestEngine(t)
		te.eng.Start()
		te.clock.Advance(10 * time.Minute)
		require.NoError(t, te.eng.UpdateDuration(domain.ModeFocus, 15))
		assert.Equal(t, 300, te.eng.Snapshot().Remaining)
	})

	t.Run("shrinking below elapsed floors at zero", func(t *testing.T) {
		te := newTestEngine(t)
		te.eng.Start()
		te.clock.Advance(20 * time.Minute)
		require.NoError(t, te.eng.UpdateDuration(domain.ModeFocus, 15))
		assert.Equal(t, 0, te.eng.Snapshot().Remaining)
	})

	t.Run("other modes leave the countdown alone", func(t *testing.T) {
		te := newTestEngine(t)
		before := te.eng.Snapshot().Remaining
		require.NoError(t, te.eng.UpdateDuration(domain.ModeLongBreak, 20))
		assert.Equal(t, before, te.eng.Snapshot().Remaining)
		assert.Equal(t, 20, te.eng.Duration(domain.ModeLongBreak))
	})

	t.Run("is persisted and survives reconstruction", func(t *testing.T) {
		te := newTestEngine(t)
		require.NoError(t, te.eng.UpdateDuration(domain.ModeFocus, 45))

		fresh := New(te.settings, te.log, &manualScheduler{}, nil, nil)
		assert.Equal(t, 45, fresh.Duration(domain.ModeFocus))
		assert.Equal(t, 45*60, fresh.Snapshot().Remaining)
	})
}

func TestEngine_DayRollover(t *testing.T) {
	settings := storage.NewMemSettings()
	require.NoError(t, settings.Set(ports.KeyLastSessionDate, "2000-01-01"))
	require.NoError(t, settings.Set(ports.KeyTodaySessions, "5"))
	require.NoError(t, settings.Set(ports.KeyTotalSessions, "40"))

	eng := New(settings, nil, &manualScheduler{}, nil, nil)

	snap := eng.Snapshot()
	assert.Equal(t, 0, snap.TodaySessions, "stale today counter resets lazily")
	assert.Equal(t, 40, snap.TotalSessions)

	stored, err := settings.Get(ports.KeyTodaySessions)
	require.NoError(t, err)
	assert.Equal(t, "0", stored)
}

func TestEngine_Reset(t *testing.T) {
	te := newTestEngine(t)

	te.eng.Start()
	te.clock.Advance(25 * time.Minute)
	te.eng.Skip()
	require.NoError(t, te.eng.UpdateDuration(domain.ModeFocus, 30))

	require.NoError(t, te.eng.Reset(context.Background()))

	snap := te.eng.Snapshot()
	assert.Equal(t, domain.ModeFocus, snap.Mode)
	assert.Equal(t, domain.RunStopped, snap.RunState)
	assert.Equal(t, 0, snap.TotalSessions)
	assert.Equal(t, 0, snap.TodaySessions)
	assert.InDelta(t, 0, snap.TotalFocusSeconds, 0.001)
	assert.Equal(t, 0, snap.CycleCount)
	assert.Equal(t, 30*60, snap.Remaining, "configured durations survive a reset")
	assert.Empty(t, te.eng.WeeklyData())
	assert.Equal(t, 0, te.log.Len())

	raw, err := te.settings.Get(ports.KeyWeeklyData)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestEngine_Subscribe(t *testing.T) {
	te := newTestEngine(t)

	var seen []Snapshot
	te.eng.Subscribe(func(s Snapshot) { seen = append(seen, s) })

	te.eng.Start()
	te.eng.Pause()
	te.eng.Stop()

	require.Len(t, seen, 3)
	assert.Equal(t, domain.RunRunning, seen[0].RunState)
	assert.Equal(t, domain.RunPaused, seen[1].RunState)
	assert.Equal(t, domain.RunStopped, seen[2].RunState)
}

func TestEngine_LoadsCountersFromStore(t *testing.T) {
	settings := storage.NewMemSettings()
	today := time.Now().Format(domain.DateLayout)
	require.NoError(t, settings.Set(ports.KeyLastSessionDate, today))
	require.NoError(t, settings.Set(ports.KeyTodaySessions, "3"))
	require.NoError(t, settings.Set(ports.KeyTotalSessions, "12"))
	require.NoError(t, settings.Set(ports.KeyTotalFocusTime, strconv.Itoa(12*1500)))

	eng := New(settings, nil, &manualScheduler{}, nil, nil)

	snap := eng.Snapshot()
	assert.Equal(t, 3, snap.TodaySessions)
	assert.Equal(t, 12, snap.TotalSessions)
	assert.InDelta(t, 18000, snap.TotalFocusSeconds, 0.001)
}
