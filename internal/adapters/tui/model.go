// Package tui provides the fullscreen timer interface using the Bubbletea
// framework. The TUI is a host over the session engine: it forwards
// commands, polls snapshots at 1 Hz for display, and applies the
// auto-start preference when it observes a transition boundary.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/engine"
)

// tickMsg is sent on every display tick.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model represents the TUI state.
type Model struct {
	eng      *engine.Engine
	cfg      *config.Config
	styles   styles
	progress progress.Model
	help     help.Model

	snap   engine.Snapshot
	streak int
	width  int
	height int
}

// NewModel creates a new TUI model over a running engine instance.
func NewModel(eng *engine.Engine, cfg *config.Config) Model {
	return Model{
		eng:      eng,
		cfg:      cfg,
		styles:   newStyles(cfg.Theme),
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
		snap:     eng.Snapshot(),
		streak:   eng.CurrentStreak(),
	}
}

// Init starts the display tick.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = msg.Width - 10
		if m.progress.Width > 50 {
			m.progress.Width = 50
		}
		return m, nil

	case tickMsg:
		prev := m.snap
		m.snap = m.eng.Snapshot()
		if transitioned(prev, m.snap) {
			m.streak = m.eng.CurrentStreak()
			if m.shouldAutoStart(m.snap.Mode) {
				m.eng.Start()
				m.snap = m.eng.Snapshot()
			}
		}
		return m, tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Start):
			m.eng.Start()
		case key.Matches(msg, keys.Pause):
			m.eng.Pause()
		case key.Matches(msg, keys.Stop):
			m.eng.Stop()
		case key.Matches(msg, keys.Skip):
			m.eng.Skip()
			m.streak = m.eng.CurrentStreak()
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		m.snap = m.eng.Snapshot()
		return m, nil
	}

	return m, nil
}

// transitioned reports whether a completion boundary was crossed between
// two snapshots: the timer halted and the mode moved on.
func transitioned(prev, cur engine.Snapshot) bool {
	return prev.RunState == domain.RunRunning &&
		cur.RunState == domain.RunStopped &&
		cur.Mode != prev.Mode
}

func (m Model) shouldAutoStart(next domain.Mode) bool {
	if next.IsBreak() {
		return m.cfg.Timer.AutoStartBreaks
	}
	return m.cfg.Timer.AutoStartFocus
}

// View renders the timer screen.
func (m Model) View() string {
	color := m.styles.modeColor(m.snap.Mode, m.snap.RunState)

	var b strings.Builder
	b.WriteString(m.styles.title.Render("🍅 pomo"))
	b.WriteString("\n\n")

	modeLine := m.styles.mode.Foreground(color).Render(m.snap.Mode.Label())
	if m.snap.RunState != domain.RunRunning {
		modeLine += m.styles.paused.Render("  · " + m.snap.RunState.Label())
	}
	b.WriteString(modeLine)
	b.WriteString("\n\n")

	b.WriteString(m.styles.clock.Foreground(color).Render(formatClock(m.snap.Remaining)))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.snap.Progress()))
	b.WriteString("\n\n")

	b.WriteString(cycleDots(m.snap.CycleCount))
	b.WriteString("\n\n")

	b.WriteString(m.styles.stats.Render(fmt.Sprintf(
		"Today: %d sessions · Total: %d · Streak: %d days",
		m.snap.TodaySessions, m.snap.TotalSessions, m.streak,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.styles.help.Render(m.help.View(keys)))

	return m.styles.frame.Render(b.String())
}

// formatClock renders remaining seconds as m:ss, or h:mm:ss past an hour.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	mi := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mi, s)
	}
	return fmt.Sprintf("%02d:%02d", mi, s)
}

// cycleDots marks progress through the 4-session cycle.
func cycleDots(cycleCount int) string {
	done := cycleCount % domain.SessionsPerCycle
	if done == 0 && cycleCount > 0 {
		done = domain.SessionsPerCycle
	}
	var dots []string
	for i := 0; i < domain.SessionsPerCycle; i++ {
		if i < done {
			dots = append(dots, "●")
		} else {
			dots = append(dots, "○")
		}
	}
	return strings.Join(dots, " ")
}

// Run starts the fullscreen timer and blocks until the user quits.
func Run(eng *engine.Engine, cfg *config.Config) error {
	program := tea.NewProgram(NewModel(eng, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
