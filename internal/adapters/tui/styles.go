package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
)

type styles struct {
	theme  config.ThemeConfig
	title  lipgloss.Style
	clock  lipgloss.Style
	mode   lipgloss.Style
	paused lipgloss.Style
	stats  lipgloss.Style
	help   lipgloss.Style
	frame  lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	defaults := config.DefaultThemeConfig()
	if theme.ColorFocus == "" {
		theme = defaults
	}

	return styles{
		theme:  theme,
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle)),
		clock:  lipgloss.NewStyle().Bold(true),
		mode:   lipgloss.NewStyle().Bold(true),
		paused: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorPaused)),
		stats:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorTitle)),
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
		frame:  lipgloss.NewStyle().Padding(1, 3),
	}
}

// modeColor picks the theme color for the given mode, overridden by the
// paused color while paused.
func (s styles) modeColor(mode domain.Mode, state domain.RunState) lipgloss.Color {
	if state == domain.RunPaused {
		return lipgloss.Color(s.theme.ColorPaused)
	}
	if mode.IsBreak() {
		return lipgloss.Color(s.theme.ColorBreak)
	}
	return lipgloss.Color(s.theme.ColorFocus)
}
