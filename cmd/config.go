package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo-cli/internal/config"
	"github.com/xvierd/pomo-cli/internal/domain"
)

var (
	cfgFocus      int
	cfgShortBreak int
	cfgLongBreak  int
)

// configCmd shows or edits timer settings. Durations are persisted in the
// settings store through the engine so a mid-session change adjusts the
// countdown; toggles live in the TOML config.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit timer settings",
	Long: `Edit timer durations and notification preferences.

With no flags, opens an interactive form. Durations are in minutes:
focus 5-60, short break 1-15, long break 5-30.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("focus") &&
			!cmd.Flags().Changed("short-break") &&
			!cmd.Flags().Changed("long-break") {
			return runConfigForm()
		}

		if cmd.Flags().Changed("focus") {
			if err := app.engine.UpdateDuration(domain.ModeFocus, cfgFocus); err != nil {
				return fmt.Errorf("focus duration %d: %w", cfgFocus, err)
			}
		}
		if cmd.Flags().Changed("short-break") {
			if err := app.engine.UpdateDuration(domain.ModeShortBreak, cfgShortBreak); err != nil {
				return fmt.Errorf("short break duration %d: %w", cfgShortBreak, err)
			}
		}
		if cmd.Flags().Changed("long-break") {
			if err := app.engine.UpdateDuration(domain.ModeLongBreak, cfgLongBreak); err != nil {
				return fmt.Errorf("long break duration %d: %w", cfgLongBreak, err)
			}
		}

		printDurations()
		return nil
	},
}

func init() {
	configCmd.Flags().IntVar(&cfgFocus, "focus", domain.DefaultFocusMinutes, "Focus duration in minutes")
	configCmd.Flags().IntVar(&cfgShortBreak, "short-break", domain.DefaultShortBreakMinutes, "Short break duration in minutes")
	configCmd.Flags().IntVar(&cfgLongBreak, "long-break", domain.DefaultLongBreakMinutes, "Long break duration in minutes")
	rootCmd.AddCommand(configCmd)
}

// runConfigForm edits durations and toggles interactively.
func runConfigForm() error {
	focus := strconv.Itoa(app.engine.Duration(domain.ModeFocus))
	short := strconv.Itoa(app.engine.Duration(domain.ModeShortBreak))
	long := strconv.Itoa(app.engine.Duration(domain.ModeLongBreak))
	notifications := app.config.Notifications.Enabled
	sound := app.config.Notifications.Sound
	autoBreaks := app.config.Timer.AutoStartBreaks
	autoFocus := app.config.Timer.AutoStartFocus

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (minutes)").Value(&focus).Validate(validateMinutes(domain.ModeFocus)),
			huh.NewInput().Title("Short break (minutes)").Value(&short).Validate(validateMinutes(domain.ModeShortBreak)),
			huh.NewInput().Title("Long break (minutes)").Value(&long).Validate(validateMinutes(domain.ModeLongBreak)),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Desktop notifications").Value(&notifications),
			huh.NewConfirm().Title("Completion sound").Value(&sound),
			huh.NewConfirm().Title("Auto-start breaks").Value(&autoBreaks),
			huh.NewConfirm().Title("Auto-start focus").Value(&autoFocus),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	for mode, raw := range map[domain.Mode]string{
		domain.ModeFocus:      focus,
		domain.ModeShortBreak: short,
		domain.ModeLongBreak:  long,
	} {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			continue // validated by the form; unreachable in practice
		}
		if err := app.engine.UpdateDuration(mode, minutes); err != nil {
			return fmt.Errorf("%s duration %d: %w", mode.Label(), minutes, err)
		}
	}

	app.config.Notifications.Enabled = notifications
	app.config.Notifications.Sound = sound
	app.config.Timer.AutoStartBreaks = autoBreaks
	app.config.Timer.AutoStartFocus = autoFocus
	if err := config.Save(app.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	printDurations()
	return nil
}

func printDurations() {
	fmt.Printf("Focus:       %d min\n", app.engine.Duration(domain.ModeFocus))
	fmt.Printf("Short break: %d min\n", app.engine.Duration(domain.ModeShortBreak))
	fmt.Printf("Long break:  %d min\n", app.engine.Duration(domain.ModeLongBreak))
}

// validateMinutes builds a huh validator enforcing the mode's bounds.
func validateMinutes(mode domain.Mode) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("enter a number of minutes")
		}
		if err := mode.ValidateMinutes(n); err != nil {
			min, max := mode.DurationBounds()
			return fmt.Errorf("must be between %d and %d", min, max)
		}
		return nil
	}
}
