package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusJSON bool

// statusCmd prints a one-shot view of the persisted statistics.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current statistics",
	Long:  `Display today's session count, lifetime totals, and the current streak.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := app.engine.Snapshot()
		streak := app.engine.CurrentStreak()

		if statusJSON {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"mode":                string(snap.Mode),
				"run_state":           string(snap.RunState),
				"remaining_seconds":   snap.Remaining,
				"today_sessions":      snap.TodaySessions,
				"total_sessions":      snap.TotalSessions,
				"total_focus_seconds": snap.TotalFocusSeconds,
				"streak_days":         streak,
				"focus_minutes":       snap.FocusMinutes,
				"short_break_minutes": snap.ShortBreakMinutes,
				"long_break_minutes":  snap.LongBreakMinutes,
			})
		}

		hours := int(snap.TotalFocusSeconds) / 3600
		minutes := (int(snap.TotalFocusSeconds) % 3600) / 60

		fmt.Printf("Mode:    %s (%s)\n", snap.Mode.Label(), snap.RunState.Label())
		fmt.Printf("Today:   %d sessions\n", snap.TodaySessions)
		fmt.Printf("Total:   %d sessions, %dh %dm focused\n", snap.TotalSessions, hours, minutes)
		fmt.Printf("Streak:  %d days\n", streak)
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(statusCmd)
}
