package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var logLimit int

// logCmd lists recent completed focus sessions.
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List recent focus sessions",
	Long:  `List recently completed focus sessions with their duration and git context.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := app.store.Sessions().Recent(context.Background(), logLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(app.config.Theme.ColorHelp))
		if len(sessions) == 0 {
			fmt.Println(dimStyle.Render("No completed focus sessions yet."))
			return nil
		}

		for _, s := range sessions {
			line := fmt.Sprintf("%s  %5.1fm", s.EndedAt.Local().Format("2006-01-02 15:04"), s.Minutes())
			if s.GitBranch != "" {
				line += dimStyle.Render(fmt.Sprintf("  %s@%s", s.GitBranch, s.ShortCommit()))
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 10, "Maximum number of sessions to show")
	rootCmd.AddCommand(logCmd)
}
