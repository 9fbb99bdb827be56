package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetForce bool

// resetCmd wipes all counters, the weekly ledger, and the session log.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all statistics and session history",
	Long: `Permanently resets all counters, the weekly ledger, and the focus
session log. Configured durations are kept. This cannot be undone.
Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			fmt.Print("This will erase all recorded sessions and statistics.\nAre you sure? Type 'yes' to confirm: ")
			reader := bufio.NewReader(os.Stdin)
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))
			if input != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := app.engine.Reset(context.Background()); err != nil {
			return fmt.Errorf("failed to reset: %w", err)
		}

		fmt.Println("All statistics cleared. Fresh start.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
