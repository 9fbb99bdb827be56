package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo-cli/internal/adapters/tui"
)

// startCmd opens the fullscreen timer, same as running pomo bare.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Open the timer",
	Long:  `Open the fullscreen timer. The countdown begins when you press s.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(app.engine, app.config)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
