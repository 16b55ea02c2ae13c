package main

import (
	"github.com/spf13/cobra"

	"github.com/gcslaoli/text-watermark-go/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Open, preview, watermark and save images from a terminal session",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// runInteractive keeps the no-op logger: log lines would corrupt the screen.
func runInteractive(cmd *cobra.Command, args []string) error {
	return tui.Run(newSession(cfg.Params(), logger), cfg)
}
