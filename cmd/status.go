// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/countdown/internal/timer"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the countdown once",
	Long: `Print a single countdown frame: the phase, the time left (or elapsed, in
the live phase) and each unit's ring fill.

Examples:
  countdown status
  countdown status --format json
  countdown status --format plain --live`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	res, err := resolveTarget(false)
	if err != nil {
		return err
	}

	frame := timer.Compute(res.Spec, ctx.Now())

	switch {
	case ctx.IsJSON():
		return ctx.JSONFormatter().PrintFrame(frame)
	case ctx.IsPlain():
		ctx.CLIFormatter().PrintFramePlain(frame)
	default:
		ctx.CLIFormatter().PrintFrame(frame)
	}
	return nil
}
