// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/countdown/internal/celebrate"
	"github.com/manav03panchal/countdown/internal/errors"
	"github.com/manav03panchal/countdown/internal/logging"
	"github.com/manav03panchal/countdown/internal/model"
	"github.com/manav03panchal/countdown/internal/timer"
	"github.com/manav03panchal/countdown/internal/tui"
)

var (
	watchFlagPlain   bool
	watchFlagUnits   string
	watchFlagNoBurst bool
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"tui", "w"},
	Short:   "Show the live countdown",
	Long: `Show the countdown with one progress ring per unit. The display
refreshes every --interval and stops once the target is reached, unless the
live phase is enabled.

A short confetti burst plays when the display opens. Press q to quit.

When stdout is not a terminal, or with --plain, a line display is used instead
of the full-screen view.

Examples:
  countdown watch
  countdown watch --units hours,minutes,seconds
  countdown watch --plain --no-burst
  countdown watch --live --waiting`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchFlagPlain, "plain", false, "Use the line display instead of the full-screen view")
	watchCmd.Flags().StringVar(&watchFlagUnits, "units", "days,hours,minutes,seconds", "Units to show (comma-separated)")
	watchCmd.Flags().BoolVar(&watchFlagNoBurst, "no-burst", false, "Skip the opening confetti")
	_ = watchCmd.RegisterFlagCompletionFunc("units", completeUnits)
}

func runWatch(cmd *cobra.Command, args []string) error {
	units, err := model.ParseUnits(watchFlagUnits)
	if err != nil {
		return errors.InvalidValue(errors.ErrInvalidUnit, "units", watchFlagUnits)
	}

	res, err := resolveTarget(true)
	if err != nil {
		return err
	}
	// The store is only needed to resolve the target.
	if err := ctx.CloseStore(); err != nil {
		logging.Warn("failed to close target store", logging.KeyError, err)
	}

	radii, err := ctx.Config.RingRadii()
	if err != nil {
		return err
	}
	geometry := timer.NewGeometry(radii)

	burst := celebrate.Config{
		FadeAfter:  ctx.Config.Burst.FadeAfter,
		ClearAfter: ctx.Config.Burst.ClearAfter,
		Clock:      ctx.Clock,
	}

	logging.InfoContext(cmd.Context(), "countdown started",
		logging.KeyTarget, res.Spec.Target,
		logging.KeySource, res.Source.String(),
		logging.KeyPhase, timer.Compute(res.Spec, ctx.Now()).Phase.String(),
	)

	if watchFlagPlain || ctx.IsPlain() || !ctx.Formatter.IsTerminal() {
		return runPlainWatch(cmd.Context(), res.Spec, units, geometry, burst)
	}

	// Keep the full-screen view clean: logs go to the state directory.
	if f, err := logging.OpenFile(logging.LogPath()); err == nil {
		logCfg := logging.DefaultConfig()
		if flagDebug {
			logCfg = logging.DebugConfig()
		}
		logCfg.Output = f
		logging.Init(logCfg)
		defer f.Close()
	}

	return tui.Run(tui.Config{
		Spec:     res.Spec,
		Units:    units,
		Geometry: geometry,
		Interval: ctx.Config.SampleInterval,
		Clock:    ctx.Clock,
		Burst:    burst,
		NoBurst:  watchFlagNoBurst,
	}, tui.Options{AltScreen: true})
}

// runPlainWatch drives the line display until the target is reached or the
// process is interrupted.
func runPlainWatch(parent context.Context, spec model.TargetSpec, units []model.Unit, geometry timer.Geometry, burst celebrate.Config) error {
	runCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	display := timer.NewCountdownDisplay(os.Stdout, geometry, units...)
	display.UseColor = ctx.Formatter.IsColorEnabled()

	if !watchFlagNoBurst {
		trigger := celebrate.NewTrigger(display, burst)
		defer trigger.Stop()
		trigger.Fire()
	}

	engine := timer.NewEngine(spec, display, timer.Config{
		Interval: ctx.Config.SampleInterval,
		Clock:    ctx.Clock,
	})

	err := engine.Run(runCtx)
	os.Stdout.WriteString("\n")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err == nil && engine.Finished() {
		logging.Info("countdown finished", logging.KeyTarget, engine.Spec().Target)
	}
	return err
}
