// Package cmd provides the CLI commands for countdown.
//
// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/countdown/internal/config"
	"github.com/manav03panchal/countdown/internal/errors"
	"github.com/manav03panchal/countdown/internal/logging"
	"github.com/manav03panchal/countdown/internal/output"
	"github.com/manav03panchal/countdown/internal/parser"
	"github.com/manav03panchal/countdown/internal/runtime"
	"github.com/manav03panchal/countdown/internal/target"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat      string
	flagColor       string
	flagDebug       bool
	flagConfig      string
	flagDays        int
	flagInterval    time.Duration
	flagPersist     bool
	flagLive        bool
	flagWaiting     bool
	flagDenominator string
	flagAt          string
)

// annotationRequireStore marks commands that need the database even when
// target persistence is disabled.
const annotationRequireStore = "require-store"

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "countdown",
	Short: "A terminal countdown with progress rings",
	Long: `Countdown shows the time left until a target date as days, hours,
minutes and seconds, each with its own progress ring. The target is created
once (76 days out by default) and remembered between runs.

With --live the display keeps going after the target and counts up;
--waiting inserts a one-day countdown between the target and the live start.

Examples:
  countdown
  countdown status --format json
  countdown target set "31 december 2026 18:00"
  countdown --at +2h --persist=false
  countdown watch --live --waiting --units hours,minutes,seconds`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow __complete for dynamic completions)
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		if flagDebug {
			logging.InitDebug()
		} else {
			logging.Init(logging.DefaultConfig())
		}
		cmd.SetContext(logging.NewSessionContext(cmd.Context()))

		format, err := output.ParseFormat(flagFormat)
		if err != nil {
			return errors.NewUserErrorWithField("format", flagFormat, err.Error(), "Use --format cli, json or plain.")
		}
		colorMode, err := output.ParseColorMode(flagColor)
		if err != nil {
			return errors.NewUserErrorWithField("color", flagColor, err.Error(), "Use --color auto, always or never.")
		}

		cfg, err := config.Load(config.Options{Path: flagConfig, Flags: cmd.Flags()})
		if err != nil {
			return err
		}
		logging.DebugContext(cmd.Context(), "configuration loaded",
			logging.KeyPath, cfg.File,
			logging.KeyValue, cfg.DaysUntilTarget,
		)

		// Create runtime context
		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.Config = cfg
		opts.RequireStore = cmd.Annotations[annotationRequireStore] == "true"

		ctx, err = runtime.New(opts)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: open the live display
		return runWatch(cmd, args)
	},
}

// resolveTarget resolves the session target, honoring --at. An --at target
// is only written to the store when persistOverride is set.
func resolveTarget(persistOverride bool) (target.Result, error) {
	now := ctx.Now()
	if flagAt == "" {
		return ctx.Resolver().Resolve(now), nil
	}

	at, err := parser.ParseTarget(flagAt, now, ctx.Config.EnableLivePhase)
	if err != nil {
		return target.Result{}, err
	}
	resolver := ctx.Resolver()
	if !persistOverride {
		resolver = target.NewResolver(runtime.ResolverOptions(ctx.Config), nil)
	}
	return resolver.ResolveAt(now, at), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		// PersistentPostRunE is skipped when a command fails.
		if ctx != nil {
			_ = ctx.Close()
		}
		Report(err)
	}
	return err
}

func init() {
	defaults := config.Default()

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	pf.StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	pf.BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	pf.StringVar(&flagConfig, "config", "",
		"Config file (default "+config.DefaultPath()+")")

	// Countdown flags, bound to configuration keys
	pf.IntVar(&flagDays, "days", defaults.DaysUntilTarget,
		"Days until a newly created target")
	pf.DurationVar(&flagInterval, "interval", defaults.SampleInterval,
		"Refresh interval (100ms by default with --live)")
	pf.BoolVar(&flagPersist, "persist", defaults.PersistTarget,
		"Remember the target between runs")
	pf.BoolVar(&flagLive, "live", defaults.EnableLivePhase,
		"Count up after the target is reached")
	pf.BoolVar(&flagWaiting, "waiting", defaults.EnableWaitingPhase,
		"Wait one day between the target and the live phase (needs --live)")
	pf.StringVar(&flagDenominator, "denominator", defaults.Denominator,
		"Days ring scale: fixed or dynamic")
	pf.StringVar(&flagAt, "at", "",
		"Use this target instead of the stored one (e.g. +2h, 2026-12-31T18:00:00Z); watch also stores it")

	_ = rootCmd.RegisterFlagCompletionFunc("format", completeFixed("cli", "json", "plain"))
	_ = rootCmd.RegisterFlagCompletionFunc("color", completeFixed("auto", "always", "never"))
	_ = rootCmd.RegisterFlagCompletionFunc("denominator",
		completeFixed("fixed\tdays ring scaled to --days", "dynamic\tdays ring scaled to the days left"))
	_ = rootCmd.RegisterFlagCompletionFunc("at", completeWhen)

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("countdown %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// Report prints an error with its suggestion.
func Report(err error) {
	if ctx != nil && ctx.IsJSON() {
		status, detail := runtime.ErrorStatus(err)
		_ = ctx.JSONFormatter().PrintError(status, err.Error(), detail, runtime.Suggestion(err))
		return
	}
	os.Stderr.WriteString("Error: " + runtime.FormatError(err) + "\n")
}
