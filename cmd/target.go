// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/countdown/internal/errors"
	"github.com/manav03panchal/countdown/internal/logging"
	"github.com/manav03panchal/countdown/internal/output"
	"github.com/manav03panchal/countdown/internal/parser"
	"github.com/manav03panchal/countdown/internal/runtime"
	"github.com/manav03panchal/countdown/internal/target"
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Show or change the countdown target",
	Long: `Show the target the countdown runs toward and where it came from.

The first run creates a target --days days out and stores it; later runs reuse
it until it is changed with 'target set' or removed with 'target reset'.

Examples:
  countdown target
  countdown target set "31 december 2026 18:00"
  countdown target set +76d
  countdown target reset`,
	Args: cobra.NoArgs,
	RunE: runTargetShow,
}

var targetSetCmd = &cobra.Command{
	Use:   "set <when>",
	Short: "Store a new target",
	Long: `Store a new countdown target.

Accepted forms:
  +90m, +12h, +76d, +2w     relative to now
  2026-12-31T18:00:00Z      RFC 3339
  2026-12-31 18:00          local time
  next friday 9am           natural language

A past target is only accepted with --live.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTargetSet,
}

var targetResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Remove the stored target",
	Long:        `Remove the stored target. The next run creates a fresh one.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationRequireStore: "true"},
	RunE:        runTargetReset,
}

func init() {
	rootCmd.AddCommand(targetCmd)
	targetCmd.AddCommand(targetSetCmd)
	targetCmd.AddCommand(targetResetCmd)
	targetSetCmd.ValidArgsFunction = completeWhen
}

func runTargetShow(cmd *cobra.Command, args []string) error {
	res, err := resolveTarget(false)
	if err != nil {
		return err
	}
	return printTarget(res)
}

func runTargetSet(cmd *cobra.Command, args []string) error {
	if err := requireStore(); err != nil {
		return err
	}

	now := ctx.Now()
	at, err := parser.ParseTargetArgs(args, now, ctx.Config.EnableLivePhase)
	if err != nil {
		return err
	}

	key := ctx.Config.StorageKey
	if err := ctx.TargetRepo.Set(key, target.FormatStored(at)); err != nil {
		return runtime.WrapStoreError(err, "set", ctx.DB.Path())
	}
	logging.InfoContext(cmd.Context(), "target set",
		logging.KeyKey, key,
		logging.KeyTarget, at,
	)

	res := ctx.Resolver().Resolve(now)
	return printTarget(res)
}

func runTargetReset(cmd *cobra.Command, args []string) error {
	if ctx.StoreErr != nil {
		return ctx.StoreErr
	}

	key := ctx.Config.StorageKey
	existed, err := ctx.TargetRepo.Exists(key)
	if err != nil {
		return runtime.WrapStoreError(err, "read", ctx.DB.Path())
	}
	if existed {
		if err := ctx.TargetRepo.Delete(key); err != nil {
			return runtime.WrapStoreError(err, "delete", ctx.DB.Path())
		}
		logging.InfoContext(cmd.Context(), "target reset", logging.KeyKey, key)
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintReset(key, existed)
	}
	ctx.CLIFormatter().PrintReset(key, existed)
	return nil
}

// requireStore reports why the target cannot be stored, if it cannot.
func requireStore() error {
	if !ctx.Config.PersistTarget {
		return &errors.UserError{
			Message:    errors.ErrNotPersistent.Error(),
			Suggestion: errors.Suggestions[errors.ErrNotPersistent],
			Cause:      errors.ErrNotPersistent,
		}
	}
	if !ctx.HasStore() {
		return ctx.StoreErr
	}
	return nil
}

func printTarget(res target.Result) error {
	now := ctx.Now()
	info := output.TargetInfo{
		Spec:       res.Spec,
		Source:     res.Source.String(),
		Key:        ctx.Config.StorageKey,
		Persistent: ctx.HasStore() && ctx.Config.PersistTarget,
		Until:      parser.FormatTimeUntil(res.Spec.Target, now),
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTarget(info)
	}
	ctx.CLIFormatter().PrintTarget(info)
	return nil
}
