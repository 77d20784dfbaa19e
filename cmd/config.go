// This software is a derivative work based on Zeit (https://github.com/mrusme/zeit)
// Original work copyright (c) マリウス (mrusme)
// Modifications copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.

package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/countdown/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration after defaults, the config file, COUNTDOWN_*
environment variables and flags have been applied.

The output is valid YAML and can be saved as the config file.

Examples:
  countdown config
  countdown config --days 30 --live > ~/.config/countdown/config.yaml
  countdown config path`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := ctx.Config.File
		if path == "" {
			path = config.DefaultPath()
		}
		ctx.Formatter.Println(path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := ctx.Config.ToYAML()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		var view map[string]interface{}
		if err := yaml.Unmarshal(data, &view); err != nil {
			return err
		}
		return ctx.Formatter.JSON(view)
	}

	if ctx.IsCLI() {
		if ctx.Config.File != "" {
			ctx.CLIFormatter().Muted("# " + ctx.Config.File)
		} else {
			ctx.CLIFormatter().Muted("# defaults (no config file at " + config.DefaultPath() + ")")
		}
	}
	ctx.Formatter.Print(string(data))
	return nil
}
