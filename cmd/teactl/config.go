// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/teactl/teactl/internal/config"
	"github.com/teactl/teactl/internal/engine"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `teactl config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage teactl configuration",
		Long: `Manage teactl configuration.

Configuration is stored in an INI file:
  - Linux: $XDG_CONFIG_HOME/teactl/config.ini (~/.config/teactl/config.ini)
  - macOS: ~/Library/Application Support/teactl/config.ini
  - Windows: %APPDATA%\teactl\config.ini

Every option can be overridden with TEACTL_<SECTION>_<OPTION>, for example
TEACTL_DATABASE_HOST.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, &engine.EntrySchema, func(ctx context.Context) (any, error) {
				return app.Engine.List(ctx)
			})
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value and save it",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return config.ApplicationFields.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, &engine.EntrySchema, func(ctx context.Context) (any, error) {
				return app.Engine.Set(ctx, args[0], args[1])
			})
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, nil, func(context.Context) (any, error) {
				cfg, err := app.Registry.Active()
				if err != nil {
					return nil, err
				}
				_, err = fmt.Fprintln(app.stdout, cfg.Path())
				return nil, err
			})
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print the configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, nil, func(ctx context.Context) (any, error) {
				data, err := app.Engine.Export(ctx)
				if err != nil {
					return nil, err
				}
				_, err = app.stdout.Write(data)
				return nil, err
			})
		},
	})

	return cfgCmd
}
