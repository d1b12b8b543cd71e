// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/teactl/teactl/internal/manage"

	"github.com/spf13/cobra"
)

// newProjectCommand creates the `teactl project` command tree.
func newProjectCommand(app *App) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Project maintenance commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	projectCmd.AddCommand(
		newCollectStaticCommand(app),
		newCheckCommand(app),
		newStartAppCommand(app),
		newDiffSettingsCommand(app),
		newShellCommand(app),
	)
	return projectCmd
}

func newCollectStaticCommand(app *App) *cobra.Command {
	var opts manage.CollectStaticOptions
	cmd := &cobra.Command{
		Use:     "collectstatic",
		Short:   "Collect static files into the static root",
		Args:    cobra.NoArgs,
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runManage(cmd, func() *manage.Invocation { return manage.CollectStatic(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.BoolVar(&opts.NoInput, "no-input", false, "do not prompt for input")
	f.BoolVar(&opts.NoPostProcess, "no-post-process", false, "skip post-processing by the storage backend")
	f.StringArrayVarP(&opts.Ignore, "ignore", "i", nil, "ignore files matching this glob (repeatable)")
	f.BoolVarP(&opts.DryRun, "dry-run", "n", false, "do everything except modify the filesystem")
	f.BoolVarP(&opts.Clear, "clear", "c", false, "clear existing files first")
	f.BoolVarP(&opts.Link, "link", "l", false, "create symbolic links instead of copying")
	f.BoolVar(&opts.NoDefaultIgnore, "no-default-ignore", false, "do not ignore the default patterns")
	return cmd
}

func newCheckCommand(app *App) *cobra.Command {
	var opts manage.CheckOptions
	cmd := &cobra.Command{
		Use:     "check [APP_LABEL]",
		Short:   "Run the project's system checks",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.AppLabel = argAt(args, 0)
			return app.runManage(cmd, func() *manage.Invocation { return manage.Check(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.StringVarP(&opts.Tag, "tag", "t", "", "run only checks with this tag")
	f.BoolVar(&opts.ListTags, "list-tags", false, "list the available tags")
	f.BoolVar(&opts.Deploy, "deploy", false, "include deployment checks")
	f.StringVar(&opts.FailLevel, "fail-level", "", "message level that makes the command fail")
	f.StringVar(&opts.Database, "database", "", "database alias to check")
	return cmd
}

func newStartAppCommand(app *App) *cobra.Command {
	var opts manage.StartAppOptions
	cmd := &cobra.Command{
		Use:     "startapp NAME [DIRECTORY]",
		Short:   "Create the layout of a new application",
		Args:    cobra.RangeArgs(1, 2),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			opts.Directory = argAt(args, 1)
			return app.runManage(cmd, func() *manage.Invocation { return manage.StartApp(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.StringVar(&opts.Template, "template", "", "path or URL of the application template")
	f.StringArrayVarP(&opts.Extensions, "extension", "e", nil, "file extension to render (repeatable)")
	f.StringArrayVarP(&opts.Files, "name", "n", nil, "file name to render (repeatable)")
	return cmd
}

func newDiffSettingsCommand(app *App) *cobra.Command {
	var opts manage.DiffSettingsOptions
	cmd := &cobra.Command{
		Use:     "diffsettings",
		Short:   "Show differences from the default settings",
		Args:    cobra.NoArgs,
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runManage(cmd, func() *manage.Invocation { return manage.DiffSettings(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.BoolVar(&opts.All, "all", false, "show all settings")
	f.StringVar(&opts.Default, "default", "", "settings module to compare against")
	f.StringVar(&opts.Output, "output", "", "output style: hash or unified")
	return cmd
}

func newShellCommand(app *App) *cobra.Command {
	var opts manage.ShellOptions
	cmd := &cobra.Command{
		Use:     "shell",
		Short:   "Open an interpreter with the project loaded",
		Args:    cobra.NoArgs,
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runManage(cmd, func() *manage.Invocation { return manage.Shell(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.BoolVar(&opts.NoStartup, "no-startup", false, "skip the startup scripts")
	f.StringVarP(&opts.Interface, "interface", "i", "", "interpreter interface to use")
	f.StringVarP(&opts.Command, "command", "c", "", "run a command and exit")
	return cmd
}
