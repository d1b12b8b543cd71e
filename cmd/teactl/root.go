// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/teactl/teactl/internal/dispatch"
	"github.com/teactl/teactl/internal/manage"
	"github.com/teactl/teactl/internal/present"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand creates the teactl command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "teactl",
		Short: "Configuration and management helper for web projects",
		Long: TitleStyle.Render("teactl") + SubtitleStyle.Render(" - Configuration and management helper for web projects") + `

teactl keeps project settings in an INI file, runs the project's management
commands with those settings in the environment, and dumps or restores the
PostgreSQL database.

` + SubtitleStyle.Render("Examples:") + `
  teactl config list                  Show the current configuration
  teactl config set db_host db.local  Change a value and save it
  teactl db migrate                   Apply migrations
  teactl --format json config list    Machine-readable output
  teactl db dump --tag nightly        Write a compressed dump`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			slog.SetDefault(app.Logger())
			return app.loadConfig(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/teactl/config.ini)")
	flags.StringVar(&app.flags.format, "format", "", "output format for this invocation: text or json")
	flags.BoolVar(&app.flags.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(
		newConfigCommand(app),
		newDBCommand(app),
		newServerCommand(app),
		newTestCommand(app),
		newAuthCommand(app),
		newProjectCommand(app),
	)
	return root
}

// Execute runs teactl with the process arguments and returns the exit code.
func Execute(ctx context.Context, app *App, args []string) int {
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.errorHandler()),
	)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Main is the process entry point.
func Main() int {
	return Execute(context.Background(), NewApp(Dependencies{}), os.Args[1:])
}

// run executes h through the dispatch wrapper. Reported domain errors become a
// silent exit status 1; a failed management command passes its status through;
// anything else is classified against the issue catalog.
func (a *App) run(cmd *cobra.Command, schema *present.Schema, h dispatch.Handler) error {
	outcome, err := a.Dispatch.Wrap(schema, h)(cmd.Context())
	if err != nil {
		var exitErr *manage.ExitError
		if errors.As(err, &exitErr) {
			slog.Debug("management command failed", "command", exitErr.Command, "code", exitErr.Code)
			return &ExitError{Code: exitErr.Code}
		}
		return newServiceError(err, classifyError(err))
	}
	if outcome.Failed {
		return &ExitError{Code: 1}
	}
	return nil
}

// runManage runs one management command built by build.
func (a *App) runManage(cmd *cobra.Command, build func() *manage.Invocation) error {
	return a.run(cmd, nil, func(ctx context.Context) (any, error) {
		return nil, a.Manage.Run(ctx, build())
	})
}

// addVerbosityFlag registers -v/--verbosity on cmd.
func addVerbosityFlag(cmd *cobra.Command, target *int) {
	cmd.Flags().IntVarP(target, "verbosity", "v", manage.DefaultVerbosity,
		"verbosity level; 0=minimal, 1=normal, 2=verbose, 3=very verbose")
}

// checkVerbosity validates the --verbosity flag before the command runs.
func checkVerbosity(v *int) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		return manage.ValidateVerbosity(*v)
	}
}
