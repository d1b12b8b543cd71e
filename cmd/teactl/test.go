// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"log/slog"
	"time"

	"github.com/teactl/teactl/internal/manage"
	"github.com/teactl/teactl/internal/timestamp"

	"github.com/spf13/cobra"
)

// newTestCommand creates the `teactl test` command tree.
func newTestCommand(app *App) *cobra.Command {
	testCmd := &cobra.Command{
		Use:   "test",
		Short: "Test suite commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	testCmd.AddCommand(newTestRunCommand(app), newTestServerCommand(app))
	return testCmd
}

func newTestRunCommand(app *App) *cobra.Command {
	var opts manage.TestOptions
	cmd := &cobra.Command{
		Use:     "run [TEST_LABEL]",
		Short:   "Run the project's tests",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.TestLabel = argAt(args, 0)
			start := time.Now()
			err := app.runManage(cmd, func() *manage.Invocation { return manage.Test(opts) })
			slog.Debug("test run finished", "elapsed", timestamp.HumanizeDuration(time.Since(start)))
			return err
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.BoolVar(&opts.NoInput, "no-input", false, "do not prompt for input")
	f.BoolVar(&opts.FailFast, "failfast", false, "stop on the first failure")
	f.StringVar(&opts.TestRunner, "testrunner", "", "test runner class to use")
	f.StringVarP(&opts.TopLevelDirectory, "top-level-directory", "t", "", "top level of the project for discovery")
	f.StringVarP(&opts.Pattern, "pattern", "p", "", "test file pattern")
	f.BoolVar(&opts.KeepDB, "keepdb", false, "keep the test database between runs")
	f.BoolVarP(&opts.Reverse, "reverse", "r", false, "run tests in reverse order")
	f.BoolVar(&opts.DebugMode, "debug-mode", false, "set DEBUG to true during the run")
	f.BoolVarP(&opts.DebugSQL, "debug-sql", "d", false, "print the SQL of failing tests")
	f.IntVar(&opts.Parallel, "parallel", 0, "number of parallel test processes")
	f.StringVar(&opts.Tag, "tag", "", "run only tests with this tag")
	f.StringArrayVar(&opts.ExcludeTags, "exclude-tag", nil, "skip tests with this tag (repeatable)")
	f.BoolVar(&opts.PDB, "pdb", false, "open a debugger on errors and failures")
	f.BoolVarP(&opts.Buffer, "buffer", "b", false, "discard output of passing tests")
	f.StringArrayVarP(&opts.NamePatterns, "name-pattern", "k", nil, "run tests matching this pattern (repeatable)")
	return cmd
}

func newTestServerCommand(app *App) *cobra.Command {
	var opts manage.TestServerOptions
	cmd := &cobra.Command{
		Use:     "server FIXTURE",
		Short:   "Start a development server with data from a fixture",
		Args:    cobra.ExactArgs(1),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Fixture = args[0]
			return app.runManage(cmd, func() *manage.Invocation { return manage.TestServer(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.BoolVar(&opts.NoInput, "no-input", false, "do not prompt for input")
	f.StringVar(&opts.AddrPort, "addrport", "", "port number or ipaddr:port to listen on")
	f.BoolVarP(&opts.IPv6, "ipv6", "6", false, "use an IPv6 address")
	return cmd
}
