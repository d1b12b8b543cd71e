// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/teactl/teactl/internal/config"
	"github.com/teactl/teactl/internal/dispatch"
	"github.com/teactl/teactl/internal/engine"
	"github.com/teactl/teactl/internal/issue"
	"github.com/teactl/teactl/internal/manage"
	"github.com/teactl/teactl/internal/postgres"
	"github.com/teactl/teactl/internal/present"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

type (
	// App wires CLI services and shared dependencies. Every command handler receives
	// the App and reaches configuration, rendering and subprocesses through it.
	App struct {
		Registry  *config.Registry
		Config    config.Provider
		Presenter *present.Presenter
		Dispatch  *dispatch.Wrapper
		Engine    *engine.Engine
		Manage    *manage.Runner
		Database  DatabaseFactory
		Confirm   ConfirmFunc

		logger *log.Logger
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		flags  rootFlags
	}

	// Dependencies are the injection points for building an App. Nil fields get
	// production defaults.
	Dependencies struct {
		Config        config.Provider
		Database      DatabaseFactory
		Confirm       ConfirmFunc
		ManageOptions []manage.Option
		Stdin         io.Reader
		Stdout        io.Writer
		Stderr        io.Writer
	}

	// DatabaseFactory creates the client used by the dump and load commands.
	DatabaseFactory func(opts postgres.Options) *postgres.Client

	// ConfirmFunc asks the user a yes/no question.
	ConfirmFunc func(title, description string) (bool, error)

	// rootFlags holds the persistent flags of the root command.
	rootFlags struct {
		configPath string
		format     string
		verbose    bool
	}
)

// ErrConfirmationRequired is returned when a destructive command needs a
// confirmation that cannot be asked for.
var ErrConfirmationRequired = errors.New("confirmation required")

// NewApp builds an App from deps.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Database == nil {
		deps.Database = func(opts postgres.Options) *postgres.Client { return postgres.New(opts) }
	}
	if deps.Confirm == nil {
		deps.Confirm = terminalConfirm(deps.Stdin)
	}

	registry := config.NewRegistry()
	presenter := present.New(isTerminal(deps.Stdout))

	manageOpts := append([]manage.Option{
		manage.WithStdio(deps.Stdin, deps.Stdout, deps.Stderr),
	}, deps.ManageOptions...)

	return &App{
		Registry:  registry,
		Config:    deps.Config,
		Presenter: presenter,
		Dispatch:  dispatch.New(registry, presenter, deps.Stdout, deps.Stderr),
		Engine:    engine.New(registry),
		Manage:    manage.NewRunner(registry, manageOpts...),
		Database:  deps.Database,
		Confirm:   deps.Confirm,
		logger: log.NewWithOptions(deps.Stderr, log.Options{
			Prefix: config.AppName,
			Level:  log.InfoLevel,
		}),
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// Logger returns the App's logger.
func (a *App) Logger() *slog.Logger {
	return slog.New(a.logger)
}

// loadConfig loads the configuration, applies the persistent flags and registers
// the result as the active configuration. A broken file or environment override
// is reported as a warning and the remaining values stay in effect.
func (a *App) loadConfig(ctx context.Context) error {
	a.setVerbose(a.flags.verbose)

	store, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		if store == nil {
			return newServiceError(issue.Wrap(err, "locate configuration"), issue.ConfigDirUnavailableId)
		}
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		if a.flags.verbose {
			renderIssue(a.stderr, issue.ConfigLoadFailedId)
		}
	}

	if a.flags.format != "" {
		if err := store.SetOverride(config.FieldFormat, a.flags.format); err != nil {
			return err
		}
	}
	if store.Bool(config.FieldVerbose) {
		a.setVerbose(true)
	}

	a.Registry.Register(store)
	slog.Debug("configuration loaded", "path", store.Path())
	return nil
}

// setVerbose switches debug logging on or off.
func (a *App) setVerbose(verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	a.logger.SetLevel(level)
}

// database returns a client for the active configuration's database.
func (a *App) database() (*postgres.Client, error) {
	cfg, err := a.Registry.Active()
	if err != nil {
		return nil, err
	}
	return a.Database(postgres.OptionsFromConfig(cfg)), nil
}

// terminalConfirm asks with a huh confirmation prompt when stdin is a terminal.
func terminalConfirm(stdin io.Reader) ConfirmFunc {
	return func(title, description string) (bool, error) {
		if !isTerminal(stdin) {
			return false, ErrConfirmationRequired
		}

		var confirmed bool
		err := huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed).
			Run()
		if err != nil {
			return false, err
		}
		return confirmed, nil
	}
}

// isTerminal reports whether v is a file connected to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
