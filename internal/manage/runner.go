// SPDX-License-Identifier: MPL-2.0

package manage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/teactl/teactl/internal/apperr"
	"github.com/teactl/teactl/internal/config"
	"github.com/teactl/teactl/internal/issue"

	"mvdan.cc/sh/v3/shell"
)

// OpRun is the operation named in errors about starting a management command.
const OpRun = "run management command"

const (
	// EnvSecretKey carries the project's secret key.
	EnvSecretKey = "DJANGO_SECRET_KEY"
	// EnvSettingsModule selects the project's settings module.
	EnvSettingsModule = "DJANGO_SETTINGS_MODULE"
	// EnvDatabaseHost is the database host.
	EnvDatabaseHost = "DATABASE_HOST"
	// EnvDatabasePort is the database port.
	EnvDatabasePort = "DATABASE_PORT"
	// EnvDatabaseUser is the database user.
	EnvDatabaseUser = "DATABASE_USER"
	// EnvDatabaseName is the database name.
	EnvDatabaseName = "DATABASE_NAME"
	// EnvDatabasePassword is the database password.
	EnvDatabasePassword = "DATABASE_PASSWORD"
)

// ErrEmptyEntrypoint is returned when the configured entrypoint has no words.
var ErrEmptyEntrypoint = errors.New("management entrypoint is empty")

type (
	// ExecCommandFunc creates the process for a management command.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// LookPathFunc resolves an executable name to a path.
	LookPathFunc func(file string) (string, error)

	// Option configures a Runner.
	Option func(*Runner)

	// Runner executes management commands with the active configuration.
	Runner struct {
		registry    *config.Registry
		execCommand ExecCommandFunc
		lookPath    LookPathFunc
		environ     func() []string
		stdin       io.Reader
		stdout      io.Writer
		stderr      io.Writer
	}

	// ExitError reports a management command that exited with a non-zero status.
	ExitError struct {
		Command string
		Code    int
	}
)

// WithExecCommand replaces process creation, for tests.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(r *Runner) { r.execCommand = fn }
}

// WithLookPath replaces executable resolution, for tests.
func WithLookPath(fn LookPathFunc) Option {
	return func(r *Runner) { r.lookPath = fn }
}

// WithEnviron replaces the base environment passed to commands.
func WithEnviron(fn func() []string) Option {
	return func(r *Runner) { r.environ = fn }
}

// WithStdio sets the streams connected to commands.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewRunner creates a Runner reading the active configuration from registry.
func NewRunner(registry *config.Registry, opts ...Option) *Runner {
	r := &Runner{
		registry:    registry,
		execCommand: exec.CommandContext,
		lookPath:    exec.LookPath,
		environ:     os.Environ,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("management command %q exited with status %d", e.Command, e.Code)
}

// Command returns the full command line for inv: the configured entrypoint followed
// by the invocation's arguments.
func (r *Runner) Command(inv *Invocation) ([]string, error) {
	cfg, err := r.registry.Active()
	if err != nil {
		return nil, err
	}
	return entrypoint(cfg, inv)
}

// Run executes inv and waits for it to finish. Standard streams are connected to
// the runner's streams.
func (r *Runner) Run(ctx context.Context, inv *Invocation) error {
	cfg, err := r.registry.Active()
	if err != nil {
		return err
	}

	argv, err := entrypoint(cfg, inv)
	if err != nil {
		return err
	}

	exe, err := r.lookPath(argv[0])
	if err != nil {
		return issue.Wrap(err, OpRun,
			issue.WithResource(argv[0]),
			issue.WithSuggestions(
				"Check the 'manage' option with 'teactl config list'",
				"Activate the project's virtual environment before running teactl",
			))
	}

	cmd := r.execCommand(ctx, exe, argv[1:]...)
	cmd.Env = append(r.environ(), Environment(cfg)...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	slog.Debug("running management command", "command", inv.Name(), "argv", argv)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: inv.Name(), Code: exitErr.ExitCode()}
		}
		return issue.Wrap(err, OpRun, issue.WithResource(inv.Name()))
	}
	return nil
}

// Environment returns the variables that pass cfg to management commands.
func Environment(cfg *config.Store) []string {
	env := []string{
		EnvSecretKey + "=" + cfg.String(config.FieldSecretKey),
		EnvDatabaseHost + "=" + cfg.String(config.FieldDBHost),
		EnvDatabasePort + "=" + strconv.Itoa(cfg.Int(config.FieldDBPort)),
		EnvDatabaseUser + "=" + cfg.String(config.FieldDBUser),
		EnvDatabaseName + "=" + cfg.String(config.FieldDBName),
		EnvDatabasePassword + "=" + cfg.String(config.FieldDBPassword),
	}
	if settings := cfg.String(config.FieldSettings); settings != "" {
		env = append(env, EnvSettingsModule+"="+settings)
	}
	return env
}

// entrypoint splits the configured entrypoint with shell quoting rules and appends
// the invocation's arguments.
func entrypoint(cfg *config.Store, inv *Invocation) ([]string, error) {
	manage := cfg.String(config.FieldManage)
	words, err := shell.Fields(manage, nil)
	if err == nil && len(words) == 0 {
		err = ErrEmptyEntrypoint
	}
	if err != nil {
		return nil, &apperr.InvalidConfigurationError{
			Key: config.FieldManage, Value: manage, HasValue: true, Err: err, Op: apperr.OpGet,
		}
	}
	return append(words, inv.Argv()...), nil
}
