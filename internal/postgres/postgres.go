// SPDX-License-Identifier: MPL-2.0

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/teactl/teactl/internal/apperr"
	"github.com/teactl/teactl/internal/config"
)

const (
	// BackupExt is the extension of an uncompressed dump.
	BackupExt = ".backup"
	// GzipExt is the extension added by gzip.
	GzipExt = ".gz"

	// maintenanceDB is the database psql connects to when recreating the target.
	maintenanceDB = "postgres"

	stampLayout = "20060102150405"
)

type (
	// Options are the connection parameters of the target database.
	Options struct {
		Host     string
		Port     int
		User     string
		Database string
		Password string
		// Timeout bounds each tool invocation. Zero disables it.
		Timeout time.Duration
	}

	// Clock provides the current time for dump file names.
	Clock interface {
		Now() time.Time
	}

	// ClientOption configures a Client.
	ClientOption func(*Client)

	// Client runs the PostgreSQL client tools against one database.
	Client struct {
		opts     Options
		executor Executor
		clock    Clock
		hostname func() (string, error)
	}

	// CommandError reports a tool that exited with a non-zero status.
	CommandError struct {
		apperr.DatabaseError
		Command  string
		ExitCode int
		Stdout   string
		Stderr   string
	}

	realClock struct{}
)

func (realClock) Now() time.Time { return time.Now() }

// WithExecutor replaces the process executor.
func WithExecutor(e Executor) ClientOption {
	return func(c *Client) { c.executor = e }
}

// WithClock replaces the clock used for dump file names.
func WithClock(clock Clock) ClientOption {
	return func(c *Client) { c.clock = clock }
}

// WithHostname replaces the host name lookup used for dump file names.
func WithHostname(fn func() (string, error)) ClientOption {
	return func(c *Client) { c.hostname = fn }
}

// OptionsFromConfig reads connection parameters from cfg.
func OptionsFromConfig(cfg *config.Store) Options {
	return Options{
		Host:     cfg.String(config.FieldDBHost),
		Port:     cfg.Int(config.FieldDBPort),
		User:     cfg.String(config.FieldDBUser),
		Database: cfg.String(config.FieldDBName),
		Password: cfg.String(config.FieldDBPassword),
		Timeout:  time.Duration(cfg.Float(config.FieldDBTimeout) * float64(time.Second)),
	}
}

// New creates a Client for the database described by opts.
func New(opts Options, options ...ClientOption) *Client {
	c := &Client{
		opts:     opts,
		executor: NewProcessExecutor(),
		clock:    realClock{},
		hostname: os.Hostname,
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// NewCommandError builds the error for a tool that exited with code.
func NewCommandError(command string, code int, stdout, stderr string) *CommandError {
	msg := fmt.Sprintf("%s failed: %d", command, code)
	if stdout != "" {
		msg += "\n\nStdout\n------\n" + stdout
	}
	if stderr != "" {
		msg += "\n\nStderr\n------\n" + stderr
	}
	return &CommandError{
		DatabaseError: apperr.DatabaseError{Msg: msg},
		Command:       command,
		ExitCode:      code,
		Stdout:        stdout,
		Stderr:        stderr,
	}
}

// Run executes a tool with PGPASSWORD set and fails on a non-zero exit.
func (c *Client) Run(ctx context.Context, command string, args ...string) error {
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	slog.Debug("running database tool", "command", command, "args", args)

	result, err := c.executor.Execute(ctx, command, args, []string{"PGPASSWORD=" + c.opts.Password})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &apperr.DatabaseError{
				Msg: fmt.Sprintf("`%s` timed out after %s.", command, c.opts.Timeout),
				Err: err,
			}
		}
		return err
	}
	if result.ExitCode != 0 {
		line := strings.Join(append([]string{command}, args...), " ")
		return NewCommandError(line, result.ExitCode, result.Stdout, result.Stderr)
	}
	return nil
}

// Gzip compresses file in place, producing file.gz.
func (c *Client) Gzip(ctx context.Context, file string) error {
	return c.Run(ctx, "gzip", file)
}

// Gunzip decompresses file.gz in place.
func (c *Client) Gunzip(ctx context.Context, file string) error {
	return c.Run(ctx, "gunzip", file)
}

// PgDump writes the database to file.
func (c *Client) PgDump(ctx context.Context, file string) error {
	return c.Run(ctx, "pg_dump", c.connArgs(c.opts.Database, "-f", file)...)
}

// Psql runs one SQL command against database.
func (c *Client) Psql(ctx context.Context, database, command string) error {
	return c.Run(ctx, "psql", c.connArgs(database, "-c", command)...)
}

// PsqlFile runs the SQL in file against database.
func (c *Client) PsqlFile(ctx context.Context, database, file string) error {
	return c.Run(ctx, "psql", c.connArgs(database, "-f", file)...)
}

// DeleteAndCreate drops the database, creates it empty and grants the configured
// user every privilege on it.
func (c *Client) DeleteAndCreate(ctx context.Context) error {
	db, user := quoteIdent(c.opts.Database), quoteIdent(c.opts.User)
	for _, stmt := range []string{
		"DROP DATABASE IF EXISTS " + db,
		"CREATE DATABASE " + db,
		"GRANT ALL PRIVILEGES ON DATABASE " + db + " TO " + user,
	} {
		if err := c.Psql(ctx, maintenanceDB, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DumpFileName returns the name of a dump taken at t:
// <database>-<hostname>-<YYYYMMDDHHMMSS>[-tag].backup.
func DumpFileName(database, hostname string, t time.Time, tag string) string {
	name := database + "-" + hostname + "-" + t.Format(stampLayout)
	if tag != "" {
		name += "-" + tag
	}
	return name + BackupExt
}

// Dump writes a compressed dump into outDir and returns its path. With
// deleteExisting, a previous dump with the same name is removed first.
func (c *Client) Dump(ctx context.Context, outDir, tag string, deleteExisting bool) (string, error) {
	hostname, err := c.hostname()
	if err != nil {
		return "", fmt.Errorf("failed to get hostname: %w", err)
	}

	file := filepath.Join(outDir, DumpFileName(c.opts.Database, hostname, c.clock.Now(), tag))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if deleteExisting {
		for _, p := range []string{file, file + GzipExt} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to delete existing dump: %w", err)
			}
		}
	}

	if err := c.PgDump(ctx, file); err != nil {
		return "", err
	}
	if err := c.Gzip(ctx, file); err != nil {
		return "", err
	}

	slog.Debug("database dumped", "file", file+GzipExt)
	return file + GzipExt, nil
}

// Load replaces the database with the contents of file, decompressing it first
// when it ends in .gz.
func (c *Client) Load(ctx context.Context, file string) error {
	if strings.HasSuffix(file, GzipExt) {
		if err := c.Gunzip(ctx, file); err != nil {
			return err
		}
		file = strings.TrimSuffix(file, GzipExt)
	}

	if err := c.DeleteAndCreate(ctx); err != nil {
		return err
	}
	if err := c.PsqlFile(ctx, c.opts.Database, file); err != nil {
		return err
	}

	slog.Debug("database loaded", "file", file)
	return nil
}

func (c *Client) connArgs(database string, extra ...string) []string {
	args := []string{
		"-h", c.opts.Host,
		"-p", strconv.Itoa(c.opts.Port),
		"-U", c.opts.User,
		"-d", database,
	}
	return append(args, extra...)
}

// quoteIdent quotes a SQL identifier.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
