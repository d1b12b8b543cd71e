// SPDX-License-Identifier: MPL-2.0

package postgres

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/teactl/teactl/internal/apperr"
)

type (
	// Result is the outcome of a finished process.
	Result struct {
		ExitCode int
		Stdout   string
		Stderr   string
	}

	// Executor runs an external tool and captures its output. A non-zero exit is
	// reported through Result, not as an error.
	Executor interface {
		Execute(ctx context.Context, name string, args, env []string) (Result, error)
	}

	// ExecCommandFunc creates the process for a tool.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// ProcessExecutor runs tools as local processes.
	ProcessExecutor struct {
		execCommand ExecCommandFunc
		lookPath    func(file string) (string, error)
	}
)

// NewProcessExecutor creates a ProcessExecutor.
func NewProcessExecutor() *ProcessExecutor {
	return &ProcessExecutor{
		execCommand: exec.CommandContext,
		lookPath:    exec.LookPath,
	}
}

// Execute resolves name on PATH and runs it with env added to the current
// environment.
func (e *ProcessExecutor) Execute(ctx context.Context, name string, args, env []string) (Result, error) {
	exe, err := e.lookPath(name)
	if err != nil {
		return Result{}, &apperr.DatabaseError{Msg: "`" + name + "` command is not found.", Err: err}
	}

	var stdout, stderr bytes.Buffer
	cmd := e.execCommand(ctx, exe, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}
