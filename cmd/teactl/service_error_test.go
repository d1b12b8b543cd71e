// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/teactl/teactl/internal/issue"
	"github.com/teactl/teactl/internal/manage"

	"github.com/charmbracelet/fang"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	missingEntrypoint := issue.Wrap(exec.ErrNotFound, manage.OpRun, issue.WithResource("python"))

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"confirmation", fmt.Errorf("load: %w", ErrConfirmationRequired), issue.ConfirmationRequiredId},
		{"permission", &fs.PathError{Op: "open", Path: "/x", Err: os.ErrPermission}, issue.PermissionDeniedId},
		{"not exist", &fs.PathError{Op: "stat", Path: "/x", Err: os.ErrNotExist}, issue.FileNotFoundId},
		{"entrypoint", missingEntrypoint, issue.EntrypointNotFoundId},
		{"other actionable", issue.Wrap(exec.ErrNotFound, "dump"), issue.CommandFailedId},
		{"other", errors.New("boom"), issue.CommandFailedId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewServiceErrorPanicsOnNil(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("newServiceError(nil) did not panic")
		}
	}()
	_ = newServiceError(nil, issue.CommandFailedId)
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	app := NewApp(Dependencies{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	handler := app.errorHandler()
	t.Run("silent exit", func(t *testing.T) {
		var buf bytes.Buffer
		handler(&buf, fang.Styles{}, &ExitError{Code: 3})
		if buf.Len() != 0 {
			t.Errorf("output = %q, want nothing", buf.String())
		}
	})

	t.Run("service error", func(t *testing.T) {
		var buf bytes.Buffer
		handler(&buf, fang.Styles{}, newServiceError(errors.New("disk on fire"), issue.CommandFailedId))
		out := buf.String()
		if !strings.Contains(out, "disk on fire") {
			t.Errorf("output missing message:\n%s", out)
		}
		if len(out) <= len("\nError: disk on fire\n") {
			t.Errorf("output missing catalog entry:\n%s", out)
		}
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("run: %w", &ExitError{Code: 2})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("errors.As() did not find the exit code in %v", err)
	}
	if exitErr.Error() != "exit status 2" {
		t.Errorf("Error() = %q", exitErr.Error())
	}
}
