// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/teactl/teactl/internal/apperr"
	"github.com/teactl/teactl/internal/issue"
	"github.com/teactl/teactl/internal/manage"

	"github.com/charmbracelet/fang"
)

// ServiceError carries the issue catalog entry shown below an error.
// Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
}

func newServiceError(err error, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a failure that is not a domain error to an issue catalog ID.
func classifyError(err error) issue.Id {
	switch {
	case errors.Is(err, ErrConfirmationRequired):
		return issue.ConfirmationRequiredId
	case errors.Is(err, os.ErrPermission):
		return issue.PermissionDeniedId
	case errors.Is(err, os.ErrNotExist):
		return issue.FileNotFoundId
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Operation == manage.OpRun && errors.Is(err, exec.ErrNotFound) {
		return issue.EntrypointNotFoundId
	}
	return issue.CommandFailedId
}

// formatErrorForDisplay uses the domain message or the actionable format when the
// error carries one. In verbose mode actionable errors include the full chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return apperr.MessageOf(err)
}

// renderIssue prints the catalog entry for id, if any.
func renderIssue(w io.Writer, id issue.Id) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render("dark")
	if err != nil {
		slog.Warn("failed to render issue catalog entry", "issueID", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}

// errorHandler returns the fang error handler. Silent exit errors print nothing;
// service errors print their message and catalog entry.
func (a *App) errorHandler() fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return
		}

		var svcErr *ServiceError
		if !errors.As(err, &svcErr) {
			fang.DefaultErrorHandler(w, styles, err)
			return
		}

		fmt.Fprintf(w, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(svcErr.Err, a.flags.verbose))
		if svcErr.IssueID != 0 {
			renderIssue(w, svcErr.IssueID)
		}
	}
}
