// SPDX-License-Identifier: MPL-2.0

// Package dispatch wraps command handlers with uniform result and error output.
//
// A wrapped handler either succeeds, in which case its result is rendered with the
// active configuration's output format (when a schema is attached) or handed back
// raw, or fails. Domain errors (apperr.Error) are printed as a highlighted line or
// as {"error": "..."} and reported through Outcome.Failed; every other error is
// returned unchanged for the caller to report.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/teactl/teactl/internal/apperr"
	"github.com/teactl/teactl/internal/config"
	"github.com/teactl/teactl/internal/present"
)

type (
	// Handler performs one command and returns its result.
	Handler func(ctx context.Context) (any, error)

	// Invocation runs a wrapped handler.
	Invocation func(ctx context.Context) (Outcome, error)

	// Outcome reports how a wrapped handler finished.
	Outcome struct {
		// Value is the raw result of a handler without a schema.
		Value any
		// Rendered is set when the result was already written.
		Rendered bool
		// Failed is set when a domain error was reported to the user.
		Failed bool
	}

	// Wrapper routes handler results to the presenter and domain errors to the
	// user. It reads the output format from the registry's active configuration.
	Wrapper struct {
		registry  *config.Registry
		presenter *present.Presenter
		stdout    io.Writer
		stderr    io.Writer
	}

	// errorPayload is the JSON shape of a reported domain error.
	errorPayload struct {
		Error string `json:"error"`
	}
)

// New creates a Wrapper.
func New(registry *config.Registry, presenter *present.Presenter, stdout, stderr io.Writer) *Wrapper {
	return &Wrapper{
		registry:  registry,
		presenter: presenter,
		stdout:    stdout,
		stderr:    stderr,
	}
}

// Wrap returns an Invocation running h. A nil schema returns successful results
// raw instead of rendering them.
func (w *Wrapper) Wrap(schema *present.Schema, h Handler) Invocation {
	return func(ctx context.Context) (Outcome, error) {
		result, err := h(ctx)
		if err != nil {
			return w.fail(err)
		}

		if schema == nil {
			return Outcome{Value: result}, nil
		}

		format, err := w.Format()
		if err != nil {
			return w.fail(err)
		}
		if err := w.presenter.Render(w.stdout, format, *schema, result); err != nil {
			return Outcome{}, fmt.Errorf("failed to render %s: %w", schema.Subject, err)
		}
		return Outcome{Rendered: true}, nil
	}
}

// Format returns the output format selected by the active configuration.
func (w *Wrapper) Format() (present.Format, error) {
	cfg, err := w.registry.Active()
	if err != nil {
		return "", err
	}
	format, err := present.ParseFormat(cfg.String(config.FieldFormat))
	if err != nil {
		return "", &apperr.InvalidConfigurationError{Key: config.FieldFormat, Err: err, Op: apperr.OpGet}
	}
	return format, nil
}

// fail reports a domain error to the user or returns any other error unchanged.
func (w *Wrapper) fail(err error) (Outcome, error) {
	var de apperr.Error
	if !errors.As(err, &de) {
		return Outcome{}, err
	}

	slog.Debug("command failed", "error", err)

	format, formatErr := w.Format()
	if formatErr != nil {
		format = present.FormatText
	}

	if format == present.FormatJSON {
		if renderErr := w.presenter.RenderJSON(w.stdout, errorPayload{Error: de.Message()}); renderErr != nil {
			return Outcome{}, renderErr
		}
	} else {
		fmt.Fprintln(w.stderr, present.ErrorStyle.Render(de.Message()))
	}
	return Outcome{Failed: true}, nil
}
