// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError says what teactl was doing, on what, and what the user can do
	// about it.
	//
	//	return issue.Wrap(err, "run management command",
	//		issue.WithResource("python"),
	//		issue.WithSuggestions("Activate the project's virtual environment"))
	ActionableError struct {
		// Operation is a verb phrase such as "load configuration".
		Operation string
		// Resource names the file or program involved. Optional.
		Resource string
		// Suggestions are shown as bullets below the message. Optional.
		Suggestions []string
		// Cause is the underlying error. Optional.
		Cause error
	}

	// Option adds context to an ActionableError.
	Option func(*ActionableError)
)

// WithResource names the file or program the operation worked on.
func WithResource(resource string) Option {
	return func(e *ActionableError) { e.Resource = resource }
}

// WithSuggestions appends hints for the user.
func WithSuggestions(suggestions ...string) Option {
	return func(e *ActionableError) { e.Suggestions = append(e.Suggestions, suggestions...) }
}

// Wrap returns err annotated with operation and opts, or nil when err is nil.
func Wrap(err error, operation string, opts ...Option) error {
	if err == nil {
		return nil
	}
	return New(operation, err, opts...)
}

// New creates an ActionableError for operation. cause may be nil.
func New(operation string, cause error, opts ...Option) *ActionableError {
	e := &ActionableError{Operation: operation, Cause: cause}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Error returns "failed to <operation>[: <resource>][: <cause>]".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error { return e.Cause }

// HasSuggestions reports whether any suggestion is attached.
func (e *ActionableError) HasSuggestions() bool { return len(e.Suggestions) > 0 }

// Format renders the message with one bullet per suggestion. verbose appends the
// numbered chain of causes.
func (e *ActionableError) Format(verbose bool) string {
	lines := []string{e.Error()}

	if e.HasSuggestions() {
		lines = append(lines, "")
		for _, s := range e.Suggestions {
			lines = append(lines, "  • "+s)
		}
	}

	if verbose && e.Cause != nil {
		lines = append(lines, "", "Error chain:")
		n := 0
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			n++
			lines = append(lines, fmt.Sprintf("  %d. %s", n, err))
		}
	}
	return strings.Join(lines, "\n")
}
