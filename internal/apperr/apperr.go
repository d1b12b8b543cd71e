// SPDX-License-Identifier: MPL-2.0

package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingConfiguration is returned when no configuration has been registered.
var ErrMissingConfiguration = &MissingConfigurationError{}

type (
	// Error is implemented by every domain error. Message returns the text shown
	// to the user, without type names or stack details.
	Error interface {
		error
		Message() string
	}

	// UnknownFieldError is returned when a configuration field is not declared.
	UnknownFieldError struct {
		Field string
	}

	// InvalidValueError is returned when a raw string cannot be coerced or decoded
	// into a field's declared type.
	InvalidValueError struct {
		Field string
		Value string
		Err   error
	}

	// LoadError wraps a failure encountered while loading the configuration file.
	// Section and Option are empty when the file itself could not be parsed.
	LoadError struct {
		Path    string
		Section string
		Option  string
		Err     error
	}

	// MissingConfigurationError is returned when no configuration is registered.
	MissingConfigurationError struct{}

	// AmbiguousConfigurationError is returned when more than one configuration is
	// registered and none can be chosen as the active one.
	AmbiguousConfigurationError struct {
		Names []string
	}
)

// Message returns the user-facing message.
func (e *UnknownFieldError) Message() string {
	return fmt.Sprintf("Unknown configuration field '%s'.", e.Field)
}

func (e *UnknownFieldError) Error() string { return e.Message() }

// Message returns the user-facing message.
func (e *InvalidValueError) Message() string {
	msg := fmt.Sprintf("Invalid value '%s' for field '%s'.", e.Value, e.Field)
	if e.Err != nil {
		msg += " " + e.Err.Error()
	}
	return msg
}

func (e *InvalidValueError) Error() string { return e.Message() }

// Unwrap returns the coercion or decode failure.
func (e *InvalidValueError) Unwrap() error { return e.Err }

// Message returns the user-facing message.
func (e *LoadError) Message() string {
	var sb strings.Builder
	sb.WriteString("Failed to load configuration")
	if e.Path != "" {
		fmt.Fprintf(&sb, " from '%s'", e.Path)
	}
	if e.Section != "" || e.Option != "" {
		fmt.Fprintf(&sb, " [%s] %s", e.Section, e.Option)
	}
	sb.WriteString(".")
	if e.Err != nil {
		var de Error
		if errors.As(e.Err, &de) {
			sb.WriteString(" " + de.Message())
		} else {
			sb.WriteString(" " + e.Err.Error())
		}
	}
	return sb.String()
}

func (e *LoadError) Error() string { return e.Message() }

// Unwrap returns the underlying failure.
func (e *LoadError) Unwrap() error { return e.Err }

// Message returns the user-facing message.
func (e *MissingConfigurationError) Message() string {
	return "No configuration is registered."
}

func (e *MissingConfigurationError) Error() string { return e.Message() }

// Message returns the user-facing message.
func (e *AmbiguousConfigurationError) Message() string {
	return fmt.Sprintf("Multiple configurations are registered: %s.", strings.Join(e.Names, ", "))
}

func (e *AmbiguousConfigurationError) Error() string { return e.Message() }

// Is reports whether target is any AmbiguousConfigurationError.
func (e *AmbiguousConfigurationError) Is(target error) bool {
	_, ok := target.(*AmbiguousConfigurationError)
	return ok
}

// IsDomain reports whether err (or anything it wraps) is a domain error.
func IsDomain(err error) bool {
	var de Error
	return errors.As(err, &de)
}

// MessageOf returns the user-facing message of the first domain error in err's
// chain, or err.Error() when there is none.
func MessageOf(err error) string {
	var de Error
	if errors.As(err, &de) {
		return de.Message()
	}
	return err.Error()
}
