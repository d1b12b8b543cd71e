// SPDX-License-Identifier: MPL-2.0

package apperr

import "fmt"

const (
	// OpGet marks a failure while reading a configuration value.
	OpGet Operation = "getting"
	// OpSet marks a failure while assigning a configuration value.
	OpSet Operation = "setting"
	// OpLoad marks a failure while reading the configuration file.
	OpLoad Operation = "loading"
	// OpSave marks a failure while writing the configuration file.
	OpSave Operation = "saving"
)

type (
	// Operation names the configuration operation that failed.
	Operation string

	// InvalidConfigurationError reports a failed configuration operation on an
	// optional key/value pair. When Msg is set it is used verbatim.
	InvalidConfigurationError struct {
		Msg   string
		Key   string
		Value string
		// HasValue distinguishes an empty value from an absent one.
		HasValue bool
		Err      error
		Op       Operation
	}
)

// NewSetError builds the error reported when setting key to value fails.
func NewSetError(key, value string, err error) *InvalidConfigurationError {
	return &InvalidConfigurationError{Key: key, Value: value, HasValue: true, Err: err, Op: OpSet}
}

// Message returns the user-facing message.
func (e *InvalidConfigurationError) Message() string {
	if e.Msg != "" {
		return e.Msg
	}

	op := e.Op
	if op == "" {
		op = OpGet
	}

	cause := ""
	if e.Err != nil {
		cause = " Error: " + MessageOf(e.Err)
	}

	switch {
	case e.Key == "" && !e.HasValue:
		return fmt.Sprintf("Configuration %s error.%s", op, cause)
	case e.Key == "":
		return fmt.Sprintf("Invalid %s value '%s'.%s", op, e.Value, cause)
	case !e.HasValue:
		return fmt.Sprintf("Error %s key='%s'.%s", op, e.Key, cause)
	default:
		return fmt.Sprintf("Error %s key='%s' value='%s'.%s", op, e.Key, e.Value, cause)
	}
}

func (e *InvalidConfigurationError) Error() string { return e.Message() }

// Unwrap returns the underlying cause.
func (e *InvalidConfigurationError) Unwrap() error { return e.Err }
