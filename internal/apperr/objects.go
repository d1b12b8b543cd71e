// SPDX-License-Identifier: MPL-2.0

package apperr

import (
	"fmt"
	"strings"
)

type (
	// QueryParam is one lookup criterion used to describe a persistence query.
	QueryParam struct {
		Key   string
		Value any
	}

	// Query is an ordered set of lookup criteria.
	Query []QueryParam

	// ObjectNotFoundError is returned when a lookup matches nothing.
	ObjectNotFoundError struct {
		Model string
		Query Query
	}

	// ObjectAlreadyExistsError is returned when a create would duplicate an object.
	ObjectAlreadyExistsError struct {
		Model string
		Query Query
	}

	// MultipleObjectsFoundError is returned when a lookup that expects a single
	// object matches several.
	MultipleObjectsFoundError struct {
		Model string
		Query Query
	}

	// DatabaseError is a generic persistence failure with a ready message.
	DatabaseError struct {
		Msg string
		Err error
	}
)

// String renders the query as "(k=v, ...)", or "" when empty.
func (q Query) String() string {
	if len(q) == 0 {
		return ""
	}
	parts := make([]string, 0, len(q))
	for _, p := range q {
		parts = append(parts, fmt.Sprintf("%s=%v", p.Key, p.Value))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Message returns the user-facing message.
func (e *ObjectNotFoundError) Message() string {
	return e.Model + e.Query.String() + " not found."
}

func (e *ObjectNotFoundError) Error() string { return e.Message() }

// Message returns the user-facing message.
func (e *ObjectAlreadyExistsError) Message() string {
	return e.Model + e.Query.String() + " already exists."
}

func (e *ObjectAlreadyExistsError) Error() string { return e.Message() }

// Message returns the user-facing message.
func (e *MultipleObjectsFoundError) Message() string {
	return e.Model + e.Query.String() + " multiple objects found."
}

func (e *MultipleObjectsFoundError) Error() string { return e.Message() }

// NewDatabaseError creates a DatabaseError with the given message.
func NewDatabaseError(format string, args ...any) *DatabaseError {
	return &DatabaseError{Msg: fmt.Sprintf(format, args...)}
}

// Message returns the user-facing message.
func (e *DatabaseError) Message() string { return e.Msg }

func (e *DatabaseError) Error() string { return e.Msg }

// Unwrap returns the underlying cause, if any.
func (e *DatabaseError) Unwrap() error { return e.Err }
