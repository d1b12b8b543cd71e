// SPDX-License-Identifier: MPL-2.0

package manage

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

const (
	// MinVerbosity is the quietest management verbosity level.
	MinVerbosity = 0
	// MaxVerbosity is the most detailed management verbosity level.
	MaxVerbosity = 3
	// DefaultVerbosity is the verbosity used when none is requested.
	DefaultVerbosity = 1
)

// ErrInvalidVerbosity is returned when a verbosity level is out of range.
var ErrInvalidVerbosity = errors.New("invalid verbosity")

// Invocation is the argument list of one management command.
type Invocation struct {
	name string
	args []string
}

// New starts an invocation of the named management command. Output is always
// colourised by the entrypoint.
func New(name string, verbosity int) *Invocation {
	return &Invocation{
		name: name,
		args: []string{name, "--force-color", "--verbosity", strconv.Itoa(verbosity)},
	}
}

// ValidateVerbosity checks that v is a level accepted by the entrypoint.
func ValidateVerbosity(v int) error {
	if v < MinVerbosity || v > MaxVerbosity {
		return fmt.Errorf("%w: %d (expected %d to %d)", ErrInvalidVerbosity, v, MinVerbosity, MaxVerbosity)
	}
	return nil
}

// Name returns the management command name.
func (i *Invocation) Name() string { return i.name }

// Flag appends flag when cond is true.
func (i *Invocation) Flag(cond bool, flag string) *Invocation {
	if cond {
		i.args = append(i.args, flag)
	}
	return i
}

// Option appends flag followed by value, unless value is empty.
func (i *Invocation) Option(flag, value string) *Invocation {
	if value != "" {
		i.args = append(i.args, flag, value)
	}
	return i
}

// Repeat appends flag and value once for every value.
func (i *Invocation) Repeat(flag string, values []string) *Invocation {
	for _, v := range values {
		i.args = append(i.args, flag, v)
	}
	return i
}

// Args appends positional arguments, skipping empty ones.
func (i *Invocation) Args(args ...string) *Invocation {
	for _, a := range args {
		if a != "" {
			i.args = append(i.args, a)
		}
	}
	return i
}

// Argv returns a copy of the argument list.
func (i *Invocation) Argv() []string {
	return slices.Clone(i.args)
}
