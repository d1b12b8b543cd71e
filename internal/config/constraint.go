// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// constraints compiles and caches the CUE expressions declared on fields.
// A cue.Context is not safe for concurrent use; neither is Store.
type constraints struct {
	ctx      *cue.Context
	compiled map[string]cue.Value
}

func newConstraints() *constraints {
	return &constraints{
		ctx:      cuecontext.New(),
		compiled: make(map[string]cue.Value),
	}
}

// check reports whether v satisfies expr.
func (c *constraints) check(expr string, v any) error {
	schema, ok := c.compiled[expr]
	if !ok {
		schema = c.ctx.CompileString(expr)
		if err := schema.Err(); err != nil {
			return fmt.Errorf("invalid constraint %q: %w", expr, err)
		}
		c.compiled[expr] = schema
	}

	value := c.ctx.Encode(v)
	if err := value.Err(); err != nil {
		return fmt.Errorf("cannot check value against %s: %w", expr, err)
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("must satisfy %s", expr)
	}
	return nil
}
