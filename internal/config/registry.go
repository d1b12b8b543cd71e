// SPDX-License-Identifier: MPL-2.0

package config

import (
	"sort"

	"github.com/teactl/teactl/internal/apperr"
)

// Registry tracks the configurations defined in the process. Exactly one must be
// registered for Active to succeed.
type Registry struct {
	stores map[string]*Store
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{stores: make(map[string]*Store)}
}

// Register records s under its name, replacing any store registered under the same
// name.
func (r *Registry) Register(s *Store) {
	r.stores[s.Name()] = s
}

// Len returns the number of registered configurations.
func (r *Registry) Len() int { return len(r.stores) }

// Active returns the single registered configuration. It fails with
// apperr.ErrMissingConfiguration when none is registered and with an
// *apperr.AmbiguousConfigurationError when several are.
func (r *Registry) Active() (*Store, error) {
	switch len(r.stores) {
	case 0:
		return nil, apperr.ErrMissingConfiguration
	case 1:
		for _, s := range r.stores {
			return s, nil
		}
	}

	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return nil, &apperr.AmbiguousConfigurationError{Names: names}
}
