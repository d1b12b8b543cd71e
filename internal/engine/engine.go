// SPDX-License-Identifier: MPL-2.0

// Package engine implements the configuration commands on top of the active
// configuration store.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/teactl/teactl/internal/apperr"
	"github.com/teactl/teactl/internal/config"
	"github.com/teactl/teactl/internal/present"

	"github.com/pelletier/go-toml/v2"
)

// EntrySchema describes how configuration entries are shown in a table.
var EntrySchema = present.Schema{
	Subject: "ConfigEntry",
	Columns: []present.Column{
		{Title: "Key", Value: present.Accessor(func(e config.Entry) any { return e.Key })},
		{Title: "Value", Value: present.Accessor(func(e config.Entry) any { return e.Value })},
	},
}

// Engine lists, changes and exports the active configuration.
type Engine struct {
	registry *config.Registry
}

// New creates an Engine reading the active configuration from registry.
func New(registry *config.Registry) *Engine {
	return &Engine{registry: registry}
}

// List returns the active configuration's entries in declaration order.
func (e *Engine) List(ctx context.Context) ([]config.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store, err := e.registry.Active()
	if err != nil {
		return nil, &apperr.InvalidConfigurationError{Err: err, Op: apperr.OpGet}
	}
	return store.Entries(), nil
}

// Set assigns value to key, persists the configuration and returns the refreshed
// entries.
func (e *Engine) Set(ctx context.Context, key, value string) ([]config.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store, err := e.registry.Active()
	if err != nil {
		return nil, apperr.NewSetError(key, value, err)
	}
	if err := store.Set(key, value); err != nil {
		return nil, apperr.NewSetError(key, value, err)
	}
	if err := store.Save(); err != nil {
		return nil, apperr.NewSetError(key, value, err)
	}

	slog.Debug("configuration updated", "key", key, "path", store.Path())
	return store.Entries(), nil
}

// Export renders the active configuration as TOML, one table per INI section,
// with values in their file encoding. Environment overrides are included.
func (e *Engine) Export(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store, err := e.registry.Active()
	if err != nil {
		return nil, &apperr.InvalidConfigurationError{Err: err, Op: apperr.OpGet}
	}

	data, err := toml.Marshal(store.Encoded())
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return data, nil
}
