// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
	// SkipEnv disables TEACTL_* environment overrides.
	SkipEnv bool
}

// Provider builds the application configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Store, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider backed by the INI file.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load creates the application configuration, overlays the file and then the
// environment. When the file or an environment override is invalid, the store is
// returned alongside the error with every earlier value still in place.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Store, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	path := opts.ConfigFilePath
	if path == "" {
		var err error
		if path, err = DefaultConfigPath(opts.ConfigDirPath); err != nil {
			return nil, err
		}
	}

	store, err := NewApplication(path)
	if err != nil {
		return nil, err
	}

	if err := store.Load(); err != nil {
		return store, err
	}

	if !opts.SkipEnv {
		if err := ApplyEnv(store); err != nil {
			return store, err
		}
	}

	return store, nil
}
