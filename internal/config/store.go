// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/teactl/teactl/internal/apperr"

	"gopkg.in/ini.v1"
)

type (
	// Store holds the current values of a set of declared fields and the path of the
	// INI file they persist to. A Store is not safe for concurrent use.
	//
	// values holds what readers see; persisted holds what Save writes. They differ
	// only for fields changed with SetOverride.
	Store struct {
		name        string
		path        string
		fields      Fields
		values      map[string]any
		persisted   map[string]any
		constraints *constraints
	}

	// Entry is one field rendered for display.
	Entry struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}
)

// iniOptions keeps values verbatim: secrets may contain '#' and ';'.
var iniOptions = ini.LoadOptions{
	IgnoreInlineComment: true,
}

// NewStore creates a store named name for fields, persisted at path. Fields start at
// the value in defaults or, when absent, at the zero value of their type.
func NewStore(name, path string, fields Fields, defaults map[string]any) *Store {
	s := &Store{
		name:        name,
		path:        path,
		fields:      fields,
		values:      make(map[string]any, len(fields)),
		persisted:   make(map[string]any, len(fields)),
		constraints: newConstraints(),
	}
	for _, f := range fields {
		v, ok := defaults[f.Name]
		if !ok {
			v = zeroValue(f.Type)
		}
		s.values[f.Name] = v
		s.persisted[f.Name] = v
	}
	return s
}

// Name returns the configuration name used for registration.
func (s *Store) Name() string { return s.name }

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Fields returns the declared fields.
func (s *Store) Fields() Fields { return s.fields }

// Get returns the current value of the named field.
func (s *Store) Get(name string) (any, error) {
	if _, ok := s.fields.Lookup(name); !ok {
		return nil, &apperr.UnknownFieldError{Field: name}
	}
	return s.values[name], nil
}

// String returns the named field as a string, or "" if it is not a string field.
func (s *Store) String(name string) string {
	v, _ := s.values[name].(string)
	return v
}

// Bool returns the named field as a boolean.
func (s *Store) Bool(name string) bool {
	v, _ := s.values[name].(bool)
	return v
}

// Int returns the named field as an integer.
func (s *Store) Int(name string) int {
	v, _ := s.values[name].(int)
	return v
}

// Float returns the named field as a float.
func (s *Store) Float(name string) float64 {
	v, _ := s.values[name].(float64)
	return v
}

// Set coerces raw to the named field's type, applies its decoder and constraint,
// and stores the result. The stored value is unchanged when any step fails.
func (s *Store) Set(name, raw string) error {
	v, err := s.parse(name, raw)
	if err != nil {
		return err
	}
	s.values[name] = v
	s.persisted[name] = v
	return nil
}

// SetOverride validates raw like Set but changes only the value readers see. Save
// keeps writing the value the field had before the override.
func (s *Store) SetOverride(name, raw string) error {
	v, err := s.parse(name, raw)
	if err != nil {
		return err
	}
	s.values[name] = v
	return nil
}

func (s *Store) parse(name, raw string) (any, error) {
	f, ok := s.fields.Lookup(name)
	if !ok {
		return nil, &apperr.UnknownFieldError{Field: name}
	}

	v, err := coerce(f.Type, raw)
	if err != nil {
		return nil, &apperr.InvalidValueError{Field: name, Value: raw, Err: err}
	}

	if f.Decode != nil {
		if v, err = f.Decode(v); err != nil {
			return nil, &apperr.InvalidValueError{Field: name, Value: raw, Err: err}
		}
	}

	if f.Constraint != "" {
		if err := s.constraints.check(f.Constraint, v); err != nil {
			return nil, &apperr.InvalidValueError{Field: name, Value: raw, Err: err}
		}
	}
	return v, nil
}

// Entries returns the fields and their values in declaration order.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.fields))
	for _, f := range s.fields {
		entries = append(entries, Entry{Key: f.Name, Value: s.values[f.Name]})
	}
	return entries
}

// Encoded returns every field's current value, overrides included, in its file
// encoding keyed by section and then option.
func (s *Store) Encoded() map[string]map[string]string {
	sections := make(map[string]map[string]string)
	for _, f := range s.fields {
		if sections[f.Section] == nil {
			sections[f.Section] = make(map[string]string)
		}
		sections[f.Section][f.Option] = encodeValue(f, s.values[f.Name])
	}
	return sections
}

// Load overlays values found in the backing file. A missing file leaves every field
// at its current value. Only fields whose section and option are both present are
// read; undeclared options are ignored.
func (s *Store) Load() error {
	if !fileExists(s.path) {
		slog.Debug("configuration file not found, using defaults", "path", s.path)
		return nil
	}

	file, err := ini.LoadSources(iniOptions, s.path)
	if err != nil {
		return &apperr.LoadError{Path: s.path, Err: err}
	}

	for _, f := range s.fields {
		section, err := file.GetSection(f.Section)
		if err != nil || !section.HasKey(f.Option) {
			continue
		}
		if err := s.Set(f.Name, section.Key(f.Option).String()); err != nil {
			return &apperr.LoadError{Path: s.path, Section: f.Section, Option: f.Option, Err: err}
		}
	}
	return nil
}

// Save writes every declared field to the backing file, creating the parent
// directory and missing sections. Overrides are not written. Sections and options in
// the existing file that are not declared are preserved. The file is written to a
// temporary sibling and then renamed over the original.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file := ini.Empty(iniOptions)
	if fileExists(s.path) {
		if err := file.Append(s.path); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, f := range s.fields {
		section, err := file.NewSection(f.Section)
		if err != nil {
			return fmt.Errorf("failed to create section %q: %w", f.Section, err)
		}
		section.Key(f.Option).SetValue(encodeValue(f, s.persisted[f.Name]))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := file.WriteTo(tmp); err != nil {
		_ = tmp.Close()        // Best-effort cleanup; the write error is returned
		_ = os.Remove(tmpPath) // Best-effort cleanup; the write error is returned
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup; the close error is returned
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup; the rename error is returned
		return fmt.Errorf("failed to replace config file: %w", err)
	}

	slog.Debug("configuration saved", "path", s.path)
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil && !info.IsDir()
}
