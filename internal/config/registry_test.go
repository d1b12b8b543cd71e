// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/teactl/teactl/internal/apperr"
)

func TestRegistryActive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := NewStore("first", filepath.Join(dir, "a.ini"), ConsoleFields, nil)
	second := NewStore("second", filepath.Join(dir, "b.ini"), ConsoleFields, nil)

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		_, err := r.Active()
		if !errors.Is(err, apperr.ErrMissingConfiguration) {
			t.Errorf("Active() error = %v, want ErrMissingConfiguration", err)
		}
	})

	t.Run("single", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register(first)
		got, err := r.Active()
		if err != nil {
			t.Fatalf("Active() returned error: %v", err)
		}
		if got != first {
			t.Errorf("Active() = %p, want %p", got, first)
		}
		again, _ := r.Active()
		if again != got {
			t.Error("Active() should return the same instance on every call")
		}
	})

	t.Run("ambiguous", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register(second)
		r.Register(first)
		_, err := r.Active()

		var ace *apperr.AmbiguousConfigurationError
		if !errors.As(err, &ace) {
			t.Fatalf("Active() error = %v, want AmbiguousConfigurationError", err)
		}
		if len(ace.Names) != 2 || ace.Names[0] != "first" || ace.Names[1] != "second" {
			t.Errorf("Names = %v, want [first second]", ace.Names)
		}
	})

	t.Run("re-register replaces", func(t *testing.T) {
		t.Parallel()
		r := NewRegistry()
		r.Register(first)
		replacement := NewStore("first", filepath.Join(dir, "c.ini"), ConsoleFields, nil)
		r.Register(replacement)
		got, err := r.Active()
		if err != nil {
			t.Fatalf("Active() returned error: %v", err)
		}
		if got != replacement {
			t.Error("Active() should return the most recently registered store")
		}
	})
}
