// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      New("load configuration", nil),
			expected: "failed to load configuration",
		},
		{
			name:     "operation with resource",
			err:      New("load configuration", nil, WithResource("./config.ini")),
			expected: "failed to load configuration: ./config.ini",
		},
		{
			name:     "operation with cause",
			err:      New("dump database", errors.New("pg_dump failed: 1")),
			expected: "failed to dump database: pg_dump failed: 1",
		},
		{
			name: "all fields",
			err: New("load configuration", errors.New("file not found"),
				WithResource("./config.ini"),
				WithSuggestions("ignored by Error")),
			expected: "failed to load configuration: ./config.ini: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	err := Wrap(os.ErrPermission, "write configuration",
		WithResource("/etc/teactl/config.ini"),
		WithSuggestions("Check the file permissions"),
		WithSuggestions("Use --config to pick another file"))
	if !errors.Is(err, os.ErrPermission) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("errors.As() failed for %T", err)
	}
	if ae.Resource != "/etc/teactl/config.ini" || len(ae.Suggestions) != 2 {
		t.Errorf("Wrap() = %+v", ae)
	}

	if err := Wrap(nil, "x", WithResource("y")); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestActionableError_Format(t *testing.T) {
	inner := errors.New("no such file")
	err := New("run management command", Wrap(inner, "look up executable"),
		WithResource("python"),
		WithSuggestions("Activate the virtual environment", "Check the manage option"))

	plain := err.Format(false)
	want := "failed to run management command: python: failed to look up executable: no such file\n\n" +
		"  • Activate the virtual environment\n" +
		"  • Check the manage option"
	if plain != want {
		t.Errorf("Format(false) =\n%s\nwant\n%s", plain, want)
	}

	verbose := err.Format(true)
	for _, want := range []string{"\n\nError chain:", "1. failed to look up executable: no such file", "2. no such file"} {
		if !strings.Contains(verbose, want) {
			t.Errorf("Format(true) missing %q:\n%s", want, verbose)
		}
	}
}

func TestActionableError_FormatWithoutSuggestions(t *testing.T) {
	err := New("dump database", nil)
	if got := err.Format(true); got != "failed to dump database" {
		t.Errorf("Format(true) = %q", got)
	}
	if err.HasSuggestions() {
		t.Error("HasSuggestions() = true without suggestions")
	}
}
