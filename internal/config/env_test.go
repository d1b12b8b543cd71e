// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teactl/teactl/internal/apperr"
)

func TestEnvVar(t *testing.T) {
	t.Parallel()

	f, _ := ApplicationFields.Lookup(FieldDBHost)
	if got := EnvVar(f); got != "TEACTL_DATABASE_HOST" {
		t.Errorf("EnvVar() = %q, want TEACTL_DATABASE_HOST", got)
	}
}

// Not parallel: mutates the process environment.
func TestApplyEnv(t *testing.T) {
	t.Setenv("TEACTL_DATABASE_HOST", "db.internal")
	t.Setenv("TEACTL_DATABASE_PORT", "6000")
	t.Setenv("TEACTL_CONSOLE_VERBOSE", "on")

	cfg, err := NewApplication(filepath.Join(t.TempDir(), "config.ini"))
	if err != nil {
		t.Fatalf("NewApplication() returned error: %v", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv() returned error: %v", err)
	}

	if got := cfg.String(FieldDBHost); got != "db.internal" {
		t.Errorf("db_host = %q, want db.internal", got)
	}
	if got := cfg.Int(FieldDBPort); got != 6000 {
		t.Errorf("db_port = %d, want 6000", got)
	}
	if !cfg.Bool(FieldVerbose) {
		t.Error("verbose should be enabled from the environment")
	}
	if got := cfg.String(FieldDBUser); got != "postgres" {
		t.Errorf("db_user = %q, want the default postgres", got)
	}
}

// Not parallel: mutates the process environment.
func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("TEACTL_DATABASE_PORT", "not-a-port")

	cfg, _ := NewApplication(filepath.Join(t.TempDir(), "config.ini"))
	err := ApplyEnv(cfg)

	var ive *apperr.InvalidValueError
	if !errors.As(err, &ive) {
		t.Fatalf("ApplyEnv() error = %v, want InvalidValueError", err)
	}
	if got := cfg.Int(FieldDBPort); got != 5432 {
		t.Errorf("db_port = %d, want unchanged 5432", got)
	}
}

// Not parallel: mutates the process environment.
func TestApplyEnvIsNotSaved(t *testing.T) {
	t.Setenv("TEACTL_DATABASE_NAME", "shop")
	t.Setenv("TEACTL_DATABASE_PASSWORD", "hunter2")

	path := filepath.Join(t.TempDir(), "config.ini")
	cfg, err := NewApplication(path)
	if err != nil {
		t.Fatalf("NewApplication() returned error: %v", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv() returned error: %v", err)
	}
	if err := cfg.Set(FieldDBHost, "db.example.com"); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	data := readFile(t, path)
	for _, leaked := range []string{"shop", "hunter2", EncodeBase64("hunter2")} {
		if strings.Contains(data, leaked) {
			t.Errorf("environment value %q was saved:\n%s", leaked, data)
		}
	}
	if !strings.Contains(data, "db.example.com") {
		t.Errorf("explicit value was not saved:\n%s", data)
	}

	saved, err := NewApplication(path)
	if err != nil {
		t.Fatalf("NewApplication() returned error: %v", err)
	}
	if err := saved.Load(); err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if got := saved.String(FieldDBName); got == "shop" {
		t.Errorf("db_name = %q, the environment override was persisted", got)
	}
}
