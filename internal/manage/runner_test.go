// SPDX-License-Identifier: MPL-2.0

package manage

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/teactl/teactl/internal/apperr"
	"github.com/teactl/teactl/internal/config"
	"github.com/teactl/teactl/internal/issue"
)

func newRegistry(t *testing.T, values map[string]string) (*config.Registry, *config.Store) {
	t.Helper()

	store, err := config.NewApplication(filepath.Join(t.TempDir(), "config.ini"))
	if err != nil {
		t.Fatalf("NewApplication() error = %v", err)
	}
	for k, v := range values {
		if err := store.Set(k, v); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}
	registry := config.NewRegistry()
	registry.Register(store)
	return registry, store
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCommandPrefixesEntrypoint(t *testing.T) {
	t.Parallel()

	registry, _ := newRegistry(t, map[string]string{
		config.FieldManage: `"/opt/my project/bin/python" -X dev manage.py`,
	})
	got, err := NewRunner(registry).Command(ClearSessions(1))
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	want := []string{"/opt/my project/bin/python", "-X", "dev", "manage.py", "clearsessions", "--force-color", "--verbosity", "1"}
	if !slices.Equal(got, want) {
		t.Errorf("Command() = %q, want %q", got, want)
	}
}

func TestCommandEmptyEntrypoint(t *testing.T) {
	t.Parallel()

	registry, _ := newRegistry(t, map[string]string{config.FieldManage: "  "})
	_, err := NewRunner(registry).Command(ClearSessions(1))

	var ice *apperr.InvalidConfigurationError
	if !errors.As(err, &ice) {
		t.Fatalf("Command() error = %v, want InvalidConfigurationError", err)
	}
	if !errors.Is(err, ErrEmptyEntrypoint) {
		t.Errorf("Command() error does not wrap ErrEmptyEntrypoint")
	}
	if ice.Key != config.FieldManage {
		t.Errorf("Key = %q, want %q", ice.Key, config.FieldManage)
	}
}

func TestRunWithoutConfiguration(t *testing.T) {
	t.Parallel()

	err := NewRunner(config.NewRegistry()).Run(t.Context(), ClearSessions(1))
	if !errors.Is(err, apperr.ErrMissingConfiguration) {
		t.Errorf("Run() error = %v, want ErrMissingConfiguration", err)
	}
}

func TestRunPassesEnvironment(t *testing.T) {
	t.Parallel()
	requireShell(t)

	registry, _ := newRegistry(t, map[string]string{
		config.FieldManage:   `sh -c 'printf "%s|%s|%s|%s" "$DATABASE_PORT" "$DJANGO_SETTINGS_MODULE" "$DATABASE_NAME" "$1"' sh`,
		config.FieldSettings: "shop.settings",
		config.FieldDBName:   "shop",
	})

	var stdout, stderr bytes.Buffer
	runner := NewRunner(registry,
		WithStdio(strings.NewReader(""), &stdout, &stderr),
		WithEnviron(func() []string { return []string{"PATH=/usr/bin:/bin"} }),
	)
	if err := runner.Run(t.Context(), New("check", 1)); err != nil {
		t.Fatalf("Run() error = %v (stderr %q)", err, stderr.String())
	}
	if got, want := stdout.String(), "5432|shop.settings|shop|check"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRunExitCode(t *testing.T) {
	t.Parallel()
	requireShell(t)

	registry, _ := newRegistry(t, map[string]string{config.FieldManage: `sh -c 'exit 3'`})
	var stdout, stderr bytes.Buffer
	err := NewRunner(registry, WithStdio(nil, &stdout, &stderr)).Run(t.Context(), New("migrate", 1))

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Run() error = %v, want *ExitError", err)
	}
	if exitErr.Code != 3 || exitErr.Command != "migrate" {
		t.Errorf("ExitError = %+v, want migrate/3", exitErr)
	}
}

func TestRunMissingExecutable(t *testing.T) {
	t.Parallel()

	registry, _ := newRegistry(t, map[string]string{config.FieldManage: "teactl-missing-python manage.py"})
	runner := NewRunner(registry, WithLookPath(func(string) (string, error) {
		return "", exec.ErrNotFound
	}))
	err := runner.Run(t.Context(), New("migrate", 1))

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Run() error = %v, want *issue.ActionableError", err)
	}
	if ae.Resource != "teactl-missing-python" || !ae.HasSuggestions() {
		t.Errorf("ActionableError = %+v", ae)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("Run() error does not wrap exec.ErrNotFound")
	}
}

func TestEnvironment(t *testing.T) {
	t.Parallel()

	_, store := newRegistry(t, map[string]string{
		config.FieldDBPassword: "pa ss",
	})

	env := Environment(store)
	if !slices.Contains(env, EnvDatabasePassword+"=pa ss") {
		t.Errorf("Environment() = %v, want the database password", env)
	}
	if !slices.Contains(env, EnvSecretKey+"="+store.String(config.FieldSecretKey)) {
		t.Errorf("Environment() does not carry the secret key")
	}
	for _, kv := range env {
		if strings.HasPrefix(kv, EnvSettingsModule+"=") {
			t.Errorf("Environment() sets %s without a settings module", EnvSettingsModule)
		}
	}
}
