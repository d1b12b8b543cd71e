// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/teactl/teactl/internal/config"
	"github.com/teactl/teactl/internal/postgres"
	"github.com/teactl/teactl/internal/testutil"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

type testApp struct {
	*App
	configPath string
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
}

// newTestApp builds an App writing to buffers, with its configuration file at
// <tmp>/config.ini seeded from ini (may be empty).
func newTestApp(t *testing.T, ini string, deps Dependencies) *testApp {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.ini")
	if ini != "" {
		testutil.MustWriteFile(t, path, ini)
	}

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	deps.Stdin = strings.NewReader("")
	deps.Stdout = stdout
	deps.Stderr = stderr
	return &testApp{App: NewApp(deps), configPath: path, stdout: stdout, stderr: stderr}
}

func (a *testApp) execute(args ...string) int {
	return Execute(context.Background(), a.App, append([]string{"--config", a.configPath}, args...))
}

type recordingExecutor struct {
	mu    sync.Mutex
	calls []string
	fail  string
}

func (r *recordingExecutor) Execute(_ context.Context, name string, args, _ []string) (postgres.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	if name == r.fail {
		return postgres.Result{ExitCode: 2, Stderr: "boom"}, nil
	}
	return postgres.Result{}, nil
}

func fakeDatabase(exec postgres.Executor, called *bool) DatabaseFactory {
	return func(opts postgres.Options) *postgres.Client {
		if called != nil {
			*called = true
		}
		return postgres.New(opts,
			postgres.WithExecutor(exec),
			postgres.WithClock(testutil.NewFakeClock(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC))),
			postgres.WithHostname(func() (string, error) { return "box", nil }),
		)
	}
}

func TestConfigListJSON(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, "[database]\nport = 6543\n", Dependencies{})
	if code := app.execute("--format", "json", "config", "list"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
	}

	out := app.stdout.String()
	if got := gjson.Get(out, `#(key=="db_port").value`).Int(); got != 6543 {
		t.Errorf("db_port = %d, want 6543", got)
	}
	if got := gjson.Get(out, `#(key=="format").value`).String(); got != "json" {
		t.Errorf("format = %q, want json", got)
	}
	if got := gjson.Get(out, "#").Int(); got != int64(len(config.ApplicationFields)) {
		t.Errorf("entries = %d, want %d", got, len(config.ApplicationFields))
	}
}

func TestConfigListText(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, "", Dependencies{})
	if code := app.execute("config", "list"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
	}
	for _, want := range []string{"Key", "Value", "db_host", "localhost", "python manage.py"} {
		if !strings.Contains(app.stdout.String(), want) {
			t.Errorf("output missing %q:\n%s", want, app.stdout)
		}
	}
}

func TestConfigSetPersists(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, "", Dependencies{})
	if code := app.execute("config", "set", "db_host", "db.example.com"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
	}

	store, err := config.NewApplication(app.configPath)
	if err != nil {
		t.Fatalf("NewApplication() error = %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := store.String(config.FieldDBHost); got != "db.example.com" {
		t.Errorf("saved db_host = %q", got)
	}
}

func TestConfigSetErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown field", []string{"nope", "1"}, "Unknown configuration field 'nope'."},
		{"out of range", []string{"db_port", "70000"}, "Error setting key='db_port' value='70000'."},
		{"not a number", []string{"db_port", "abc"}, "Error setting key='db_port' value='abc'."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newTestApp(t, "", Dependencies{})
			if code := app.execute(append([]string{"config", "set"}, tt.args...)...); code != 1 {
				t.Fatalf("exit code = %d, want 1", code)
			}
			if !strings.Contains(app.stderr.String(), tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", app.stderr, tt.want)
			}
			if app.stdout.Len() != 0 {
				t.Errorf("stdout = %q, want empty", app.stdout)
			}
		})
	}
}

func TestConfigSetErrorJSON(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, "", Dependencies{})
	if code := app.execute("--format", "json", "config", "set", "nope", "1"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got := gjson.Get(app.stdout.String(), "error").String(); got != "Unknown configuration field 'nope'." {
		t.Errorf("error = %q", got)
	}
}

func TestFormatFlagIsNotSaved(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, "", Dependencies{})
	if code := app.execute("--format", "json", "config", "set", "verbose", "false"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
	}
	data := testutil.MustReadFile(t, app.configPath)
	if !regexp.MustCompile(`(?m)^format\s*=\s*text$`).MatchString(data) {
		t.Errorf("--format leaked into the saved file:\n%s", data)
	}
	if got := gjson.Get(app.stdout.String(), `#(key=="format").value`).String(); got != "json" {
		t.Errorf("listed format = %q, want the json override", got)
	}
}

func TestInvalidFormatFlag(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, "", Dependencies{})
	if code := app.execute("--format", "xml", "config", "list"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if app.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", app.stdout)
	}
}

func TestBrokenConfigFileWarns(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, "[database]\nport = many\nhost = db.internal\n", Dependencies{})
	if code := app.execute("--format", "json", "config", "list"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
	}
	if !strings.Contains(app.stderr.String(), "Warning") {
		t.Errorf("stderr = %q, want a warning", app.stderr)
	}
	if got := gjson.Get(app.stdout.String(), `#(key=="db_port").value`).Int(); got != 5432 {
		t.Errorf("db_port = %d, want the default", got)
	}
}

func TestConfigPath(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, "", Dependencies{})
	if code := app.execute("config", "path"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
	}
	if got := strings.TrimSpace(app.stdout.String()); got != app.configPath {
		t.Errorf("path = %q, want %q", got, app.configPath)
	}
}

func TestConfigExport(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, "[database]\nname = shop\n", Dependencies{})
	if code := app.execute("config", "export"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
	}

	var doc map[string]map[string]string
	if err := toml.Unmarshal(app.stdout.Bytes(), &doc); err != nil {
		t.Fatalf("export is not TOML: %v\n%s", err, app.stdout)
	}
	if got := doc["database"]["name"]; got != "shop" {
		t.Errorf("database.name = %q, want shop", got)
	}
	if got := doc["database"]["port"]; got != "5432" {
		t.Errorf("database.port = %q, want 5432", got)
	}
}

func TestDBDump(t *testing.T) {
	t.Parallel()

	exec := &recordingExecutor{}
	app := newTestApp(t, "[database]\nname = shop\n", Dependencies{Database: fakeDatabase(exec, nil)})
	outDir := filepath.Join(t.TempDir(), "dumps")

	if code := app.execute("--format", "json", "db", "dump", "--tag", "nightly", "-o", outDir); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
	}

	out := app.stdout.String()
	wantFile := filepath.Join(outDir, "shop-box-20250304050607-nightly.backup.gz")
	if got := gjson.Get(out, "file").String(); got != wantFile {
		t.Errorf("file = %q, want %q", got, wantFile)
	}
	if got := gjson.Get(out, "database").String(); got != "shop" {
		t.Errorf("database = %q, want shop", got)
	}
	if len(exec.calls) != 2 || !strings.HasPrefix(exec.calls[0], "pg_dump ") || !strings.HasPrefix(exec.calls[1], "gzip ") {
		t.Errorf("calls = %q", exec.calls)
	}
}

func TestDBDumpFailure(t *testing.T) {
	t.Parallel()

	exec := &recordingExecutor{fail: "pg_dump"}
	app := newTestApp(t, "", Dependencies{Database: fakeDatabase(exec, nil)})

	if code := app.execute("db", "dump", "-o", t.TempDir()); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(app.stderr.String(), "pg_dump") || !strings.Contains(app.stderr.String(), "failed: 2") {
		t.Errorf("stderr = %q", app.stderr)
	}
}

func TestDBLoad(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "shop.backup")
	testutil.MustWriteFile(t, file, "-- dump")

	t.Run("declined", func(t *testing.T) {
		t.Parallel()

		var called bool
		app := newTestApp(t, "", Dependencies{
			Database: fakeDatabase(&recordingExecutor{}, &called),
			Confirm:  func(string, string) (bool, error) { return false, nil },
		})
		if code := app.execute("db", "load", file); code != 0 {
			t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
		}
		if called {
			t.Error("database was touched after the confirmation was declined")
		}
		if !strings.Contains(app.stdout.String(), "Aborted") {
			t.Errorf("stdout = %q", app.stdout)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		t.Parallel()

		exec := &recordingExecutor{}
		var asked bool
		app := newTestApp(t, "", Dependencies{
			Database: fakeDatabase(exec, nil),
			Confirm:  func(string, string) (bool, error) { asked = true; return true, nil },
		})
		if code := app.execute("db", "load", file); code != 0 {
			t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
		}
		if !asked {
			t.Error("confirmation was not asked")
		}
		if len(exec.calls) != 4 || !strings.Contains(exec.calls[3], "-f "+file) {
			t.Errorf("calls = %q", exec.calls)
		}
	})

	t.Run("yes skips confirmation", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t, "", Dependencies{
			Database: fakeDatabase(&recordingExecutor{}, nil),
			Confirm: func(string, string) (bool, error) {
				t.Error("confirmation asked despite --yes")
				return false, nil
			},
		})
		if code := app.execute("db", "load", "--yes", file); code != 0 {
			t.Fatalf("exit code = %d, stderr: %s", code, app.stderr)
		}
	})

	t.Run("no terminal", func(t *testing.T) {
		t.Parallel()

		app := newTestApp(t, "", Dependencies{Database: fakeDatabase(&recordingExecutor{}, nil)})
		if code := app.execute("db", "load", file); code != 1 {
			t.Fatalf("exit code = %d, want 1", code)
		}
		if !strings.Contains(app.stderr.String(), "confirmation required") {
			t.Errorf("stderr = %q", app.stderr)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		var called bool
		app := newTestApp(t, "", Dependencies{Database: fakeDatabase(&recordingExecutor{}, &called)})
		if code := app.execute("db", "load", "--yes", filepath.Join(t.TempDir(), "nope.backup")); code != 1 {
			t.Fatalf("exit code = %d, want 1", code)
		}
		if called {
			t.Error("database was touched for a missing file")
		}
	})
}
