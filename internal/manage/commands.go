// SPDX-License-Identifier: MPL-2.0

package manage

import "strconv"

type (
	// DBShellOptions configures the database client shell.
	DBShellOptions struct {
		Verbosity  int
		Database   string
		Parameters []string
	}

	// MakeMigrationsOptions configures migration generation.
	MakeMigrationsOptions struct {
		Verbosity int
		AppLabel  string
		DryRun    bool
		Merge     bool
		Empty     bool
		NoInput   bool
		Name      string
		NoHeader  bool
		Check     bool
	}

	// MigrateOptions configures schema migration.
	MigrateOptions struct {
		Verbosity     int
		AppLabel      string
		MigrationName string
		NoInput       bool
		Database      string
		Fake          bool
		FakeInitial   bool
		Plan          bool
		RunSyncDB     bool
		Check         bool
	}

	// ShowMigrationsOptions configures the migration listing.
	ShowMigrationsOptions struct {
		Verbosity int
		AppLabels []string
		Database  string
		List      bool
		Plan      bool
	}

	// SquashMigrationsOptions configures migration squashing.
	SquashMigrationsOptions struct {
		Verbosity          int
		AppLabel           string
		StartMigrationName string
		MigrationName      string
		NoOptimize         bool
		NoInput            bool
		SquashedName       string
	}

	// CreateCacheTableOptions configures cache table creation.
	CreateCacheTableOptions struct {
		Verbosity int
		TableName string
		Database  string
		DryRun    bool
	}

	// DumpDataOptions configures fixture export.
	DumpDataOptions struct {
		Verbosity      int
		AppLabel       string
		Format         string
		Indent         int
		Database       string
		Exclude        []string
		NaturalForeign bool
		NaturalPrimary bool
		All            bool
		PrimaryKeys    string
		Output         string
	}

	// LoadDataOptions configures fixture import.
	LoadDataOptions struct {
		Verbosity         int
		Fixture           string
		Database          string
		App               string
		IgnoreNonExistent bool
		Exclude           []string
		Format            string
	}

	// RunServerOptions configures the development server.
	RunServerOptions struct {
		Verbosity   int
		AddrPort    string
		IPv6        bool
		NoThreading bool
		NoReload    bool
		NoStatic    bool
		Insecure    bool
	}

	// TestOptions configures a test run.
	TestOptions struct {
		Verbosity         int
		TestLabel         string
		NoInput           bool
		FailFast          bool
		TestRunner        string
		TopLevelDirectory string
		Pattern           string
		KeepDB            bool
		Reverse           bool
		DebugMode         bool
		DebugSQL          bool
		Parallel          int
		Tag               string
		ExcludeTags       []string
		PDB               bool
		Buffer            bool
		NamePatterns      []string
	}

	// TestServerOptions configures a development server backed by fixtures.
	TestServerOptions struct {
		Verbosity int
		Fixture   string
		NoInput   bool
		AddrPort  string
		IPv6      bool
	}

	// ChangePasswordOptions configures a password change.
	ChangePasswordOptions struct {
		Verbosity int
		Username  string
		Database  string
	}

	// CreateSuperuserOptions configures superuser creation.
	CreateSuperuserOptions struct {
		Verbosity int
		Username  string
		NoInput   bool
		Database  string
		Email     string
	}

	// CollectStaticOptions configures static file collection.
	CollectStaticOptions struct {
		Verbosity       int
		NoInput         bool
		NoPostProcess   bool
		Ignore          []string
		DryRun          bool
		Clear           bool
		Link            bool
		NoDefaultIgnore bool
	}

	// CheckOptions configures the project system checks.
	CheckOptions struct {
		Verbosity int
		AppLabel  string
		Tag       string
		ListTags  bool
		Deploy    bool
		FailLevel string
		Database  string
	}

	// StartAppOptions configures application scaffolding.
	StartAppOptions struct {
		Verbosity  int
		Name       string
		Directory  string
		Template   string
		Extensions []string
		Files      []string
	}

	// DiffSettingsOptions configures the settings diff.
	DiffSettingsOptions struct {
		Verbosity int
		All       bool
		Default   string
		Output    string
	}

	// ShellOptions configures the interactive project shell.
	ShellOptions struct {
		Verbosity int
		NoStartup bool
		Interface string
		Command   string
	}
)

// DBShell opens the command-line client of the configured database.
func DBShell(o DBShellOptions) *Invocation {
	return New("dbshell", o.Verbosity).
		Option("--database", o.Database).
		Args(o.Parameters...)
}

// MakeMigrations creates new migrations for model changes.
func MakeMigrations(o MakeMigrationsOptions) *Invocation {
	return New("makemigrations", o.Verbosity).
		Flag(o.DryRun, "--dry-run").
		Flag(o.Merge, "--merge").
		Flag(o.Empty, "--empty").
		Flag(o.NoInput, "--no-input").
		Option("--name", o.Name).
		Flag(o.NoHeader, "--no-header").
		Flag(o.Check, "--check").
		Args(o.AppLabel)
}

// Migrate brings the database schema up to date.
func Migrate(o MigrateOptions) *Invocation {
	return New("migrate", o.Verbosity).
		Flag(o.NoInput, "--no-input").
		Option("--database", o.Database).
		Flag(o.Fake, "--fake").
		Flag(o.FakeInitial, "--fake-initial").
		Flag(o.Plan, "--plan").
		Flag(o.RunSyncDB, "--run-syncdb").
		Flag(o.Check, "--check").
		Args(o.AppLabel, o.MigrationName)
}

// ShowMigrations lists the project's migrations.
func ShowMigrations(o ShowMigrationsOptions) *Invocation {
	return New("showmigrations", o.Verbosity).
		Option("--database", o.Database).
		Flag(o.List, "--list").
		Flag(o.Plan, "--plan").
		Args(o.AppLabels...)
}

// SquashMigrations merges a range of migrations into one.
func SquashMigrations(o SquashMigrationsOptions) *Invocation {
	return New("squashmigrations", o.Verbosity).
		Flag(o.NoOptimize, "--no-optimize").
		Flag(o.NoInput, "--no-input").
		Option("--squashed-name", o.SquashedName).
		Args(o.AppLabel, o.StartMigrationName, o.MigrationName)
}

// CreateCacheTable creates the tables used by the database cache backend.
func CreateCacheTable(o CreateCacheTableOptions) *Invocation {
	return New("createcachetable", o.Verbosity).
		Option("--database", o.Database).
		Flag(o.DryRun, "--dry-run").
		Args(o.TableName)
}

// ClearSessions deletes expired sessions.
func ClearSessions(verbosity int) *Invocation {
	return New("clearsessions", verbosity)
}

// DumpData writes database contents as a fixture.
func DumpData(o DumpDataOptions) *Invocation {
	inv := New("dumpdata", o.Verbosity).
		Option("--format", o.Format)
	if o.Indent > 0 {
		inv.Option("--indent", strconv.Itoa(o.Indent))
	}
	return inv.
		Option("--database", o.Database).
		Repeat("--exclude", o.Exclude).
		Flag(o.NaturalForeign, "--natural-foreign").
		Flag(o.NaturalPrimary, "--natural-primary").
		Flag(o.All, "--all").
		Option("--pks", o.PrimaryKeys).
		Option("--output", o.Output).
		Args(o.AppLabel)
}

// LoadData installs a fixture into the database.
func LoadData(o LoadDataOptions) *Invocation {
	return New("loaddata", o.Verbosity).
		Option("--database", o.Database).
		Option("--app", o.App).
		Flag(o.IgnoreNonExistent, "--ignorenonexistent").
		Repeat("--exclude", o.Exclude).
		Option("--format", o.Format).
		Args(o.Fixture)
}

// RunServer starts the development server.
func RunServer(o RunServerOptions) *Invocation {
	return New("runserver", o.Verbosity).
		Flag(o.IPv6, "--ipv6").
		Flag(o.NoThreading, "--nothreading").
		Flag(o.NoReload, "--noreload").
		Flag(o.NoStatic, "--nostatic").
		Flag(o.Insecure, "--insecure").
		Args(o.AddrPort)
}

// Test runs the project's test suite.
func Test(o TestOptions) *Invocation {
	inv := New("test", o.Verbosity).
		Flag(o.NoInput, "--no-input").
		Flag(o.FailFast, "--failfast").
		Option("--testrunner", o.TestRunner).
		Option("--top-level-directory", o.TopLevelDirectory).
		Option("--pattern", o.Pattern).
		Flag(o.KeepDB, "--keepdb").
		Flag(o.Reverse, "--reverse").
		Flag(o.DebugMode, "--debug-mode").
		Flag(o.DebugSQL, "--debug-sql")
	if o.Parallel > 0 {
		inv.Option("--parallel", strconv.Itoa(o.Parallel))
	}
	return inv.
		Option("--tag", o.Tag).
		Repeat("--exclude-tag", o.ExcludeTags).
		Flag(o.PDB, "--pdb").
		Flag(o.Buffer, "--buffer").
		Repeat("-k", o.NamePatterns).
		Args(o.TestLabel)
}

// TestServer starts a development server with data from fixtures.
func TestServer(o TestServerOptions) *Invocation {
	return New("testserver", o.Verbosity).
		Flag(o.NoInput, "--no-input").
		Option("--addrport", o.AddrPort).
		Flag(o.IPv6, "--ipv6").
		Args(o.Fixture)
}

// ChangePassword changes a user's password.
func ChangePassword(o ChangePasswordOptions) *Invocation {
	return New("changepassword", o.Verbosity).
		Option("--database", o.Database).
		Args(o.Username)
}

// CreateSuperuser creates a user with all permissions.
func CreateSuperuser(o CreateSuperuserOptions) *Invocation {
	return New("createsuperuser", o.Verbosity).
		Option("--username", o.Username).
		Flag(o.NoInput, "--no-input").
		Option("--database", o.Database).
		Option("--email", o.Email)
}

// CollectStatic gathers static files into the static root.
func CollectStatic(o CollectStaticOptions) *Invocation {
	return New("collectstatic", o.Verbosity).
		Flag(o.NoInput, "--no-input").
		Flag(o.NoPostProcess, "--no-post-process").
		Repeat("--ignore", o.Ignore).
		Flag(o.DryRun, "--dry-run").
		Flag(o.Clear, "--clear").
		Flag(o.Link, "--link").
		Flag(o.NoDefaultIgnore, "--no-default-ignore")
}

// Check runs the project's system checks.
func Check(o CheckOptions) *Invocation {
	return New("check", o.Verbosity).
		Option("--fail-level", o.FailLevel).
		Option("--tag", o.Tag).
		Flag(o.ListTags, "--list-tags").
		Flag(o.Deploy, "--deploy").
		Option("--database", o.Database).
		Args(o.AppLabel)
}

// StartApp scaffolds a new application.
func StartApp(o StartAppOptions) *Invocation {
	return New("startapp", o.Verbosity).
		Option("--template", o.Template).
		Repeat("--extension", o.Extensions).
		Repeat("--name", o.Files).
		Args(o.Name, o.Directory)
}

// DiffSettings shows the differences between current and default settings.
func DiffSettings(o DiffSettingsOptions) *Invocation {
	return New("diffsettings", o.Verbosity).
		Option("--output", o.Output).
		Flag(o.All, "--all").
		Option("--default", o.Default)
}

// Shell opens an interactive interpreter with the project loaded.
func Shell(o ShellOptions) *Invocation {
	return New("shell", o.Verbosity).
		Option("--interface", o.Interface).
		Flag(o.NoStartup, "--no-startup").
		Option("--command", o.Command)
}
