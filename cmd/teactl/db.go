// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/teactl/teactl/internal/config"
	"github.com/teactl/teactl/internal/manage"
	"github.com/teactl/teactl/internal/present"

	"github.com/spf13/cobra"
)

// DumpResult describes a written database dump.
type DumpResult struct {
	File     string `json:"file"`
	Database string `json:"database"`
}

var dumpSchema = present.Schema{
	Subject: "Dump",
	Columns: []present.Column{
		{Title: "Database", Value: present.Accessor(func(r DumpResult) any { return r.Database })},
		{Title: "File", Value: present.Accessor(func(r DumpResult) any { return r.File })},
	},
}

// newDBCommand creates the `teactl db` command tree.
func newDBCommand(app *App) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	dbCmd.AddCommand(
		newDBShellCommand(app),
		newMakeMigrationsCommand(app),
		newMigrateCommand(app),
		newShowMigrationsCommand(app),
		newSquashMigrationsCommand(app),
		newCreateCacheTableCommand(app),
		newClearSessionsCommand(app),
		newDumpDataCommand(app),
		newLoadDataCommand(app),
		newDumpCommand(app),
		newLoadCommand(app),
	)
	return dbCmd
}

func newDBShellCommand(app *App) *cobra.Command {
	var opts manage.DBShellOptions
	cmd := &cobra.Command{
		Use:     "shell [-- PARAMETER...]",
		Short:   "Open the database command-line client",
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Parameters = args
			return app.runManage(cmd, func() *manage.Invocation { return manage.DBShell(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	cmd.Flags().StringVar(&opts.Database, "database", "", "database alias to open")
	return cmd
}

func newMakeMigrationsCommand(app *App) *cobra.Command {
	var opts manage.MakeMigrationsOptions
	cmd := &cobra.Command{
		Use:     "makemigrations [APP_LABEL]",
		Short:   "Create new migrations based on model changes",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.AppLabel = argAt(args, 0)
			return app.runManage(cmd, func() *manage.Invocation { return manage.MakeMigrations(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.BoolVar(&opts.DryRun, "dry-run", false, "show what migrations would be made without writing them")
	f.BoolVar(&opts.Merge, "merge", false, "fix migration conflicts")
	f.BoolVar(&opts.Empty, "empty", false, "create an empty migration")
	f.BoolVar(&opts.NoInput, "no-input", false, "do not prompt for input")
	f.StringVarP(&opts.Name, "name", "n", "", "name of the new migration")
	f.BoolVar(&opts.NoHeader, "no-header", false, "omit the header comment in new migration files")
	f.BoolVar(&opts.Check, "check", false, "exit non-zero if model changes are missing migrations")
	return cmd
}

func newMigrateCommand(app *App) *cobra.Command {
	var opts manage.MigrateOptions
	cmd := &cobra.Command{
		Use:     "migrate [APP_LABEL [MIGRATION_NAME]]",
		Short:   "Synchronize the database schema with migrations",
		Args:    cobra.MaximumNArgs(2),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.AppLabel = argAt(args, 0)
			opts.MigrationName = argAt(args, 1)
			return app.runManage(cmd, func() *manage.Invocation { return manage.Migrate(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.BoolVar(&opts.NoInput, "no-input", false, "do not prompt for input")
	f.StringVar(&opts.Database, "database", "", "database alias to migrate")
	f.BoolVar(&opts.Fake, "fake", false, "mark migrations as run without running them")
	f.BoolVar(&opts.FakeInitial, "fake-initial", false, "skip initial migrations whose tables already exist")
	f.BoolVar(&opts.Plan, "plan", false, "show the operations that would run")
	f.BoolVar(&opts.RunSyncDB, "run-syncdb", false, "create tables for apps without migrations")
	f.BoolVar(&opts.Check, "check", false, "exit non-zero if unapplied migrations exist")
	return cmd
}

func newShowMigrationsCommand(app *App) *cobra.Command {
	var opts manage.ShowMigrationsOptions
	cmd := &cobra.Command{
		Use:     "showmigrations [APP_LABEL...]",
		Short:   "List the project's migrations and their status",
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.AppLabels = args
			return app.runManage(cmd, func() *manage.Invocation { return manage.ShowMigrations(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.StringVar(&opts.Database, "database", "", "database alias to inspect")
	f.BoolVarP(&opts.List, "list", "l", false, "list migrations by app")
	f.BoolVarP(&opts.Plan, "plan", "p", false, "list migrations in the order they would run")
	return cmd
}

func newSquashMigrationsCommand(app *App) *cobra.Command {
	var opts manage.SquashMigrationsOptions
	cmd := &cobra.Command{
		Use:     "squashmigrations APP_LABEL START_MIGRATION MIGRATION",
		Short:   "Squash a range of migrations into one",
		Args:    cobra.ExactArgs(3),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.AppLabel, opts.StartMigrationName, opts.MigrationName = args[0], args[1], args[2]
			return app.runManage(cmd, func() *manage.Invocation { return manage.SquashMigrations(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.BoolVar(&opts.NoOptimize, "no-optimize", false, "do not optimize the squashed operations")
	f.BoolVar(&opts.NoInput, "no-input", false, "do not prompt for input")
	f.StringVar(&opts.SquashedName, "squashed-name", "", "name of the squashed migration")
	return cmd
}

func newCreateCacheTableCommand(app *App) *cobra.Command {
	var opts manage.CreateCacheTableOptions
	cmd := &cobra.Command{
		Use:     "createcachetable [TABLE_NAME]",
		Short:   "Create the tables used by the database cache backend",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.TableName = argAt(args, 0)
			return app.runManage(cmd, func() *manage.Invocation { return manage.CreateCacheTable(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	cmd.Flags().StringVar(&opts.Database, "database", "", "database alias to use")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the SQL without running it")
	return cmd
}

func newClearSessionsCommand(app *App) *cobra.Command {
	var verbosity int
	cmd := &cobra.Command{
		Use:     "clearsessions",
		Short:   "Delete expired sessions",
		Args:    cobra.NoArgs,
		PreRunE: checkVerbosity(&verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runManage(cmd, func() *manage.Invocation { return manage.ClearSessions(verbosity) })
		},
	}
	addVerbosityFlag(cmd, &verbosity)
	return cmd
}

func newDumpDataCommand(app *App) *cobra.Command {
	var opts manage.DumpDataOptions
	cmd := &cobra.Command{
		Use:     "dumpdata [APP_LABEL[.MODEL]]",
		Short:   "Write database contents as a fixture",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.AppLabel = argAt(args, 0)
			return app.runManage(cmd, func() *manage.Invocation { return manage.DumpData(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	// --format is the persistent output format flag.
	f.StringVar(&opts.Format, "fixture-format", "", "serialization format of the fixture")
	f.IntVar(&opts.Indent, "indent", 0, "indentation level of the output")
	f.StringVar(&opts.Database, "database", "", "database alias to dump")
	f.StringArrayVarP(&opts.Exclude, "exclude", "e", nil, "app label or app_label.ModelName to exclude (repeatable)")
	f.BoolVar(&opts.NaturalForeign, "natural-foreign", false, "use natural foreign keys")
	f.BoolVar(&opts.NaturalPrimary, "natural-primary", false, "use natural primary keys")
	f.BoolVarP(&opts.All, "all", "a", false, "use the base manager instead of the default one")
	f.StringVar(&opts.PrimaryKeys, "pks", "", "comma-separated primary keys to dump")
	f.StringVarP(&opts.Output, "output", "o", "", "file to write the fixture to")
	return cmd
}

func newLoadDataCommand(app *App) *cobra.Command {
	var opts manage.LoadDataOptions
	cmd := &cobra.Command{
		Use:     "loaddata FIXTURE",
		Short:   "Install a fixture into the database",
		Args:    cobra.ExactArgs(1),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Fixture = args[0]
			return app.runManage(cmd, func() *manage.Invocation { return manage.LoadData(opts) })
		},
	}
	addVerbosityFlag(cmd, &opts.Verbosity)
	f := cmd.Flags()
	f.StringVar(&opts.Database, "database", "", "database alias to load into")
	f.StringVar(&opts.App, "app", "", "only look for fixtures in this app")
	f.BoolVarP(&opts.IgnoreNonExistent, "ignorenonexistent", "i", false, "ignore fields that no longer exist")
	f.StringArrayVarP(&opts.Exclude, "exclude", "e", nil, "app label or app_label.ModelName to exclude (repeatable)")
	f.StringVar(&opts.Format, "fixture-format", "", "serialization format of fixtures read from stdin")
	return cmd
}

func newDumpCommand(app *App) *cobra.Command {
	var (
		tag            string
		deleteExisting bool
		outDir         string
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write a compressed pg_dump of the configured database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, &dumpSchema, func(ctx context.Context) (any, error) {
				cfg, err := app.Registry.Active()
				if err != nil {
					return nil, err
				}
				dir := outDir
				if dir == "" {
					dir = cfg.String(config.FieldBackupDir)
				}
				client, err := app.database()
				if err != nil {
					return nil, err
				}
				file, err := client.Dump(ctx, dir, tag, deleteExisting)
				if err != nil {
					return nil, err
				}
				return DumpResult{File: file, Database: cfg.String(config.FieldDBName)}, nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&tag, "tag", "t", "", "suffix added to the dump file name")
	f.BoolVarP(&deleteExisting, "delete", "d", false, "delete existing files in the output directory first")
	f.StringVarP(&outDir, "output-directory", "o", "", "directory to write to (default is the backup_dir setting)")
	return cmd
}

func newLoadCommand(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Replace the configured database with a dump",
		Long: `Replace the configured database with a dump.

The database is dropped and recreated before the dump is restored. Files
ending in .gz are decompressed first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			if _, err := os.Stat(file); err != nil {
				return newServiceError(err, classifyError(err))
			}

			cfg, err := app.Registry.Active()
			if err != nil {
				return err
			}
			if !yes {
				ok, err := app.Confirm(
					fmt.Sprintf("Replace database %q?", cfg.String(config.FieldDBName)),
					fmt.Sprintf("All data in %q on %s is deleted and restored from %s.",
						cfg.String(config.FieldDBName), cfg.String(config.FieldDBHost), file),
				)
				if err != nil {
					return newServiceError(err, classifyError(err))
				}
				if !ok {
					fmt.Fprintln(app.stdout, WarningStyle.Render("Aborted"))
					return nil
				}
			}

			return app.run(cmd, nil, func(ctx context.Context) (any, error) {
				client, err := app.database()
				if err != nil {
					return nil, err
				}
				if err := client.Load(ctx, file); err != nil {
					return nil, err
				}
				_, err = fmt.Fprintln(app.stdout, SuccessStyle.Render("Loaded ")+CmdStyle.Render(file))
				return nil, err
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// argAt returns args[i] or "" when absent.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
