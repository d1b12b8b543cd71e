// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/teactl/teactl/internal/manage"

	"github.com/spf13/cobra"
)

// newAuthCommand creates the `teactl auth` command tree.
func newAuthCommand(app *App) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "User account commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var pw manage.ChangePasswordOptions
	pwCmd := &cobra.Command{
		Use:     "changepassword [USERNAME]",
		Short:   "Change a user's password",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: checkVerbosity(&pw.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw.Username = argAt(args, 0)
			return app.runManage(cmd, func() *manage.Invocation { return manage.ChangePassword(pw) })
		},
	}
	addVerbosityFlag(pwCmd, &pw.Verbosity)
	pwCmd.Flags().StringVar(&pw.Database, "database", "", "database alias to use")

	var su manage.CreateSuperuserOptions
	suCmd := &cobra.Command{
		Use:     "createsuperuser",
		Short:   "Create a user with all permissions",
		Args:    cobra.NoArgs,
		PreRunE: checkVerbosity(&su.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runManage(cmd, func() *manage.Invocation { return manage.CreateSuperuser(su) })
		},
	}
	addVerbosityFlag(suCmd, &su.Verbosity)
	f := suCmd.Flags()
	f.StringVar(&su.Username, "username", "", "login of the superuser")
	f.BoolVar(&su.NoInput, "no-input", false, "do not prompt for input")
	f.StringVar(&su.Database, "database", "", "database alias to use")
	f.StringVar(&su.Email, "email", "", "email address of the superuser")

	authCmd.AddCommand(pwCmd, suCmd)
	return authCmd
}
