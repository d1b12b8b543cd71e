// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/teactl/teactl/internal/manage"

	"github.com/spf13/cobra"
)

const defaultAddrPort = "127.0.0.1:8000"

// newServerCommand creates the `teactl server` command tree.
func newServerCommand(app *App) *cobra.Command {
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Development server commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var opts manage.RunServerOptions
	runCmd := &cobra.Command{
		Use:     "run [ADDRPORT]",
		Short:   "Start the development server",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: checkVerbosity(&opts.Verbosity),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.AddrPort = defaultAddrPort
			if len(args) == 1 {
				opts.AddrPort = args[0]
			}
			return app.runManage(cmd, func() *manage.Invocation { return manage.RunServer(opts) })
		},
	}
	addVerbosityFlag(runCmd, &opts.Verbosity)
	f := runCmd.Flags()
	f.BoolVarP(&opts.IPv6, "ipv6", "6", false, "use an IPv6 address")
	f.BoolVar(&opts.NoThreading, "nothreading", false, "serve requests on a single thread")
	f.BoolVar(&opts.NoReload, "noreload", false, "disable the auto-reloader")
	f.BoolVar(&opts.NoStatic, "nostatic", false, "do not serve static files")
	f.BoolVar(&opts.Insecure, "insecure", false, "serve static files even when DEBUG is off")

	serverCmd.AddCommand(runCmd)
	return serverCmd
}
