// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for teactl.
//
// The root command loads the INI configuration, registers it as the active
// configuration and installs the logger. Subcommands manage the configuration,
// run management commands of the web project and dump or restore its PostgreSQL
// database. Command results go through the dispatch wrapper, so every command
// honours --format and reports domain errors the same way.
package cmd
