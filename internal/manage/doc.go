// SPDX-License-Identifier: MPL-2.0

// Package manage builds and runs commands of the web project's management entrypoint.
//
// An Invocation is the argument list passed to the entrypoint, starting with the
// management command name. The Runner prefixes it with the configured entrypoint
// command line and exports the project's settings and database connection through
// the environment.
package manage
