// SPDX-License-Identifier: MPL-2.0

// Package testutil provides test helpers that fail the test on setup errors:
// environment variables (MustSetenv, MustUnsetenv, SetHomeDir), files
// (MustWriteFile, MustReadFile), a controllable clock for time-stamped file
// names, and a semaphore bounding concurrent container tests.
package testutil
