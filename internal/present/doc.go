// SPDX-License-Identifier: MPL-2.0

// Package present renders command results either as JSON or as a table.
//
// A Schema describes the table: its subject (used in the "no results" notice) and
// an ordered list of columns. Each column resolves its cell from a row with an
// explicit accessor function; boolean cells are shown as ✅ or ❌.
package present
