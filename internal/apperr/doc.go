// SPDX-License-Identifier: MPL-2.0

// Package apperr defines the domain errors that teactl knows how to present to
// users.
//
// Every error in this package implements Error, whose Message is a single
// human-readable line. The dispatch wrapper recognizes these errors and prints
// the message (as text or as a JSON payload) instead of propagating them; any
// other error is treated as an unexpected fault.
package apperr
