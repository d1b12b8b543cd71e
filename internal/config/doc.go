// SPDX-License-Identifier: MPL-2.0

// Package config handles teactl configuration stored in an INI file.
//
// A configuration is an ordered set of typed fields, each persisted at a
// section/option location. Values are coerced from strings on Set (booleans accept
// true/on/false/off, integers are base-10, floats use the standard syntax), may be
// transformed by a per-field decoder, and may be constrained by a CUE expression.
// Save merges the declared fields into the existing file so undeclared sections and
// options survive a rewrite.
//
// Exactly one configuration is active per process. It is registered explicitly in a
// Registry at start-up and looked up with Registry.Active.
package config
