// SPDX-License-Identifier: MPL-2.0

package config

import "fmt"

const (
	// TypeString stores the raw string unchanged.
	TypeString FieldType = iota
	// TypeBoolean accepts true/on and false/off, case-insensitively.
	TypeBoolean
	// TypeInteger accepts base-10 integers.
	TypeInteger
	// TypeFloat accepts decimal or scientific floating point numbers.
	TypeFloat
)

type (
	// FieldType is the declared type of a configuration field.
	FieldType int

	// FieldSpec describes where a field is persisted and how it is converted.
	FieldSpec struct {
		Section string
		Option  string
		Type    FieldType
		// Decode transforms the coerced value into the stored value.
		Decode func(any) (any, error)
		// Encode transforms the stored value into its file representation.
		Encode func(any) string
		// Constraint is an optional CUE expression the stored value must satisfy.
		Constraint string
	}

	// Field is a named FieldSpec.
	Field struct {
		Name string
		FieldSpec
	}

	// Fields is an ordered field mapping.
	Fields []Field
)

// String returns the type name used in messages.
func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// Lookup returns the field declared under name.
func (fs Fields) Lookup(name string) (Field, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns the field names in declaration order.
func (fs Fields) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}

// Merge returns fs extended by derived. A derived field replaces the base field of
// the same name in place; other derived fields are appended in their own order.
func (fs Fields) Merge(derived Fields) Fields {
	merged := make(Fields, len(fs), len(fs)+len(derived))
	copy(merged, fs)

	index := make(map[string]int, len(merged))
	for i, f := range merged {
		index[f.Name] = i
	}

	for _, f := range derived {
		if i, ok := index[f.Name]; ok {
			merged[i] = f
			continue
		}
		index[f.Name] = len(merged)
		merged = append(merged, f)
	}
	return merged
}
