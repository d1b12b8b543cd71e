// SPDX-License-Identifier: MPL-2.0

package config

import (
	"strings"
	"testing"
)

func TestFieldsMerge(t *testing.T) {
	t.Parallel()

	base := Fields{
		{Name: "a", FieldSpec: FieldSpec{Section: "s", Option: "a"}},
		{Name: "b", FieldSpec: FieldSpec{Section: "s", Option: "b"}},
	}
	derived := Fields{
		{Name: "c", FieldSpec: FieldSpec{Section: "t", Option: "c"}},
		{Name: "a", FieldSpec: FieldSpec{Section: "override", Option: "a", Type: TypeInteger}},
	}

	merged := base.Merge(derived)

	if got := strings.Join(merged.Names(), ","); got != "a,b,c" {
		t.Errorf("merged order = %s, want a,b,c", got)
	}
	a, ok := merged.Lookup("a")
	if !ok {
		t.Fatal("merged fields should contain a")
	}
	if a.Section != "override" || a.Type != TypeInteger {
		t.Errorf("derived field should win: got section %q type %s", a.Section, a.Type)
	}
	if orig, _ := base.Lookup("a"); orig.Section != "s" {
		t.Error("Merge must not modify the base fields")
	}
}

func TestApplicationFieldsExtendConsole(t *testing.T) {
	t.Parallel()

	names := ApplicationFields.Names()
	if names[0] != FieldFormat || names[1] != FieldVerbose {
		t.Errorf("application fields should start with the console fields, got %v", names[:2])
	}
	if _, ok := ApplicationFields.Lookup(FieldSecretKey); !ok {
		t.Error("application fields should declare secret_key")
	}
}

func TestFieldTypeString(t *testing.T) {
	t.Parallel()

	tests := map[FieldType]string{
		TypeString:    "string",
		TypeBoolean:   "boolean",
		TypeInteger:   "integer",
		TypeFloat:     "float",
		FieldType(42): "FieldType(42)",
	}
	for ft, want := range tests {
		if got := ft.String(); got != want {
			t.Errorf("FieldType(%d).String() = %q, want %q", int(ft), got, want)
		}
	}
}
