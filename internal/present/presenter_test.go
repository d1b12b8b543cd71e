// SPDX-License-Identifier: MPL-2.0

package present

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

type user struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Team   *team  `json:"team"`
}

type team struct {
	Title string `json:"title"`
}

var userSchema = Schema{
	Subject: "User",
	Columns: []Column{
		{Title: "Name", Value: Accessor(func(u user) any { return u.Name }), Align: AlignLeft},
		{Title: "Active", Value: Accessor(func(u user) any { return u.Active }), Align: AlignCenter},
		{Title: "Team", Value: Accessor(func(u user) any {
			if u.Team == nil {
				return nil
			}
			return u.Team.Title
		}), Align: AlignRight},
	},
}

func TestRenderTableEmpty(t *testing.T) {
	t.Parallel()

	for _, rows := range []any{nil, []user{}, (*user)(nil)} {
		var buf bytes.Buffer
		if err := New(false).Render(&buf, FormatText, userSchema, rows); err != nil {
			t.Fatalf("Render() returned error: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "No Users found.") {
			t.Errorf("Render(%#v) = %q, want the no-results notice", rows, out)
		}
		if strings.Contains(out, "Name") {
			t.Errorf("Render(%#v) should not print a table: %q", rows, out)
		}
	}
}

func TestRenderTableRows(t *testing.T) {
	t.Parallel()

	rows := []user{
		{Name: "alice", Active: true, Team: &team{Title: "core"}},
		{Name: "bob", Active: false},
	}

	var buf bytes.Buffer
	if err := New(false).Render(&buf, FormatText, userSchema, rows); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Name", "Active", "Team", "alice", "bob", "core", CheckGlyph, CrossGlyph} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "true") || strings.Contains(out, "false") {
		t.Errorf("booleans should render as glyphs:\n%s", out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var aliceLine, bobLine string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "alice"):
			aliceLine = l
		case strings.Contains(l, "bob"):
			bobLine = l
		}
	}
	if !strings.Contains(aliceLine, CheckGlyph) {
		t.Errorf("alice row should show %s: %q", CheckGlyph, aliceLine)
	}
	if !strings.Contains(bobLine, CrossGlyph) {
		t.Errorf("bob row should show %s: %q", CrossGlyph, bobLine)
	}
}

func TestRenderTableSingleObject(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := New(false).Render(&buf, FormatText, userSchema, user{Name: "carol", Active: true}); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "carol") {
		t.Errorf("single object should render as one row:\n%s", buf.String())
	}
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rows := []user{{Name: "alice", Active: true}}
	if err := New(false).Render(&buf, FormatJSON, userSchema, rows); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	if got := gjson.Get(buf.String(), "0.name").String(); got != "alice" {
		t.Errorf("0.name = %q, want alice", got)
	}
	if !gjson.Get(buf.String(), "0.active").Bool() {
		t.Error("0.active should be true")
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("JSON output should not be coloured when Color is false")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	t.Parallel()

	err := New(false).Render(&bytes.Buffer{}, Format("yaml"), userSchema, nil)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Render() error = %v, want ErrInvalidFormat", err)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" TEXT ", FormatText, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCellDerivation(t *testing.T) {
	t.Parallel()

	col := Column{Title: "Upper", Value: func(row any) any { return strings.ToUpper(row.(string)) }}
	if got := col.Cell("abc"); got != "ABC" {
		t.Errorf("Cell() = %q, want ABC", got)
	}

	mismatched := Column{Value: Accessor(func(u user) any { return u.Name })}
	if got := mismatched.Cell(42); got != "" {
		t.Errorf("Cell() for a foreign row type = %q, want empty", got)
	}
}
