// SPDX-License-Identifier: MPL-2.0

package present

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// FormatText renders tables and highlighted messages.
	FormatText Format = "text"
	// FormatJSON renders structured JSON.
	FormatJSON Format = "json"

	// AlignLeft left-aligns a column.
	AlignLeft Align = "left"
	// AlignCenter centres a column.
	AlignCenter Align = "center"
	// AlignRight right-aligns a column.
	AlignRight Align = "right"

	// CheckGlyph is shown for true boolean cells.
	CheckGlyph = "✅"
	// CrossGlyph is shown for false boolean cells.
	CrossGlyph = "❌"
)

// ErrInvalidFormat is returned when a format name is not recognized.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	// Format selects how results are rendered.
	Format string

	// Align is the horizontal alignment of a column.
	Align string

	// Column describes one table column. Value resolves the cell for a row.
	Column struct {
		Title string
		Value func(row any) any
		Align Align
	}

	// Schema describes how rows of one subject are rendered as a table.
	Schema struct {
		Subject string
		Columns []Column
	}
)

// ParseFormat returns the Format named s (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (expected json or text)", ErrInvalidFormat, s)
	}
}

// Accessor adapts a typed accessor to Column.Value. Rows of another type resolve
// to nil.
func Accessor[T any](fn func(T) any) func(any) any {
	return func(row any) any {
		typed, ok := row.(T)
		if !ok {
			return nil
		}
		return fn(typed)
	}
}

// Cell resolves the column for row and formats it for display.
func (c Column) Cell(row any) string {
	if c.Value == nil {
		return ""
	}
	switch v := c.Value(row).(type) {
	case nil:
		return ""
	case bool:
		if v {
			return CheckGlyph
		}
		return CrossGlyph
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func (a Align) position() lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}
