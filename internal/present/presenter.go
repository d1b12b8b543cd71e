// SPDX-License-Identifier: MPL-2.0

package present

import (
	"fmt"
	"io"
	"reflect"

	"github.com/teactl/teactl/internal/serde"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	noticeStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)

// Presenter renders results to a writer.
type Presenter struct {
	// Color enables terminal colours in JSON output.
	Color bool
}

// New creates a Presenter.
func New(color bool) *Presenter {
	return &Presenter{Color: color}
}

// Render writes rows, a single object or a slice of objects, in the given format.
func (p *Presenter) Render(w io.Writer, format Format, schema Schema, rows any) error {
	switch format {
	case FormatJSON:
		return p.renderJSON(w, rows)
	case FormatText:
		return p.renderTable(w, schema, rows)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}

// RenderJSON writes v as canonical JSON.
func (p *Presenter) RenderJSON(w io.Writer, v any) error {
	return p.renderJSON(w, v)
}

func (p *Presenter) renderJSON(w io.Writer, v any) error {
	data, err := serde.Marshal(v)
	if err != nil {
		return err
	}
	if p.Color {
		data = serde.Colorize(data)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func (p *Presenter) renderTable(w io.Writer, schema Schema, rows any) error {
	items := toItems(rows)
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, noticeStyle.Render(fmt.Sprintf("No %ss found.", schema.Subject)))
		return err
	}

	titles := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		titles[i] = c.Title
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(titles...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if col < len(schema.Columns) {
				style = style.Align(schema.Columns[col].Align.position())
			}
			return style
		})

	for _, item := range items {
		cells := make([]string, len(schema.Columns))
		for i, c := range schema.Columns {
			cells[i] = c.Cell(item)
		}
		t.Row(cells...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// toItems turns rows into a list: nil becomes empty, slices and arrays are
// expanded, anything else is a single row.
func toItems(rows any) []any {
	if rows == nil {
		return nil
	}

	rv := reflect.ValueOf(rows)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
	}
	return []any{rows}
}
