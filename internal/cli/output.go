package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacksmith/todo/internal/model"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
	strikeOn   = "\033[9m"
)

// colorEnabled tracks whether color output is enabled.
// It is set based on terminal detection but can be overridden.
var colorEnabled = true

func init() {
	// Disable colors if stdout is not a terminal
	colorEnabled = IsTerminal(os.Stdout)
}

// SetColorEnabled allows overriding the color output setting.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled returns whether color output is currently enabled.
func ColorEnabled() bool {
	return colorEnabled
}

// ConfigureColor applies a color mode ("auto", "always" or "never").
// In auto mode color is enabled only when w is a terminal.
func ConfigureColor(mode string, w io.Writer) error {
	switch mode {
	case "", "auto":
		SetColorEnabled(IsTerminal(w))
	case "always":
		SetColorEnabled(true)
	case "never":
		SetColorEnabled(false)
	default:
		return &ValidationError{Field: "color", Message: fmt.Sprintf("unknown mode %q", mode)}
	}
	return nil
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsInteractive returns true if r is a terminal.
func IsInteractive(r io.Reader) bool {
	if f, ok := r.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func Green(s string) string {
	if !colorEnabled {
		return s
	}
	return colorGreen + s + colorReset
}

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func Gray(s string) string {
	if !colorEnabled {
		return s
	}
	return colorGray + s + colorReset
}

// Strike returns s with strikethrough if colors are enabled.
func Strike(s string) string {
	if !colorEnabled {
		return s
	}
	return strikeOn + s + colorReset
}

// DefaultMaxNameWidth is the default maximum visible width for task names.
const DefaultMaxNameWidth = 60

// Table formats columnar output with automatic column width calculation.
type Table struct {
	rows      [][]string
	colWidths []int
	maxWidths map[int]int // optional per-column max visible width
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{}
}

// SetMaxWidth sets the maximum visible width for a column.
// Content exceeding the limit is truncated with an ellipsis ("...").
func (t *Table) SetMaxWidth(col, maxWidth int) {
	if t.maxWidths == nil {
		t.maxWidths = make(map[int]int)
	}
	t.maxWidths[col] = maxWidth
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cols ...string) {
	for len(t.colWidths) < len(cols) {
		t.colWidths = append(t.colWidths, 0)
	}

	for i, col := range cols {
		width := visibleWidth(col)
		if maxW, ok := t.maxWidths[i]; ok && width > maxW {
			width = maxW
		}
		if width > t.colWidths[i] {
			t.colWidths[i] = width
		}
	}

	t.rows = append(t.rows, cols)
}

// Render writes the table to w with columns separated by two spaces.
// The last column is never padded.
func (t *Table) Render(w io.Writer) {
	for _, row := range t.rows {
		parts := make([]string, 0, len(row))
		for i, col := range row {
			if maxW, ok := t.maxWidths[i]; ok {
				col = Truncate(col, maxW)
			}
			if i < len(t.colWidths)-1 {
				col += strings.Repeat(" ", t.colWidths[i]-visibleWidth(col))
			}
			parts = append(parts, col)
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}
}

// RenderTasks writes tasks as a table of id, checkbox and name.
// An empty list prints "No tasks.".
func RenderTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}

	table := NewTable()
	table.SetMaxWidth(2, DefaultMaxNameWidth)
	for _, t := range tasks {
		table.AddRow(model.FormatTaskID(t.ID), FormatCheckbox(t.Done), formatName(t))
	}
	table.Render(w)
}

// FormatCheckbox returns "[x]" for done tasks and "[ ]" otherwise.
func FormatCheckbox(done bool) string {
	if done {
		return Green("[x]")
	}
	return "[ ]"
}

func formatName(t model.Task) string {
	if t.Done {
		return Gray(Strike(t.Name))
	}
	return t.Name
}

// Truncate returns s cut to maxWidth visible characters, ending in "..."
// when anything was cut. ANSI escape codes do not count towards the width;
// a reset is appended if s contained any.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	ellipsis := "..."
	limit := maxWidth - len(ellipsis)
	if limit < 0 {
		// No room for the ellipsis; hard cut.
		limit, ellipsis = maxWidth, ""
	}

	var result strings.Builder
	visible := 0
	inEscape := false
	hasAnsi := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			hasAnsi = true
			result.WriteRune(r)
			continue
		}
		if inEscape {
			result.WriteRune(r)
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		if visible >= limit {
			break
		}
		result.WriteRune(r)
		visible++
	}

	result.WriteString(ellipsis)
	if hasAnsi {
		result.WriteString(colorReset)
	}
	return result.String()
}

// visibleWidth returns the visible width of s, excluding ANSI escape codes.
func visibleWidth(s string) int {
	width := 0
	inEscape := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		width++
	}

	return width
}
