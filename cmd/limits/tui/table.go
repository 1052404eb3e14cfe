package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jamesainslie/limits/pkg/limits/types"
)

// Row is one table row. Label identifies the row for display purposes only.
type Row struct {
	Label string
	Cells []string
}

// Table is a scrollable, striped table with an optional row cursor.
// The zero value is an empty table with no columns.
type Table struct {
	columns []string
	rows    []Row

	cursorEnabled bool
	zebra         bool

	cursor int
	offset int // scroll offset
	width  int
	height int // visible rows
}

// NewTable creates an empty table sized for a default terminal.
func NewTable() Table {
	return Table{width: 76, height: 15}
}

// AddColumns appends column titles.
func (t *Table) AddColumns(titles ...string) {
	t.columns = append(t.columns, titles...)
}

// Columns returns the column titles.
func (t Table) Columns() []string {
	return t.columns
}

// HasColumns reports whether columns have been defined.
func (t Table) HasColumns() bool {
	return len(t.columns) > 0
}

// Clear removes all rows. Columns, cursor and scroll position are kept;
// they are clamped once new rows arrive.
func (t *Table) Clear() {
	t.rows = nil
}

// AddRow appends a row of cells.
func (t *Table) AddRow(label string, cells ...string) {
	t.rows = append(t.rows, Row{Label: label, Cells: cells})
}

// RowCount returns the number of rows.
func (t Table) RowCount() int {
	return len(t.rows)
}

// Row returns the row at index i.
func (t Table) Row(i int) Row {
	return t.rows[i]
}

// SetCursorMode enables or disables the row cursor.
func (t *Table) SetCursorMode(enabled bool) {
	t.cursorEnabled = enabled
}

// CursorEnabled reports whether the row cursor is shown.
func (t Table) CursorEnabled() bool {
	return t.cursorEnabled
}

// SetZebra enables or disables alternating row styling.
func (t *Table) SetZebra(enabled bool) {
	t.zebra = enabled
}

// Zebra reports whether alternating row styling is on.
func (t Table) Zebra() bool {
	return t.zebra
}

// Cursor returns the current cursor position.
func (t Table) Cursor() int {
	return t.cursor
}

// SetDimensions sets the content width and the number of visible rows.
func (t *Table) SetDimensions(width, height int) {
	if width < 40 {
		width = 40
	}
	if height < 3 {
		height = 3
	}
	t.width = width
	t.height = height
	t.ensureVisible()
}

// MoveUp moves the cursor up by n rows.
func (t *Table) MoveUp(n int) {
	t.cursor -= n
	t.Clamp()
}

// MoveDown moves the cursor down by n rows.
func (t *Table) MoveDown(n int) {
	t.cursor += n
	t.Clamp()
}

// GotoTop moves the cursor to the first row.
func (t *Table) GotoTop() {
	t.cursor = 0
	t.offset = 0
}

// GotoBottom moves the cursor to the last row.
func (t *Table) GotoBottom() {
	t.cursor = len(t.rows) - 1
	t.Clamp()
}

// PageSize returns the number of visible rows.
func (t Table) PageSize() int {
	return t.height
}

// Clamp keeps the cursor within the rows and in view.
func (t *Table) Clamp() {
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureVisible()
}

// ensureVisible adjusts offset to keep cursor visible.
func (t *Table) ensureVisible() {
	if t.cursor < t.offset {
		t.offset = t.cursor
	} else if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}

	if maxOffset := len(t.rows) - t.height; t.offset > maxOffset {
		t.offset = maxOffset
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

// View renders the column titles followed by the visible rows. The output
// always spans height+1 lines.
func (t Table) View() string {
	widths := t.columnWidths()

	var b strings.Builder
	b.WriteString(t.renderColumnHeader(widths))
	b.WriteString("\n")

	lines := 0
	for i := t.offset; i < t.offset+t.height && i < len(t.rows); i++ {
		b.WriteString(t.renderRow(i, widths))
		b.WriteString("\n")
		lines++
	}
	for lines < t.height {
		b.WriteString("\n")
		lines++
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// columnWidths sizes each column to its widest cell and gives the last
// column whatever width remains.
func (t Table) columnWidths() []int {
	n := len(t.columns)
	if n == 0 {
		return nil
	}

	widths := make([]int, n)
	for i, title := range t.columns {
		widths[i] = lipgloss.Width(title)
	}
	for _, r := range t.rows {
		for i, cell := range r.Cells {
			if i < n && !isSectionRow(r) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	// One leading space plus two between columns.
	available := t.width - 1 - 2*(n-1)
	fixed := 0
	for i := 0; i < n-1; i++ {
		widths[i] = min(widths[i], available/2)
		fixed += widths[i]
	}
	widths[n-1] = max(available-fixed, 1)
	return widths
}

func (t Table) renderColumnHeader(widths []int) string {
	cells := make([]string, len(widths))
	for i, w := range widths {
		cells[i] = columnHeaderStyle.Render(fit(t.columns[i], w))
	}
	return " " + strings.Join(cells, "  ")
}

func (t Table) renderRow(i int, widths []int) string {
	r := t.rows[i]

	style := normalRowStyle
	switch {
	case t.cursorEnabled && i == t.cursor:
		style = cursorRowStyle
	case isSectionRow(r):
		style = sectionRowStyle
	case t.zebra && i%2 == 1:
		style = stripeRowStyle
	}

	if isSectionRow(r) && !(t.cursorEnabled && i == t.cursor) {
		return style.Render(" " + fit(r.Cells[1], t.width-1))
	}

	parts := make([]string, 0, 2*len(widths))
	parts = append(parts, style.Render(" "))
	for c, w := range widths {
		var cell string
		if c < len(r.Cells) {
			cell = r.Cells[c]
		}
		if c > 0 {
			parts = append(parts, style.Render("  "))
		}
		parts = append(parts, cellStyle(style, cell).Render(fit(cell, w)))
	}
	return strings.Join(parts, "")
}

// cellStyle colors sentinel values on top of the row style.
func cellStyle(row lipgloss.Style, cell string) lipgloss.Style {
	switch {
	case cell == types.Unlimited:
		return row.Foreground(warningColor)
	case strings.HasPrefix(cell, "Error:"):
		return row.Foreground(dangerColor)
	case cell == types.NotAvailable:
		return row.Foreground(mutedColor)
	default:
		return row
	}
}

// isSectionRow reports whether r carries a section header: an empty
// first cell and a section name in the second.
func isSectionRow(r Row) bool {
	return len(r.Cells) >= 2 && r.Cells[0] == "" && types.IsSection(r.Cells[1])
}
