package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type column struct {
	title string
	// width 0 leaves the column unpadded.
	width int
}

type table struct {
	columns []column
	rows    [][]string
}

func newTable(cols []column) *table {
	return &table{columns: cols}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Cells are padded by display width so styled text keeps exact column widths.
func (t *table) render() string {
	pad := func(s string, width int) string {
		if width == 0 {
			return s
		}
		if lipgloss.Width(s) > width {
			s = runewidth.Truncate(s, width, "")
		}
		return s + strings.Repeat(" ", width-lipgloss.Width(s))
	}

	var sb strings.Builder
	headers := make([]string, 0, len(t.columns))
	dividers := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		headers = append(headers, styleHeader.Render(pad(col.title, col.width)))
		width := col.width
		if width == 0 {
			width = len(col.title)
		}
		dividers = append(dividers, styleMeta.Render(strings.Repeat("-", width)))
	}
	sb.WriteString(strings.Join(headers, " "))
	sb.WriteString("\n")
	sb.WriteString(strings.Join(dividers, " "))

	for _, row := range t.rows {
		cells := make([]string, 0, len(t.columns))
		for j, col := range t.columns {
			val := ""
			if j < len(row) {
				val = row[j]
			}
			cells = append(cells, pad(val, col.width))
		}
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return sb.String()
}
