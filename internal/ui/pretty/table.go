package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableRow is one row of a plain column listing.
type TableRow []string

// FormatTable lays rows out in left-aligned columns under header. The last
// column is not padded.
func (s *Styles) FormatTable(header TableRow, rows []TableRow) string {
	widths := make([]int, len(header))
	for _, row := range append([]TableRow{header}, rows...) {
		for col, cell := range row {
			if col < len(widths) {
				widths[col] = max(widths[col], lipgloss.Width(cell))
			}
		}
	}

	var builder strings.Builder
	builder.WriteString(s.formatRow(header, widths, s.TableHeader))
	for _, row := range rows {
		builder.WriteString(s.formatRow(row, widths, lipgloss.NewStyle()))
	}
	return builder.String()
}

func (s *Styles) formatRow(row TableRow, widths []int, style lipgloss.Style) string {
	cells := make([]string, 0, len(row))
	for col, cell := range row {
		if col == len(row)-1 {
			cells = append(cells, style.Render(cell))
			continue
		}
		pad := strings.Repeat(" ", max(0, widths[col]-lipgloss.Width(cell)))
		cells = append(cells, style.Render(cell)+pad)
	}
	return strings.TrimRight(strings.Join(cells, "  "), " ") + "\n"
}
