// Package formatter serializes site configurations and renders them for the
// terminal: tables, lists, trees and Mermaid diagrams.
package formatter

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Table styles, ANSI 256 codes.
var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Background(lipgloss.Color("236"))
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TableOptions control table rendering.
type TableOptions struct {
	NoColor bool
	// MaxWidth caps the total table width; 0 disables truncation.
	MaxWidth int
}

// RenderTable renders headers and rows as aligned columns separated by two
// spaces, with a rule under the header. The first column is styled as a key
// column, the rest as values. When MaxWidth is exceeded the last column is
// truncated with an ellipsis.
func RenderTable(headers []string, rows [][]string, opts TableOptions) string {
	const sepWidth = 2
	sep := strings.Repeat(" ", sepWidth)

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(escapeCell(row[i])); w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := sepWidth * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	if opts.MaxWidth > 0 && total > opts.MaxWidth && len(widths) > 0 {
		last := len(widths) - 1
		shrunk := widths[last] - (total - opts.MaxWidth)
		if shrunk < 5 {
			shrunk = 5
		}
		total -= widths[last] - shrunk
		widths[last] = shrunk
	}

	var b strings.Builder
	cells := make([]string, len(headers))
	for i, h := range headers {
		cell := padRight(h, widths[i])
		if !opts.NoColor {
			cell = headerStyle.Render(cell)
		}
		cells[i] = cell
	}
	b.WriteString(strings.TrimRight(strings.Join(cells, sep), " ") + "\n")

	rule := strings.Repeat("─", total)
	if !opts.NoColor {
		rule = separatorStyle.Render(rule)
	}
	b.WriteString(rule + "\n")

	for _, row := range rows {
		for i := range headers {
			val := ""
			if i < len(row) {
				val = escapeCell(row[i])
			}
			cell := padRight(truncate(val, widths[i]), widths[i])
			if !opts.NoColor {
				if i == 0 {
					cell = keyStyle.Render(cell)
				} else {
					cell = valueStyle.Render(cell)
				}
			}
			cells[i] = cell
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, sep), " ") + "\n")
	}
	return b.String()
}

// escapeCell flattens control characters so table rows stay single-line.
func escapeCell(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return strings.ReplaceAll(s, "\t", " ")
}

// truncate shortens s to maxLen display cells, adding an ellipsis when there
// is room for one.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}

func padRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
