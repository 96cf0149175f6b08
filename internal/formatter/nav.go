package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oakwood-commons/docsite/pkg/site"
)

// ValidArrayStyles contains all valid list style values.
var ValidArrayStyles = []string{"index", "numbered", "bullet", "none"}

// ValidateArrayStyle returns an error if the style is invalid.
func ValidateArrayStyle(style string) error {
	if style == "" {
		return nil // empty means use default
	}
	for _, valid := range ValidArrayStyles {
		if style == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid array-style %q: valid values are index, numbered, bullet, none", style)
}

// FormatArrayIndex formats a list position based on style.
func FormatArrayIndex(i int, style string) string {
	switch style {
	case "numbered":
		return fmt.Sprintf("%d.", i+1)
	case "bullet":
		return "•"
	case "none":
		return ""
	default: // "index" or empty
		return fmt.Sprintf("[%d]", i)
	}
}

// RenderNavTable renders nav entries as a "# / TEXT / LINK" table. first is
// the position of nav[0] in the full navigation, so windowed output keeps the
// original numbering.
func RenderNavTable(nav []site.NavEntry, first int, opts TableOptions) string {
	rows := make([][]string, 0, len(nav))
	for i, e := range nav {
		rows = append(rows, []string{strconv.Itoa(first + i), e.Text, e.Link})
	}
	return RenderTable([]string{"#", "TEXT", "LINK"}, rows, opts)
}

// RenderNavList renders one "text -> link" line per entry, prefixed by the
// list style marker.
func RenderNavList(nav []site.NavEntry, first int, style string) string {
	var b strings.Builder
	for i, e := range nav {
		marker := FormatArrayIndex(first+i, style)
		if marker != "" {
			b.WriteString(marker + " ")
		}
		b.WriteString(e.Text + " -> " + e.Link + "\n")
	}
	return b.String()
}

// RenderSummary renders the whole record as a KEY/VALUE table using wire
// field paths.
func RenderSummary(cfg *site.Config, opts TableOptions) string {
	rows := [][]string{
		{"title", cfg.Title},
		{"description", cfg.Description},
	}
	for i, e := range cfg.ThemeConfig.Nav {
		rows = append(rows, []string{fmt.Sprintf("themeConfig.nav[%d]", i), e.Text + " -> " + e.Link})
	}
	if len(cfg.ThemeConfig.Nav) == 0 {
		rows = append(rows, []string{"themeConfig.nav", "[]"})
	}
	return RenderTable([]string{"KEY", "VALUE"}, rows, opts)
}
