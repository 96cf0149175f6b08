package formatter

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/docsite/pkg/site"
)

// FormatJS renders cfg as the ES module consumed by the documentation
// generator: a default-exported object literal with single-quoted strings,
// two-space indentation, one nav entry per line and trailing commas.
func FormatJS(cfg *site.Config) string {
	var b strings.Builder
	b.WriteString("export default {\n")
	fmt.Fprintf(&b, "  title: %s,\n", jsString(cfg.Title))
	fmt.Fprintf(&b, "  description: %s,\n", jsString(cfg.Description))
	b.WriteString("  themeConfig: {\n")
	if len(cfg.ThemeConfig.Nav) == 0 {
		b.WriteString("    nav: [],\n")
	} else {
		b.WriteString("    nav: [\n")
		for _, e := range cfg.ThemeConfig.Nav {
			fmt.Fprintf(&b, "      { text: %s, link: %s },\n", jsString(e.Text), jsString(e.Link))
		}
		b.WriteString("    ],\n")
	}
	b.WriteString("  },\n")
	b.WriteString("};\n")
	return b.String()
}

// jsString quotes s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
