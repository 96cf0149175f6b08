package formatter

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/docsite/pkg/site"
)

// ValidMermaidDirections lists the accepted diagram directions.
var ValidMermaidDirections = []string{"TD", "LR", "BT", "RL"}

// MermaidOptions controls Mermaid diagram output.
type MermaidOptions struct {
	// Direction sets the diagram direction: TD, LR, BT or RL. Default is LR.
	Direction string
	// NoValues hides links in node labels.
	NoValues bool
}

// RenderMermaid renders the navigation bar as a Mermaid flowchart. The site
// node links to the first entry and entries are chained in display order, so
// the diagram reads the way the bar is rendered.
func RenderMermaid(cfg *site.Config, opts MermaidOptions) string {
	dir := strings.ToUpper(strings.TrimSpace(opts.Direction))
	if dir == "" {
		dir = "LR"
	}

	lines := []string{
		fmt.Sprintf("graph %s", dir),
		fmt.Sprintf("    site[%q]", mermaidLabel(cfg.Title)),
	}
	prev := "site"
	for i, e := range cfg.ThemeConfig.Nav {
		id := fmt.Sprintf("n%d", i)
		label := e.Text
		if !opts.NoValues {
			label += "<br/>" + e.Link
		}
		lines = append(lines,
			fmt.Sprintf("    %s[%q]", id, mermaidLabel(label)),
			fmt.Sprintf("    %s --> %s", prev, id),
		)
		prev = id
	}
	return strings.Join(lines, "\n") + "\n"
}

// ValidateMermaidDirection returns an error for unknown directions.
func ValidateMermaidDirection(dir string) error {
	if dir == "" {
		return nil
	}
	for _, valid := range ValidMermaidDirections {
		if strings.EqualFold(dir, valid) {
			return nil
		}
	}
	return fmt.Errorf("invalid mermaid direction %q: valid values are %s", dir, strings.Join(ValidMermaidDirections, ", "))
}

// mermaidLabel makes a label safe inside a quoted Mermaid node.
func mermaidLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, `'`)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", "")
}
