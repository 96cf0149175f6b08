package formatter

import (
	"strings"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/docsite/pkg/site"
)

// TreeOptions controls tree output.
type TreeOptions struct {
	// NoValues hides links (structure only).
	NoValues bool
	// ArrayStyle controls how nav positions are displayed.
	ArrayStyle string
}

// RenderTree renders the record as an ASCII tree rooted at the site title.
// Nav entries appear in display order.
func RenderTree(cfg *site.Config, opts TreeOptions) string {
	tree := treeprint.NewWithRoot(cfg.Title)
	if !opts.NoValues {
		tree.AddMetaNode("description", cfg.Description)
	} else {
		tree.AddNode("description")
	}

	nav := tree.AddMetaBranch(len(cfg.ThemeConfig.Nav), "nav")
	for i, e := range cfg.ThemeConfig.Nav {
		label := e.Text
		if !opts.NoValues {
			label += " -> " + e.Link
		}
		if marker := FormatArrayIndex(i, opts.ArrayStyle); marker != "" {
			nav.AddMetaNode(strings.Trim(marker, "[]"), label)
			continue
		}
		nav.AddNode(label)
	}
	return tree.String()
}
