package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/docsite/internal/formatter"
	"github.com/oakwood-commons/docsite/internal/limiter"
	"github.com/oakwood-commons/docsite/pkg/site"
)

func newNavCmd() *cobra.Command {
	var (
		arrayStyle       string
		mermaidDirection string
		limitCfg         limiter.Config
	)
	output := newEnum("table", "table", "list", "tree", "mermaid", "json", "yaml").withAliases(formatAliases)

	cmd := &cobra.Command{
		Use:   "nav [file]",
		Short: "Print the navigation bar entries in display order",
		Example: `  docsite nav
  docsite nav -o list --array-style numbered
  docsite nav --tail 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := limitCfg.Validate(); err != nil {
				return err
			}
			if err := formatter.ValidateArrayStyle(arrayStyle); err != nil {
				return err
			}
			if err := formatter.ValidateMermaidDirection(mermaidDirection); err != nil {
				return err
			}

			_, cfg, _, err := loadSite(cmd, args)
			if err != nil {
				return err
			}
			nav, first := limiter.Apply(limitCfg, cfg.ThemeConfig.Nav)

			windowed := cfg.Clone()
			windowed.ThemeConfig.Nav = nav

			switch output.String() {
			case "list":
				return writeString(cmd, formatter.RenderNavList(nav, first, arrayStyle))
			case "tree":
				return writeString(cmd, formatter.RenderTree(windowed, formatter.TreeOptions{ArrayStyle: arrayStyle}))
			case "mermaid":
				return writeString(cmd, formatter.RenderMermaid(windowed, formatter.MermaidOptions{Direction: mermaidDirection}))
			case "json":
				if nav == nil {
					nav = []site.NavEntry{}
				}
				data, err := json.MarshalIndent(nav, "", "  ")
				if err != nil {
					return err
				}
				return writeString(cmd, string(data)+"\n")
			case "yaml":
				if nav == nil {
					nav = []site.NavEntry{}
				}
				out, err := formatter.FormatYAML(nav, formatter.YAMLFormatOptions{})
				if err != nil {
					return err
				}
				return writeString(cmd, out)
			default:
				return writeString(cmd, formatter.RenderNavTable(nav, first, tableOptions(cmd)))
			}
		},
	}

	cmd.Flags().VarP(output, "output", "o", "output format: table|list|tree|mermaid|json|yaml")
	cmd.Flags().StringVar(&arrayStyle, "array-style", "index", "list marker style: index, numbered, bullet, none")
	cmd.Flags().StringVar(&mermaidDirection, "mermaid-direction", "LR", "Mermaid diagram direction: TD, LR, BT, RL")
	cmd.Flags().IntVar(&limitCfg.Limit, "limit", 0, "show only the first N entries")
	cmd.Flags().IntVar(&limitCfg.Offset, "offset", 0, "skip the first N entries")
	cmd.Flags().IntVar(&limitCfg.Tail, "tail", 0, "show the last N entries (mutually exclusive with --limit; ignores --offset)")
	return cmd
}
