package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/docsite/internal/formatter"
	"github.com/oakwood-commons/docsite/pkg/loader"
	"github.com/oakwood-commons/docsite/pkg/site"
)

type showOptions struct {
	output           *enumValue
	mermaidDirection string
	noValues         bool
	arrayStyle       string
}

func addShowFlags(cmd *cobra.Command, opts *showOptions) {
	opts.output = newEnum("table", "table", "tree", "mermaid", "yaml", "json", "toml", "js").withAliases(formatAliases)
	cmd.Flags().VarP(opts.output, "output", "o", "output format: table|tree|mermaid|yaml|json|toml|js")
	cmd.Flags().StringVar(&opts.mermaidDirection, "mermaid-direction", "LR", "Mermaid diagram direction: TD, LR, BT, RL")
	cmd.Flags().BoolVar(&opts.noValues, "tree-no-values", false, "show structure only (hide links) in tree and mermaid output")
	cmd.Flags().StringVar(&opts.arrayStyle, "array-style", "index", "nav position style: index, numbered, bullet, none")
}

func newShowCmd() *cobra.Command {
	opts := &showOptions{}
	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print the site configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, opts)
		},
	}
	addShowFlags(cmd, opts)
	return cmd
}

func runShow(cmd *cobra.Command, args []string, opts *showOptions) error {
	if err := formatter.ValidateArrayStyle(opts.arrayStyle); err != nil {
		return err
	}
	if err := formatter.ValidateMermaidDirection(opts.mermaidDirection); err != nil {
		return err
	}

	engine, cfg, _, err := loadSite(cmd, args)
	if err != nil {
		return err
	}
	return printConfig(cmd, engine.Encode, cfg, opts)
}

func printConfig(cmd *cobra.Command, encode func(*site.Config, loader.Format) ([]byte, error), cfg *site.Config, opts *showOptions) error {
	switch out := opts.output.String(); out {
	case "table":
		return writeString(cmd, formatter.RenderSummary(cfg, tableOptions(cmd)))
	case "tree":
		return writeString(cmd, formatter.RenderTree(cfg, formatter.TreeOptions{NoValues: opts.noValues, ArrayStyle: opts.arrayStyle}))
	case "mermaid":
		return writeString(cmd, formatter.RenderMermaid(cfg, formatter.MermaidOptions{Direction: opts.mermaidDirection, NoValues: opts.noValues}))
	default:
		data, err := encode(cfg, loader.Format(out))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
}
