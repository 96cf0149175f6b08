package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/docsite/pkg/site"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff A B",
		Short: "Show field-level differences between two site configurations",
		Long: `Compare two site configurations, in any supported formats. Nav entries are
compared by position. Exits 1 when the configurations differ.`,
		Example: `  docsite diff fumadocs.config.js fumadocs.config.yaml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)
			a, err := engine.Load(ctx, args[0])
			if err != nil {
				return err
			}
			b, err := engine.Load(ctx, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			changes := site.Diff(a, b)
			if len(changes) == 0 {
				_, err := fmt.Fprintln(out, "no changes")
				return err
			}
			for _, c := range changes {
				fmt.Fprintln(out, c.String())
			}
			return &ExitError{Code: 1}
		},
	}
}
