package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

func newValidateCmd() *cobra.Command {
	var rules []string
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check the site configuration",
		Long: `Load the site configuration and check it: title and description must be
set, every nav entry needs text and a site-relative link, and links must be
unique. Each --rule is a CEL expression over "_" that must evaluate to true.`,
		Example: `  docsite validate
  docsite validate fumadocs.config.js --rule "size(_.themeConfig.nav) <= 8"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, path, err := loadSite(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verr := engine.Validate(cfg, rules...)
			if verr == nil {
				_, err := fmt.Fprintln(out, "ok")
				return err
			}

			errs := multierr.Errors(verr)
			for _, e := range errs {
				fmt.Fprintln(out, e.Error())
			}
			fmt.Fprintf(out, "%s: %d problem(s)\n", path, len(errs))
			return &ExitError{Code: 1}
		},
	}
	cmd.Flags().StringArrayVar(&rules, "rule", nil, "CEL rule that must hold (repeatable)")
	return cmd
}
