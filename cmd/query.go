package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	celeval "github.com/oakwood-commons/docsite/internal/cel"
	"github.com/oakwood-commons/docsite/internal/formatter"
)

func newQueryCmd() *cobra.Command {
	var (
		expr      string
		functions bool
	)
	output := newEnum("yaml", "yaml", "json").withAliases(formatAliases)

	cmd := &cobra.Command{
		Use:   "query [file] -e EXPR",
		Short: "Evaluate a CEL expression against the site configuration",
		Long: `Evaluate a CEL expression against the site configuration, which is bound
to "_" with its wire field names. The result is printed as YAML, or JSON with
-o json.`,
		Example: `  docsite query -e "_.title"
  docsite query -e "_.themeConfig.nav.filter(e, e.link.endsWith('/')).map(e, e.text)"
  docsite query --functions`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if functions {
				eval, err := celeval.NewEvaluator()
				if err != nil {
					return err
				}
				return writeString(cmd, strings.Join(eval.Functions(), "\n")+"\n")
			}
			if strings.TrimSpace(expr) == "" {
				return errors.New("an expression is required (-e)")
			}

			engine, cfg, _, err := loadSite(cmd, args)
			if err != nil {
				return err
			}
			result, err := engine.Evaluate(expr, cfg)
			if err != nil {
				return err
			}

			if output.String() == "json" {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return fmt.Errorf("encode result: %w", err)
				}
				return writeString(cmd, string(data)+"\n")
			}
			out, err := formatter.FormatYAML(result, formatter.YAMLFormatOptions{LiteralBlockStrings: true})
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			return writeString(cmd, out)
		},
	}
	cmd.Flags().StringVarP(&expr, "expression", "e", "", "CEL expression to evaluate")
	cmd.Flags().VarP(output, "output", "o", "output format: yaml|json")
	cmd.Flags().BoolVar(&functions, "functions", false, "list the available CEL functions and exit")
	return cmd
}
