package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/docsite/internal/fileio"
	"github.com/oakwood-commons/docsite/pkg/loader"
	"github.com/oakwood-commons/docsite/pkg/logger"
)

func newConvertCmd() *cobra.Command {
	var out string
	to := newEnum("", "js", "yaml", "json", "toml").withAliases(formatAliases)

	cmd := &cobra.Command{
		Use:   "convert [file] --to FORMAT",
		Short: "Re-serialize the site configuration in another format",
		Long: `Convert the site configuration to js, yaml, json or toml. The nav order is
kept. The configuration is validated first; an invalid configuration is not
written. With --out the file is replaced atomically, otherwise the result is
printed.`,
		Example: `  docsite convert --to yaml
  docsite convert fumadocs.config.js --to json --out fumadocs.config.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, path, err := loadSite(cmd, args)
			if err != nil {
				return err
			}
			if err := engine.Validate(cfg); err != nil {
				return err
			}

			format := loader.Format(to.String())
			data, err := engine.Encode(cfg, format)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			ctx := commandContext(cmd)
			if err := fileio.WriteFile(ctx, out, data, 0o644); err != nil {
				return err
			}
			logger.FromContext(ctx).V(1).Info("converted site config", logger.FileKey, path, logger.FormatKey, format, "out", out)
			return nil
		},
	}
	cmd.Flags().Var(to, "to", "target format: js|yaml|json|toml")
	cmd.Flags().StringVar(&out, "out", "", "write to this path instead of stdout")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
