package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/docsite/internal/fileio"
	"github.com/oakwood-commons/docsite/pkg/loader"
	"github.com/oakwood-commons/docsite/pkg/site"
)

func newInitCmd() *cobra.Command {
	var force bool
	format := newEnum("js", "js", "yaml", "json", "toml").withAliases(formatAliases)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default site configuration",
		Long: `Write the default codex-autotest site configuration to --dir under its
conventional name (fumadocs.config.<ext>). An existing file is kept unless
--force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			f := loader.Format(format.String())
			data, err := engine.Encode(site.Default(), f)
			if err != nil {
				return err
			}

			path := filepath.Join(runSettings(cmd).Site.Dir, loader.FileName(f))
			if err := fileio.WriteNew(commandContext(cmd), path, data, 0o644, force); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}
	cmd.Flags().Var(format, "format", "file format: js|yaml|json|toml")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
