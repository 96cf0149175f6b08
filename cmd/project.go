package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/docsite/internal/formatter"
	"github.com/oakwood-commons/docsite/internal/project"
)

func newProjectCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage the codex-autotest project file",
		Long: `Work with .codex-autotest.yaml, the project file holding the source path,
language, test framework and prompt templates. CODEX_AUTOTEST_SRC_PATH,
CODEX_AUTOTEST_LANGUAGE and CODEX_AUTOTEST_FRAMEWORK, from the environment or
a .env file next to the project file, override the file's values.`,
	}
	cmd.PersistentFlags().StringVar(&path, "path", project.DefaultFileName, "project file path")

	cmd.AddCommand(
		newProjectInitCmd(&path),
		newProjectShowCmd(&path),
		newProjectPromptsCmd(&path),
		newProjectPromptCmd(&path),
	)
	return cmd
}

func newProjectInitCmd(path *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default project file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := project.WriteDefault(commandContext(cmd), *path, force); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", *path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newProjectShowCmd(path *string) *cobra.Command {
	output := newEnum("yaml", "yaml", "json").withAliases(formatAliases)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective project configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := project.Load(commandContext(cmd), *path)
			if err != nil {
				return err
			}
			if output.String() == "json" {
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return err
				}
				return writeString(cmd, string(data)+"\n")
			}
			out, err := formatter.FormatYAML(cfg, formatter.YAMLFormatOptions{LiteralBlockStrings: true})
			if err != nil {
				return err
			}
			return writeString(cmd, out)
		},
	}
	cmd.Flags().VarP(output, "output", "o", "output format: yaml|json")
	return cmd
}

func newProjectPromptsCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "prompts",
		Short: "List the configured prompt templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := project.Load(commandContext(cmd), *path)
			if err != nil {
				return err
			}
			names := cfg.PromptNames()
			if len(names) == 0 {
				return nil
			}
			return writeString(cmd, strings.Join(names, "\n")+"\n")
		},
	}
}

func newProjectPromptCmd(path *string) *cobra.Command {
	var (
		vars     []string
		varFiles []string
		raw      bool
	)
	cmd := &cobra.Command{
		Use:   "prompt NAME",
		Short: "Render a prompt template",
		Long: `Render the named prompt template. language and framework come from the
project configuration; --var sets other placeholders and --var-file reads a
placeholder's value from a file.`,
		Example: `  docsite project prompt unit_test --var-file code=src/app.py
  docsite project prompt kill_mutant --var-file diff=mutant.diff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.Load(commandContext(cmd), *path)
			if err != nil {
				return err
			}
			if raw {
				tpl, err := cfg.Prompt(args[0])
				if err != nil {
					return err
				}
				return writeString(cmd, tpl+"\n")
			}

			values, err := parseVars(vars, varFiles)
			if err != nil {
				return err
			}
			out, err := cfg.RenderPrompt(args[0], values)
			if err != nil {
				return err
			}
			return writeString(cmd, out+"\n")
		},
	}
	cmd.Flags().StringArrayVar(&vars, "var", nil, "template variable as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&varFiles, "var-file", nil, "template variable as key=path, read from the file (repeatable)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the template without substitution")
	return cmd
}

// parseVars merges key=value pairs and key=path file references. A later
// definition of a key wins.
func parseVars(pairs, filePairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs)+len(filePairs))
	for _, p := range pairs {
		k, v, err := splitVar(p)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	for _, p := range filePairs {
		k, file, err := splitVar(p)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("--var-file %s: %w", k, err)
		}
		out[k] = string(data)
	}
	return out, nil
}

func splitVar(s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", fmt.Errorf("invalid variable %q, expected key=value", s)
	}
	return k, v, nil
}
