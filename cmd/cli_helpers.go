package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/oakwood-commons/docsite/internal/formatter"
	"github.com/oakwood-commons/docsite/pkg/core"
	"github.com/oakwood-commons/docsite/pkg/settings"
	"github.com/oakwood-commons/docsite/pkg/site"
)

// enumValue is a pflag.Value restricted to a fixed set of choices, so bad
// values fail while flags are parsed.
type enumValue struct {
	value   string
	allowed []string
	aliases map[string]string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnum(def string, allowed ...string) *enumValue {
	return &enumValue{value: def, allowed: allowed}
}

// withAliases maps alternative spellings onto allowed values.
func (e *enumValue) withAliases(aliases map[string]string) *enumValue {
	e.aliases = aliases
	return e
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := e.aliases[s]; ok {
		s = canonical
	}
	if !slices.Contains(e.allowed, s) {
		return fmt.Errorf("must be one of %s", strings.Join(e.allowed, "|"))
	}
	e.value = s
	return nil
}

func (e *enumValue) Type() string { return "string" }

var formatAliases = map[string]string{
	"yml":        "yaml",
	"mjs":        "js",
	"cjs":        "js",
	"javascript": "js",
}

// runSettings returns the per-run settings stored by the root command.
func runSettings(cmd *cobra.Command) *settings.Run {
	if run, ok := settings.FromContext(commandContext(cmd)); ok {
		return run
	}
	return settings.NewCliParams()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newEngine(cmd *cobra.Command) (*core.Engine, error) {
	return core.New(core.WithLoaderOptions(runSettings(cmd).LoaderOptions()))
}

// loadSite resolves and loads the site config: the optional positional
// argument, then --file, then discovery in --dir.
func loadSite(cmd *cobra.Command, args []string) (*core.Engine, *site.Config, string, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	path, err := runSettings(cmd).SitePath(arg)
	if err != nil {
		return nil, nil, "", err
	}

	engine, err := newEngine(cmd)
	if err != nil {
		return nil, nil, "", err
	}
	cfg, err := engine.Load(commandContext(cmd), path)
	if err != nil {
		return nil, nil, path, err
	}
	return engine, cfg, path, nil
}

// colorEnabled reports whether styled output should be written to w.
func colorEnabled(cmd *cobra.Command, w io.Writer) bool {
	if runSettings(cmd).NoColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func tableOptions(cmd *cobra.Command) formatter.TableOptions {
	out := cmd.OutOrStdout()
	return formatter.TableOptions{
		NoColor:  !colorEnabled(cmd, out),
		MaxWidth: terminalWidth(out),
	}
}

func writeString(cmd *cobra.Command, s string) error {
	_, err := io.WriteString(cmd.OutOrStdout(), s)
	return err
}
