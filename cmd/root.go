package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/docsite/pkg/loader"
	"github.com/oakwood-commons/docsite/pkg/logger"
	"github.com/oakwood-commons/docsite/pkg/settings"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	file    string
	dir     string
	debug   bool
	noColor bool
	strict  bool
	timeout time.Duration
}

// ExitError carries a process exit code. A nil Err means the command already
// reported the problem and nothing more should be printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// Silent reports whether err has already been shown to the user.
func Silent(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Err == nil
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, go %s)",
		settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, runtime.Version())
}

// NewRootCmd builds the docsite command tree.
func NewRootCmd() *cobra.Command {
	gf := &globalFlags{}
	show := &showOptions{}

	rootCmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [file]",
		Short: "Inspect, validate and convert fumadocs site configurations",
		Long: `docsite reads the site configuration of a fumadocs documentation site
(fumadocs.config.js, .yaml, .json or .toml), checks it and renders it.

Without a file argument the configuration is discovered in --dir.`,
		Example: `  docsite
  docsite show -o tree
  docsite validate --rule "_.themeConfig.nav.all(e, e.link.startsWith('/docs/'))"
  docsite convert --to yaml --out fumadocs.config.yaml
  docsite query -e "_.themeConfig.nav.map(e, e.link)"`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       cliVersionString(),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
			var level int8
			if gf.debug {
				level = -1
			}
			lgr := logger.Get(level)
			lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

			run := settings.NewCliParams()
			run.MinLogLevel = level
			run.Site = settings.SiteSettings{Path: gf.file, Dir: gf.dir}
			run.Strict = gf.strict
			run.Timeout = gf.timeout
			run.NoColor = gf.noColor

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = logger.WithLogger(ctx, lgr)
			ctx = settings.IntoContext(ctx, run)
			cmd.SetContext(ctx)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args, show)
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&gf.file, "file", "f", "", "site config file (default: discover fumadocs.config.* in --dir)")
	pf.StringVar(&gf.dir, "dir", ".", "directory searched for the site config")
	pf.BoolVar(&gf.debug, "debug", false, "enable debug logging on stderr")
	pf.BoolVar(&gf.noColor, "no-color", false, "disable color output")
	pf.BoolVar(&gf.strict, "strict", false, "reject unknown keys in the site config")
	pf.DurationVar(&gf.timeout, "timeout", loader.DefaultTimeout, "maximum time to evaluate a JavaScript config")

	addShowFlags(rootCmd, show)

	rootCmd.AddCommand(
		newShowCmd(),
		newValidateCmd(),
		newNavCmd(),
		newConvertCmd(),
		newInitCmd(),
		newQueryCmd(),
		newCheckCmd(),
		newDiffCmd(),
		newWatchCmd(),
		newProjectCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the CLI with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print docsite version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
			return err
		},
	}
}
