package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/oakwood-commons/docsite/internal/watch"
	"github.com/oakwood-commons/docsite/pkg/core"
	"github.com/oakwood-commons/docsite/pkg/site"
)

func newWatchCmd() *cobra.Command {
	var (
		rules    []string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-validate the site configuration whenever it changes",
		Long: `Load and validate the site configuration, then watch it and re-validate
after every change until interrupted. Each reload prints "ok" with the
changes since the last valid configuration, or the problems found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			run := runSettings(cmd)
			path, err := run.SitePath(arg)
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			w := watch.New(path, run.LoaderOptions())
			w.Debounce = debounce
			for _, rule := range rules {
				w.Rules = append(w.Rules, ruleCheck(engine, rule))
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "watching %s\n", path)
			return w.Run(ctx, func(ev watch.Event) {
				stamp := time.Now().Format(time.TimeOnly)
				if ev.Err != nil {
					errs := multierr.Errors(ev.Err)
					fmt.Fprintf(out, "%s %d problem(s)\n", stamp, len(errs))
					for _, e := range errs {
						fmt.Fprintf(out, "  %s\n", e.Error())
					}
					return
				}
				fmt.Fprintf(out, "%s ok\n", stamp)
				for _, c := range ev.Changes {
					fmt.Fprintf(out, "  %s\n", c.String())
				}
			})
		},
	}
	cmd.Flags().StringArrayVar(&rules, "rule", nil, "CEL rule that must hold (repeatable)")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before reloading after a change")
	return cmd
}

func ruleCheck(engine *core.Engine, rule string) watch.Rule {
	return func(cfg *site.Config) error {
		ok, err := engine.Evaluator.EvaluateRule(rule, cfg)
		if err != nil {
			return &core.RuleError{Rule: rule, Err: err}
		}
		if !ok {
			return &core.RuleError{Rule: rule}
		}
		return nil
	}
}
