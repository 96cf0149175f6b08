package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/docsite/internal/docs"
	"github.com/oakwood-commons/docsite/internal/formatter"
)

type checkResultJSON struct {
	Text   string `json:"text"`
	Link   string `json:"link"`
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	Title  string `json:"title,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func newCheckCmd() *cobra.Command {
	var (
		contentDir  string
		concurrency int
	)
	output := newEnum("table", "table", "json")

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Check that every nav link resolves to a documentation page",
		Long: `Resolve every nav link against the content directory. A link /docs/x is
served by docs/x.md, docs/x.mdx or docs/x/index.md(x); a link ending in "/"
only by the index page. Relative content directories are resolved against
--dir. Exits 1 when any page is missing.`,
		Example: `  docsite check
  docsite check --content site/content -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, _, err := loadSite(cmd, args)
			if err != nil {
				return err
			}

			dir := contentDir
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(runSettings(cmd).Site.Dir, dir)
			}
			checker := &docs.Checker{ContentDir: dir, Concurrency: concurrency}
			report, err := checker.Check(commandContext(cmd), cfg.ThemeConfig.Nav)
			if err != nil {
				return err
			}

			if output.String() == "json" {
				err = writeCheckJSON(cmd, report)
			} else {
				err = writeCheckTable(cmd, report)
			}
			if err != nil {
				return err
			}
			if !report.OK() {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&contentDir, "content", "content", "documentation content directory")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "pages read in parallel (0 = number of CPUs)")
	cmd.Flags().VarP(output, "output", "o", "output format: table|json")
	return cmd
}

func writeCheckTable(cmd *cobra.Command, report *docs.Report) error {
	rows := make([][]string, 0, len(report.Results))
	for i, res := range report.Results {
		page := res.Path
		if page == "" {
			page = res.Reason
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			res.Entry.Text,
			res.Entry.Link,
			string(res.Status),
			page,
			res.Title,
		})
	}
	table := formatter.RenderTable([]string{"#", "TEXT", "LINK", "STATUS", "PAGE", "TITLE"}, rows, tableOptions(cmd))
	if err := writeString(cmd, table); err != nil {
		return err
	}
	missing := len(report.Missing())
	return writeString(cmd, fmt.Sprintf("%d of %d pages found\n", len(report.Results)-missing, len(report.Results)))
}

func writeCheckJSON(cmd *cobra.Command, report *docs.Report) error {
	out := make([]checkResultJSON, 0, len(report.Results))
	for _, res := range report.Results {
		out = append(out, checkResultJSON{
			Text:   res.Entry.Text,
			Link:   res.Entry.Link,
			Status: string(res.Status),
			Path:   res.Path,
			Title:  res.Title,
			Reason: res.Reason,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return writeString(cmd, string(data)+"\n")
}
