package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/docsite/pkg/site"
)

func writePage(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestCandidates(t *testing.T) {
	c := &Checker{}

	tests := []struct {
		link    string
		want    []string
		wantErr bool
	}{
		{link: "/docs/", want: []string{"docs/index.md", "docs/index.mdx"}},
		{link: "/docs/installation", want: []string{
			"docs/installation.md", "docs/installation.mdx",
			"docs/installation/index.md", "docs/installation/index.mdx",
		}},
		{link: "/docs/x#section", want: []string{"docs/x.md", "docs/x.mdx", "docs/x/index.md", "docs/x/index.mdx"}},
		{link: "/", want: []string{"index.md", "index.mdx"}},
		{link: "/docs/commands/#usage", want: []string{"docs/commands/index.md", "docs/commands/index.mdx"}},
		{link: "/docs/commands/?tab=cli", want: []string{"docs/commands/index.md", "docs/commands/index.mdx"}},
		{link: "docs/relative", wantErr: true},
		{link: "/docs/../../etc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			got, err := c.Candidates(tt.link)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, toSlash(got))
		})
	}
}

func TestCheckDefaultNav(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "docs/index.md", "# Introduction\n\nWelcome.\n")
	writePage(t, root, "docs/installation.mdx", "---\ntitle: Install codex-autotest\n---\n\n# Ignored\n")
	writePage(t, root, "docs/configuration/index.md", "Intro text\n\n# Configuration *guide*\n")
	writePage(t, root, "docs/commands/index.md", "## Only a subheading\n")
	// /docs/development is missing; a directory without an index does not count.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs", "development"), 0o755))

	c := &Checker{ContentDir: root, Concurrency: 2}
	report, err := c.Check(context.Background(), site.Default().ThemeConfig.Nav)
	require.NoError(t, err)
	require.Len(t, report.Results, 5)

	assert.False(t, report.OK())

	want := []struct {
		status Status
		path   string
		title  string
	}{
		{StatusOK, "docs/index.md", "Introduction"},
		{StatusOK, "docs/installation.mdx", "Install codex-autotest"},
		{StatusOK, "docs/configuration/index.md", "Configuration guide"},
		{StatusOK, "docs/commands/index.md", ""},
		{StatusMissing, "", ""},
	}
	for i, w := range want {
		res := report.Results[i]
		assert.Equal(t, site.Default().ThemeConfig.Nav[i], res.Entry, "entry %d keeps nav order", i)
		assert.Equal(t, w.status, res.Status, res.Entry.Link)
		assert.Equal(t, w.path, res.Path, res.Entry.Link)
		assert.Equal(t, w.title, res.Title, res.Entry.Link)
	}

	missing := report.Missing()
	require.Len(t, missing, 1)
	assert.Equal(t, "/docs/development", missing[0].Entry.Link)
	assert.Contains(t, missing[0].Reason, "docs/development.md")
}

func TestCheckAllPresent(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "docs/index.md", "# Home\n")
	writePage(t, root, "docs/a.md", "# A\n")

	c := &Checker{ContentDir: root}
	report, err := c.Check(context.Background(), []site.NavEntry{
		{Text: "Home", Link: "/docs/"},
		{Text: "A", Link: "/docs/a"},
	})
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Empty(t, report.Missing())
}

func TestCheckTrailingSlashNeedsIndex(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "docs/commands.md", "# Commands\n")

	c := &Checker{ContentDir: root}
	report, err := c.Check(context.Background(), []site.NavEntry{{Text: "Commands", Link: "/docs/commands/"}})
	require.NoError(t, err)
	assert.False(t, report.OK())
}

func TestCheckInvalidLinkIsMissing(t *testing.T) {
	c := &Checker{ContentDir: t.TempDir()}
	report, err := c.Check(context.Background(), []site.NavEntry{{Text: "Bad", Link: "docs"}})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusMissing, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Reason, "not site-relative")
}

func TestCheckContentDirErrors(t *testing.T) {
	c := &Checker{ContentDir: filepath.Join(t.TempDir(), "nope")}
	_, err := c.Check(context.Background(), nil)
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	c = &Checker{ContentDir: file}
	_, err = c.Check(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestCheckCancelled(t *testing.T) {
	root := t.TempDir()
	writePage(t, root, "docs/index.md", "# Home\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &Checker{ContentDir: root}
	_, err := c.Check(ctx, []site.NavEntry{{Text: "Home", Link: "/docs/"}})
	require.ErrorIs(t, err, context.Canceled)
}
