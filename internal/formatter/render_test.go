package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/docsite/pkg/site"
)

func TestRenderTable(t *testing.T) {
	t.Run("aligned no color", func(t *testing.T) {
		out := RenderTable([]string{"A", "BB"}, [][]string{{"xyz", "1"}, {"q", "22"}}, TableOptions{NoColor: true})
		assert.Equal(t, "A    BB\n───────\nxyz  1\nq    22\n", out)
	})

	t.Run("escapes control characters", func(t *testing.T) {
		out := RenderTable([]string{"K", "V"}, [][]string{{"k", "a\nb\tc"}}, TableOptions{NoColor: true})
		assert.Contains(t, out, `a\nb c`)
	})

	t.Run("truncates last column", func(t *testing.T) {
		out := RenderTable([]string{"K", "V"}, [][]string{{"k", strings.Repeat("x", 40)}}, TableOptions{NoColor: true, MaxWidth: 20})
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasSuffix(lines[2], "..."))
		assert.LessOrEqual(t, len(lines[2]), 20)
	})

	t.Run("wide runes", func(t *testing.T) {
		out := RenderTable([]string{"K", "V"}, [][]string{{"文档", "x"}, {"a", "y"}}, TableOptions{NoColor: true})
		lines := strings.Split(out, "\n")
		assert.Equal(t, "文档  x", lines[2])
		assert.Equal(t, "a     y", lines[3])
	})

	t.Run("color adds styling", func(t *testing.T) {
		plain := RenderTable([]string{"K"}, [][]string{{"v"}}, TableOptions{NoColor: true})
		colored := RenderTable([]string{"K"}, [][]string{{"v"}}, TableOptions{})
		assert.Contains(t, colored, "v")
		assert.GreaterOrEqual(t, len(colored), len(plain))
	})
}

func TestRenderNavTable(t *testing.T) {
	nav := site.Default().ThemeConfig.Nav
	out := RenderNavTable(nav[3:], 3, TableOptions{NoColor: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#  TEXT"))
	assert.Equal(t, "3  Commands     /docs/commands/", lines[2])
	assert.Equal(t, "4  Development  /docs/development", lines[3])
}

func TestRenderNavList(t *testing.T) {
	nav := site.Default().ThemeConfig.Nav[:2]
	tests := []struct {
		style string
		want  string
	}{
		{"", "[0] Introduction -> /docs/\n[1] Installation -> /docs/installation\n"},
		{"numbered", "1. Introduction -> /docs/\n2. Installation -> /docs/installation\n"},
		{"bullet", "• Introduction -> /docs/\n• Installation -> /docs/installation\n"},
		{"none", "Introduction -> /docs/\nInstallation -> /docs/installation\n"},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderNavList(nav, 0, tt.style))
		})
	}
	assert.Equal(t, "[7] Introduction -> /docs/\n", RenderNavList(nav[:1], 7, "index"))
}

func TestValidateArrayStyle(t *testing.T) {
	for _, s := range append([]string{""}, ValidArrayStyles...) {
		assert.NoError(t, ValidateArrayStyle(s), s)
	}
	assert.Error(t, ValidateArrayStyle("roman"))
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(site.Default(), TableOptions{NoColor: true})
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "codex-autotest")
	assert.Contains(t, out, "themeConfig.nav[0]  Introduction -> /docs/")
	assert.Contains(t, out, "themeConfig.nav[4]  Development -> /docs/development")

	empty := RenderSummary(&site.Config{Title: "t", Description: "d"}, TableOptions{NoColor: true})
	assert.Contains(t, empty, "themeConfig.nav  []")
}

func TestRenderTree(t *testing.T) {
	out := RenderTree(site.Default(), TreeOptions{})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 8)
	assert.Equal(t, "codex-autotest", lines[0])
	assert.Contains(t, lines[1], "[description]  CLI tool")
	assert.Contains(t, lines[2], "[5]  nav")
	assert.Contains(t, lines[3], "[0]  Introduction -> /docs/")
	assert.Contains(t, lines[7], "[4]  Development -> /docs/development")

	t.Run("no values", func(t *testing.T) {
		out := RenderTree(site.Default(), TreeOptions{NoValues: true, ArrayStyle: "none"})
		assert.NotContains(t, out, "/docs/")
		assert.Contains(t, out, "Introduction")
		assert.NotContains(t, out, "[0]")
	})

	t.Run("numbered", func(t *testing.T) {
		out := RenderTree(site.Default(), TreeOptions{ArrayStyle: "numbered"})
		assert.Contains(t, out, "[1.]  Introduction")
	})
}

func TestRenderMermaid(t *testing.T) {
	cfg := &site.Config{
		Title: "My \"site\"",
		ThemeConfig: site.ThemeConfig{Nav: []site.NavEntry{
			{Text: "A", Link: "/a"},
			{Text: "B", Link: "/b"},
		}},
	}
	want := strings.Join([]string{
		"graph LR",
		`    site["My 'site'"]`,
		`    n0["A<br/>/a"]`,
		"    site --> n0",
		`    n1["B<br/>/b"]`,
		"    n0 --> n1",
	}, "\n") + "\n"
	assert.Equal(t, want, RenderMermaid(cfg, MermaidOptions{}))

	out := RenderMermaid(cfg, MermaidOptions{Direction: "td", NoValues: true})
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.NotContains(t, out, "/a")

	assert.NoError(t, ValidateMermaidDirection("rl"))
	assert.Error(t, ValidateMermaidDirection("up"))
}
