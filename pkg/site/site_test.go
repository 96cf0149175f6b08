package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "codex-autotest", cfg.Title)
	assert.Equal(t, "CLI tool to generate and review tests using OpenAI Codex", cfg.Description)

	want := []NavEntry{
		{Text: "Introduction", Link: "/docs/"},
		{Text: "Installation", Link: "/docs/installation"},
		{Text: "Configuration", Link: "/docs/configuration"},
		{Text: "Commands", Link: "/docs/commands/"},
		{Text: "Development", Link: "/docs/development"},
	}
	assert.Equal(t, want, cfg.ThemeConfig.Nav)
	require.NoError(t, cfg.Validate())
}

func TestDefaultReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.ThemeConfig.Nav[0].Text = "changed"
	b := Default()
	assert.Equal(t, "Introduction", b.ThemeConfig.Nav[0].Text)
}

func TestCloneIsDeep(t *testing.T) {
	orig := Default()
	cp := orig.Clone()
	require.True(t, orig.Equal(cp))

	cp.ThemeConfig.Nav[1].Link = "/elsewhere"
	assert.Equal(t, "/docs/installation", orig.ThemeConfig.Nav[1].Link)
	assert.False(t, orig.Equal(cp))

	var nilCfg *Config
	assert.Nil(t, nilCfg.Clone())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   bool
	}{
		{name: "identical", mutate: func(*Config) {}, want: true},
		{name: "title", mutate: func(c *Config) { c.Title = "x" }, want: false},
		{name: "description", mutate: func(c *Config) { c.Description = "x" }, want: false},
		{name: "nav order", mutate: func(c *Config) {
			n := c.ThemeConfig.Nav
			n[0], n[1] = n[1], n[0]
		}, want: false},
		{name: "nav length", mutate: func(c *Config) {
			c.ThemeConfig.Nav = c.ThemeConfig.Nav[:4]
		}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := Default()
			tt.mutate(other)
			assert.Equal(t, tt.want, Default().Equal(other))
		})
	}

	t.Run("nil and empty nav", func(t *testing.T) {
		a := &Config{Title: "t", Description: "d"}
		b := &Config{Title: "t", Description: "d", ThemeConfig: ThemeConfig{Nav: []NavEntry{}}}
		assert.True(t, a.Equal(b))
	})

	t.Run("nil receivers", func(t *testing.T) {
		var a, b *Config
		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(Default()))
	})
}

func TestToMapKeepsNavOrder(t *testing.T) {
	m := Default().ToMap()
	assert.Equal(t, "codex-autotest", m["title"])

	theme, ok := m["themeConfig"].(map[string]any)
	require.True(t, ok)
	nav, ok := theme["nav"].([]any)
	require.True(t, ok)
	require.Len(t, nav, 5)

	links := make([]string, 0, len(nav))
	for _, item := range nav {
		entry, ok := item.(map[string]any)
		require.True(t, ok)
		links = append(links, entry["link"].(string))
	}
	assert.Equal(t, []string{"/docs/", "/docs/installation", "/docs/configuration", "/docs/commands/", "/docs/development"}, links)
}

func TestNavEntryIsSection(t *testing.T) {
	assert.True(t, NavEntry{Link: "/docs/"}.IsSection())
	assert.False(t, NavEntry{Link: "/docs/installation"}.IsSection())
}
