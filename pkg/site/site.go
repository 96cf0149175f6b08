// Package site defines the documentation-site configuration record: a title,
// a description and the ordered navigation bar rendered by the site generator.
package site

import "strings"

// NavEntry is one item of the navigation bar.
type NavEntry struct {
	Text string `json:"text" yaml:"text" toml:"text"`
	Link string `json:"link" yaml:"link" toml:"link"`
}

// ThemeConfig holds theme-level settings. Only the navigation bar is modeled.
type ThemeConfig struct {
	Nav []NavEntry `json:"nav" yaml:"nav" toml:"nav"`
}

// Config is the site configuration consumed by the documentation generator.
// The order of ThemeConfig.Nav is display order and is preserved by every
// loader and encoder in this module.
type Config struct {
	Title       string      `json:"title" yaml:"title" toml:"title"`
	Description string      `json:"description" yaml:"description" toml:"description"`
	ThemeConfig ThemeConfig `json:"themeConfig" yaml:"themeConfig" toml:"themeConfig"`
}

// Default returns the codex-autotest documentation site configuration.
// Each call returns a fresh copy.
func Default() *Config {
	return &Config{
		Title:       "codex-autotest",
		Description: "CLI tool to generate and review tests using OpenAI Codex",
		ThemeConfig: ThemeConfig{
			Nav: []NavEntry{
				{Text: "Introduction", Link: "/docs/"},
				{Text: "Installation", Link: "/docs/installation"},
				{Text: "Configuration", Link: "/docs/configuration"},
				{Text: "Commands", Link: "/docs/commands/"},
				{Text: "Development", Link: "/docs/development"},
			},
		},
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	if c.ThemeConfig.Nav != nil {
		out.ThemeConfig.Nav = append([]NavEntry(nil), c.ThemeConfig.Nav...)
	}
	return &out
}

// Equal reports whether c and other hold the same values, nav order included.
// A nil nav and an empty nav compare equal.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Title != other.Title || c.Description != other.Description {
		return false
	}
	if len(c.ThemeConfig.Nav) != len(other.ThemeConfig.Nav) {
		return false
	}
	for i, e := range c.ThemeConfig.Nav {
		if e != other.ThemeConfig.Nav[i] {
			return false
		}
	}
	return true
}

// ToMap converts the record into a generic tree of maps and slices using the
// wire field names. Nav entries keep their order.
func (c *Config) ToMap() map[string]any {
	nav := make([]any, 0, len(c.ThemeConfig.Nav))
	for _, e := range c.ThemeConfig.Nav {
		nav = append(nav, map[string]any{
			"text": e.Text,
			"link": e.Link,
		})
	}
	return map[string]any{
		"title":       c.Title,
		"description": c.Description,
		"themeConfig": map[string]any{
			"nav": nav,
		},
	}
}

// IsSection reports whether the entry links to a section index (trailing slash).
func (e NavEntry) IsSection() bool {
	return strings.HasSuffix(e.Link, "/")
}
