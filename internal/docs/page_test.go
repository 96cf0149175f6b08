package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFrontMatter(t *testing.T) {
	meta, body, ok := SplitFrontMatter([]byte("---\ntitle: X\n---\n# Body\n"))
	assert.True(t, ok)
	assert.Equal(t, "title: X\n", string(meta))
	assert.Equal(t, "# Body\n", string(body))

	_, body, ok = SplitFrontMatter([]byte("# No front matter\n"))
	assert.False(t, ok)
	assert.Equal(t, "# No front matter\n", string(body))

	_, _, ok = SplitFrontMatter([]byte("---\ntitle: unterminated\n"))
	assert.False(t, ok)

	meta, body, ok = SplitFrontMatter([]byte("---\r\ntitle: crlf\r\n---\r\n"))
	assert.True(t, ok)
	assert.Equal(t, "title: crlf\r\n", string(meta))
	assert.Empty(t, body)
}

func TestPageTitle(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{"front matter wins", "---\ntitle: From Meta\n---\n# From Heading\n", "From Meta"},
		{"blank front matter title", "---\ntitle: \"\"\n---\n# From Heading\n", "From Heading"},
		{"invalid front matter", "---\ntitle: [\n---\n# Heading\n", "Heading"},
		{"first h1", "intro\n\n## Sub\n\n# Main\n\n# Second\n", "Main"},
		{"inline markup", "# Use `codex` *now*\n", "Use codex now"},
		{"setext heading", "Setext Title\n============\n", "Setext Title"},
		{"no heading", "just text\n", ""},
		{"byte order mark", "\ufeff---\ntitle: BOM\n---\n", "BOM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PageTitle([]byte(tt.page)))
		})
	}
}
