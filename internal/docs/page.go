package docs

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"
)

var frontMatterDelim = []byte("---")

type frontMatter struct {
	Title string `yaml:"title"`
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// page body. ok is false when the page has no front matter.
func SplitFrontMatter(data []byte) (meta, body []byte, ok bool) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	first, rest, found := bytes.Cut(data, []byte("\n"))
	if !found || !bytes.Equal(bytes.TrimRight(first, " \r"), frontMatterDelim) {
		return nil, data, false
	}

	offset := 0
	for offset <= len(rest) {
		line, next, more := bytes.Cut(rest[offset:], []byte("\n"))
		if bytes.Equal(bytes.TrimRight(line, " \r"), frontMatterDelim) {
			meta = rest[:offset]
			if more {
				body = next
			}
			return meta, body, true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return nil, data, false
}

// PageTitle returns the title declared in front matter, falling back to the
// text of the first level-1 heading. It returns "" when neither exists.
func PageTitle(data []byte) string {
	meta, body, ok := SplitFrontMatter(data)
	if ok {
		var fm frontMatter
		if err := yaml.Unmarshal(meta, &fm); err == nil && strings.TrimSpace(fm.Title) != "" {
			return strings.TrimSpace(fm.Title)
		}
	}
	return firstHeading(body)
}

func firstHeading(body []byte) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := markdown.Parse(body, p)

	var title string
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		h, ok := node.(*ast.Heading)
		if !ok || !entering || h.Level != 1 {
			return ast.GoToNext
		}
		title = strings.TrimSpace(headingText(h))
		return ast.Terminate
	})
	return title
}

func headingText(h *ast.Heading) string {
	var b strings.Builder
	ast.WalkFunc(h, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if leaf := node.AsLeaf(); leaf != nil {
			b.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return b.String()
}
