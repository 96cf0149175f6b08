package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/docsite/pkg/loader"
	"github.com/oakwood-commons/docsite/pkg/site"
)

// EncodeOptions control serialization.
type EncodeOptions struct {
	// Indent is the indentation width for YAML and JSON (default 2).
	Indent int
}

func (o EncodeOptions) indent() int {
	if o.Indent <= 0 {
		return 2
	}
	return o.Indent
}

// Encode serializes cfg in the given format. Every format keeps the nav in
// display order and decodes back to an equal record. An absent nav is
// written as an empty list so consumers always see an array.
func Encode(cfg *site.Config, format loader.Format, opts EncodeOptions) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("encode: nil site config")
	}
	cfg = cfg.Clone()
	if cfg.ThemeConfig.Nav == nil {
		cfg.ThemeConfig.Nav = []site.NavEntry{}
	}

	switch format {
	case loader.FormatYAML:
		out, err := FormatYAML(cfg, YAMLFormatOptions{Indent: opts.indent(), LiteralBlockStrings: true})
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return []byte(out), nil
	case loader.FormatJSON:
		data, err := json.MarshalIndent(cfg, "", strings.Repeat(" ", opts.indent()))
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case loader.FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(false)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case loader.FormatJS:
		return []byte(FormatJS(cfg)), nil
	default:
		return nil, fmt.Errorf("%w: %q", loader.ErrUnknownFormat, format)
	}
}

// YAMLFormatOptions control YAML rendering.
type YAMLFormatOptions struct {
	Indent int
	// LiteralBlockStrings emits multi-line strings as literal blocks ("|")
	// where the block reads back unchanged. Other multi-line strings, and all
	// of them when unset, are double-quoted with escapes.
	LiteralBlockStrings bool
}

// FormatYAML renders any value to YAML. Every string reads back exactly as
// written.
func FormatYAML(v any, opts YAMLFormatOptions) (string, error) {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", err
	}
	setStringStyles(&node, opts.LiteralBlockStrings)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// setStringStyles picks the style of every string scalar holding a line
// break or control character. yaml.v3 would otherwise emit a literal block
// for any string containing a newline, which drops leading indentation and
// leading blank lines.
func setStringStyles(n *yaml.Node, literal bool) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!str" && hasControl(n.Value) {
		if literal && literalSafe(n.Value) {
			n.Style = yaml.LiteralStyle
		} else {
			n.Style = yaml.DoubleQuotedStyle
		}
	}
	for _, c := range n.Content {
		setStringStyles(c, literal)
	}
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f || r == '\u0085' || r == '\u2028' || r == '\u2029' {
			return true
		}
	}
	return false
}

// literalSafe reports whether s survives a literal block unchanged. Line
// breaks must be plain newlines with no blank at either end of a line, and
// the text must not start with a newline or end with more than one.
func literalSafe(s string) bool {
	if !strings.Contains(s, "\n") || strings.HasPrefix(s, "\n") || strings.HasSuffix(s, "\n\n") {
		return false
	}
	for _, r := range s {
		if r != '\n' && (r < 0x20 || r == 0x7f || r == '\u0085' || r == '\u2028' || r == '\u2029' || r == '\ufeff') {
			return false
		}
	}
	for _, line := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		if line != "" && (line[0] == ' ' || line[len(line)-1] == ' ') {
			return false
		}
	}
	return true
}
