// Package loader reads a site configuration from disk or memory. It accepts
// the JavaScript module consumed by the documentation generator as well as
// YAML, JSON and TOML renditions of the same record.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/docsite/pkg/site"
)

// Format identifies a serialization of the site configuration.
type Format string

const (
	FormatJS   Format = "js"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats lists the supported serializations in discovery order.
var Formats = []Format{FormatJS, FormatYAML, FormatJSON, FormatTOML}

// DefaultTimeout bounds JavaScript evaluation when Options.Timeout is zero.
const DefaultTimeout = 2 * time.Second

var (
	// ErrNotFound is returned by Discover when no conventional file exists.
	ErrNotFound = errors.New("site config not found")
	// ErrUnsupportedImport is returned for JavaScript configs that import modules.
	ErrUnsupportedImport = errors.New("import statements are not supported in site config")
	// ErrUnknownFormat is returned for paths or names that map to no Format.
	ErrUnknownFormat = errors.New("unknown site config format")
)

// Options tune decoding.
type Options struct {
	// Strict rejects keys that are not part of the site configuration record.
	Strict bool
	// Timeout bounds JavaScript evaluation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// ParseFormat maps a user-supplied name ("yml", "JSON", "mjs", ...) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")) {
	case "js", "mjs", "cjs", "javascript":
		return FormatJS, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath derives the Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

var (
	jsModulePattern    = regexp.MustCompile(`(?m)^(export\s+default\b|module\.exports\s*=)`)
	tomlSectionPattern = regexp.MustCompile(`^\[{1,2}[A-Za-z_][A-Za-z0-9_.\-"]*\]{1,2}\s*$`)
	tomlKeyPattern     = regexp.MustCompile(`^\s*[A-Za-z_][A-Za-z0-9_.\-]*\s*=\s*.+$`)
)

// DetectFormat guesses the Format of in-memory data. JavaScript modules are
// recognised by an export statement at the start of a line, JSON by a leading
// brace, TOML by unindented section headers or a majority of key = value
// lines; anything else is YAML. Indented lines never mark a module or a
// section, so YAML block scalars cannot be mistaken for either.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if jsModulePattern.Match(trimmed) {
		return FormatJS
	}
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return FormatJSON
	}
	if isLikelyTOML(string(trimmed)) {
		return FormatTOML
	}
	return FormatYAML
}

// isLikelyTOML reports whether input has TOML section headers or mostly
// key = value lines.
func isLikelyTOML(input string) bool {
	keyValueCount := 0
	nonEmptyCount := 0
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			return true
		}
		if tomlKeyPattern.MatchString(line) {
			keyValueCount++
		}
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}

// Load reads and decodes the site configuration at path. The format is taken
// from the file extension, falling back to content detection.
func Load(ctx context.Context, path string, opts Options) (*site.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		format = DetectFormat(data)
	}
	cfg, err := decode(ctx, filepath.Base(path), data, format, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// LoadBytes decodes data in the given format. An empty format triggers
// content detection.
func LoadBytes(ctx context.Context, data []byte, format Format, opts Options) (*site.Config, error) {
	if format == "" {
		format = DetectFormat(data)
	}
	return decode(ctx, "<input>", data, format, opts)
}

// LoadReader is LoadBytes over an io.Reader.
func LoadReader(ctx context.Context, r io.Reader, format Format, opts Options) (*site.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadBytes(ctx, data, format, opts)
}

func decode(ctx context.Context, name string, data []byte, format Format, opts Options) (*site.Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	var (
		tree any
		err  error
	)
	switch format {
	case FormatJS:
		tree, err = evalJS(ctx, name, string(data), opts.timeout())
	case FormatYAML:
		return decodeYAML(data, opts.Strict)
	case FormatJSON:
		if err = json.Unmarshal(data, &tree); err != nil {
			err = fmt.Errorf("invalid JSON: %w", err)
		}
	case FormatTOML:
		if err = toml.Unmarshal(data, &tree); err != nil {
			err = fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return FromTree(tree, opts.Strict)
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// decodeYAML accepts exactly one YAML document holding a mapping and decodes
// it straight into a Config. Scalars keep their source text, so an unquoted
// date or number in a text field loads as written.
func decodeYAML(data []byte, strict bool) (*site.Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return nil, fmt.Errorf("invalid YAML: expected a single document")
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		got := "null"
		if len(doc.Content) > 0 {
			got = doc.Content[0].ShortTag()
		}
		return nil, fmt.Errorf("site config must be an object, got %s", got)
	}

	dec = yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	var cfg site.Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode site config: %w", err)
	}
	return &cfg, nil
}
