package loader

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/oakwood-commons/docsite/pkg/site"
)

// FromTree converts a generic tree (maps, slices, scalars) into a Config.
// Keys match the wire field names exactly. Text fields must hold strings; a
// null leaves the field empty. With strict set, unknown keys are rejected.
// Every problem found is reported, not just the first.
func FromTree(tree any, strict bool) (*site.Config, error) {
	root, ok := tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("site config must be an object, got %T", tree)
	}
	d := treeDecoder{strict: strict}
	var cfg site.Config
	d.object("", root, map[string]func(string, any){
		"title":       d.text(&cfg.Title),
		"description": d.text(&cfg.Description),
		"themeConfig": func(path string, v any) {
			d.themeConfig(path, v, &cfg.ThemeConfig)
		},
	})
	if d.err != nil {
		return nil, fmt.Errorf("decode site config: %w", d.err)
	}
	return &cfg, nil
}

type treeDecoder struct {
	strict bool
	err    error
}

func (d *treeDecoder) fail(path, format string, args ...any) {
	d.err = multierr.Append(d.err, fmt.Errorf("%s: "+format, append([]any{path}, args...)...))
}

// object visits the keys of m in sorted order so that reported problems are
// stable.
func (d *treeDecoder) object(path string, m map[string]any, fields map[string]func(string, any)) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p := joinPath(path, k)
		set, ok := fields[k]
		if !ok {
			if d.strict {
				d.fail(p, "unknown field %q", k)
			}
			continue
		}
		set(p, m[k])
	}
}

func (d *treeDecoder) text(dst *string) func(string, any) {
	return func(path string, v any) {
		switch s := v.(type) {
		case nil:
		case string:
			*dst = s
		default:
			d.fail(path, "expected string, got %s", describe(v))
		}
	}
}

func (d *treeDecoder) themeConfig(path string, v any, dst *site.ThemeConfig) {
	switch m := v.(type) {
	case nil:
	case map[string]any:
		d.object(path, m, map[string]func(string, any){
			"nav": func(p string, v any) { d.nav(p, v, &dst.Nav) },
		})
	default:
		d.fail(path, "expected object, got %s", describe(v))
	}
}

func (d *treeDecoder) nav(path string, v any, dst *[]site.NavEntry) {
	if v == nil {
		return
	}
	items, ok := v.([]any)
	if !ok {
		d.fail(path, "expected array, got %s", describe(v))
		return
	}
	nav := make([]site.NavEntry, len(items))
	for i, item := range items {
		p := fmt.Sprintf("%s[%d]", path, i)
		m, ok := item.(map[string]any)
		if !ok {
			d.fail(p, "expected object, got %s", describe(item))
			continue
		}
		d.object(p, m, map[string]func(string, any){
			"text": d.text(&nav[i].Text),
			"link": d.text(&nav[i].Link),
		})
	}
	*dst = nav
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func describe(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32, uint64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
