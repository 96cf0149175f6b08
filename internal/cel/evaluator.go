// Package cel evaluates CEL expressions against a site configuration. The
// record is bound to the variable "_" using its wire field names, so
// `_.themeConfig.nav.map(e, e.link)` lists every link.
package cel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/decls"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/docsite/pkg/site"
)

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates a new CEL evaluator with standard library functions.
func NewEvaluator() (*Evaluator, error) {
	env, err := newStandardCELEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Environment returns the CEL environment for introspection.
func (e *Evaluator) Environment() *cel.Env {
	return e.env
}

func newStandardCELEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 5+len(opts))
	allOpts = append(allOpts,
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

func (e *Evaluator) eval(expr string, cfg *site.Config) (ref.Val, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("empty expression")
	}
	if cfg == nil {
		return nil, fmt.Errorf("nil site config")
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}

	result, _, err := prg.Eval(map[string]any{
		"_": cfg.ToMap(),
	})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}
	return result, nil
}

// Evaluate evaluates expr against cfg and returns the result as plain Go
// values (string, int64, float64, bool, []any, map[string]any).
// Example: "_.themeConfig.nav.filter(e, e.link.endsWith('/'))".
func (e *Evaluator) Evaluate(expr string, cfg *site.Config) (any, error) {
	result, err := e.eval(expr, cfg)
	if err != nil {
		return nil, err
	}

	converted := ToGo(result)
	if refVal, ok := converted.(ref.Val); ok {
		converted = refVal.Value()
	}
	return converted, nil
}

// EvaluateRule evaluates a boolean rule against cfg. A rule that does not
// produce a boolean is an error.
func (e *Evaluator) EvaluateRule(expr string, cfg *site.Config) (bool, error) {
	result, err := e.eval(expr, cfg)
	if err != nil {
		return false, err
	}
	b, ok := result.(types.Bool)
	if !ok {
		return false, fmt.Errorf("rule %q returned %s, want bool", expr, result.Type().TypeName())
	}
	return bool(b), nil
}

// ToGo converts CEL types to Go native types recursively.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	}

	inner := val.Value()
	switch v := inner.(type) {
	case []ref.Val:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = ToGo(elem)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = convertValue(elem)
		}
		return out
	case map[string]any:
		return convertMapValues(v)
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[fmt.Sprintf("%v", k.Value())] = ToGo(elem)
		}
		return out
	}
	return inner
}

func convertValue(v any) any {
	switch x := v.(type) {
	case ref.Val:
		return ToGo(x)
	case map[string]any:
		return convertMapValues(x)
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = convertValue(elem)
		}
		return out
	}
	return v
}

func convertMapValues(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = convertValue(v)
	}
	return out
}

// isOperator filters out internal operator-style declarations.
func isOperator(name string) bool {
	if strings.HasPrefix(name, "@") {
		return true
	}
	if strings.HasPrefix(name, "_") && strings.HasSuffix(name, "_") {
		return true
	}
	switch name {
	case "!_", "-_", "_[_]":
		return true
	}
	return false
}

func typeLabel(t *types.Type) string {
	if t == nil {
		return "any"
	}
	if name := t.DeclaredTypeName(); name != "" {
		return name
	}
	if name := t.TypeName(); name != "" {
		return name
	}
	return "any"
}

func formatParams(params []*types.Type) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = typeLabel(p)
	}
	return strings.Join(parts, ", ")
}

func appendResult(call string, result *types.Type) string {
	if result == nil {
		return call
	}
	return call + " -> " + typeLabel(result)
}

// usageFromOverload builds a human-readable usage string from a function overload.
func usageFromOverload(name string, o *decls.OverloadDecl) string {
	params := o.ArgTypes()
	if len(params) == 0 {
		return appendResult(name+"()", o.ResultType())
	}
	if o.IsMemberFunction() {
		recv := typeLabel(params[0])
		return appendResult(recv+"."+name+"("+formatParams(params[1:])+")", o.ResultType())
	}
	return appendResult(name+"("+formatParams(params)+")", o.ResultType())
}

// Functions lists the functions and macros available to expressions, one
// "name() - usage" entry per overload, sorted.
func (e *Evaluator) Functions() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, 128)

	for _, fn := range e.env.Functions() {
		if isOperator(fn.Name()) {
			continue
		}
		for _, o := range fn.OverloadDecls() {
			entry := fn.Name() + "() - " + usageFromOverload(fn.Name(), o)
			if seen[entry] {
				continue
			}
			seen[entry] = true
			out = append(out, entry)
		}
	}

	for _, m := range e.env.Macros() {
		name := m.Function()
		if isOperator(name) {
			continue
		}
		entry := name + "() - macro"
		if seen[entry] {
			continue
		}
		seen[entry] = true
		out = append(out, entry)
	}

	sort.Strings(out)
	return out
}
