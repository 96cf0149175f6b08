// Package core is the library entry point: load a site configuration,
// validate it (optionally against CEL rules), query it and serialize it.
package core

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/oakwood-commons/docsite/internal/cel"
	"github.com/oakwood-commons/docsite/internal/formatter"
	"github.com/oakwood-commons/docsite/pkg/loader"
	"github.com/oakwood-commons/docsite/pkg/logger"
	"github.com/oakwood-commons/docsite/pkg/site"
)

// Evaluator evaluates expressions against a site configuration.
type Evaluator interface {
	Evaluate(expr string, cfg *site.Config) (any, error)
	EvaluateRule(expr string, cfg *site.Config) (bool, error)
}

// Encoder serializes a site configuration.
type Encoder interface {
	Encode(cfg *site.Config, format loader.Format) ([]byte, error)
}

// Engine provides a minimal shared API for loading, checking and rendering
// site configurations.
type Engine struct {
	Evaluator Evaluator
	Encoder   Encoder
	Options   loader.Options
}

// Option configures the Engine.
type Option func(*Engine)

// WithEvaluator sets a custom evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(c *Engine) {
		c.Evaluator = e
	}
}

// WithEncoder sets a custom encoder.
func WithEncoder(enc Encoder) Option {
	return func(c *Engine) {
		c.Encoder = enc
	}
}

// WithLoaderOptions sets strict decoding and the JS evaluation timeout.
func WithLoaderOptions(opts loader.Options) Option {
	return func(c *Engine) {
		c.Options = opts
	}
}

// New creates an Engine with defaults.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.Evaluator == nil {
		eval, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		engine.Evaluator = eval
	}
	if engine.Encoder == nil {
		engine.Encoder = defaultEncoder{}
	}
	return engine, nil
}

// Load reads and decodes the configuration file at path.
func (e *Engine) Load(ctx context.Context, path string) (*site.Config, error) {
	cfg, err := loader.Load(ctx, path, e.Options)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).V(1).Info("loaded site config", logger.FileKey, path, "nav_entries", len(cfg.ThemeConfig.Nav))
	return cfg, nil
}

// LoadBytes decodes data; an empty format is detected from the content.
func (e *Engine) LoadBytes(ctx context.Context, data []byte, format loader.Format) (*site.Config, error) {
	return loader.LoadBytes(ctx, data, format, e.Options)
}

// RuleError reports a custom rule that did not hold.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rule %q: %v", e.Rule, e.Err)
	}
	return fmt.Sprintf("rule %q is false", e.Rule)
}

func (e *RuleError) Unwrap() error { return e.Err }

// Validate runs the built-in field checks followed by every rule. All
// failures are returned together; use site.FieldErrors and multierr.Errors
// to take them apart.
func (e *Engine) Validate(cfg *site.Config, rules ...string) error {
	err := cfg.Validate()
	if cfg == nil {
		return err
	}
	for _, rule := range rules {
		ok, evalErr := e.Evaluator.EvaluateRule(rule, cfg)
		switch {
		case evalErr != nil:
			err = multierr.Append(err, &RuleError{Rule: rule, Err: evalErr})
		case !ok:
			err = multierr.Append(err, &RuleError{Rule: rule})
		}
	}
	return err
}

// Evaluate runs expr against cfg.
func (e *Engine) Evaluate(expr string, cfg *site.Config) (any, error) {
	if e == nil || e.Evaluator == nil {
		return nil, fmt.Errorf("evaluator is not configured")
	}
	return e.Evaluator.Evaluate(expr, cfg)
}

// Encode serializes cfg in format.
func (e *Engine) Encode(cfg *site.Config, format loader.Format) ([]byte, error) {
	e.ensureEncoder()
	return e.Encoder.Encode(cfg, format)
}

type defaultEncoder struct{}

func (defaultEncoder) Encode(cfg *site.Config, format loader.Format) ([]byte, error) {
	return formatter.Encode(cfg, format, formatter.EncodeOptions{})
}

func (e *Engine) ensureEncoder() {
	if e.Encoder == nil {
		e.Encoder = defaultEncoder{}
	}
}
