// Package project reads and writes the codex-autotest project file
// (.codex-autotest.yaml) documented by the site: source path, language,
// test framework and the prompt templates used by each command.
package project

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/docsite/internal/fileio"
	"github.com/oakwood-commons/docsite/pkg/logger"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// DefaultFileName is the conventional project file name.
const DefaultFileName = ".codex-autotest.yaml"

// Environment variables that override values from the file.
const (
	EnvSrcPath   = "CODEX_AUTOTEST_SRC_PATH"
	EnvLanguage  = "CODEX_AUTOTEST_LANGUAGE"
	EnvFramework = "CODEX_AUTOTEST_FRAMEWORK"
)

// PromptNames lists the built-in prompt templates in documentation order.
var PromptNames = []string{
	"unit_test",
	"kill_mutant",
	"commit",
	"refactor",
	"audit_security",
	"docstring",
	"explain",
}

var (
	// ErrExists is returned by WriteDefault when the file exists.
	ErrExists = fileio.ErrExists
	// ErrNotFound is returned by Load when the file does not exist.
	ErrNotFound = errors.New("project config not found")
	// ErrUnknownPrompt is returned for a prompt name with no template.
	ErrUnknownPrompt = errors.New("unknown prompt")
)

// Config is the project file.
type Config struct {
	SrcPath   string            `yaml:"src_path" json:"src_path"`
	Language  string            `yaml:"language" json:"language"`
	Framework string            `yaml:"framework" json:"framework"`
	Prompts   map[string]string `yaml:"prompts" json:"prompts"`
}

// Default returns a fresh copy of the built-in project configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("project: invalid embedded defaults: %v", err))
	}
	return &cfg
}

// DefaultYAML returns the document written by WriteDefault.
func DefaultYAML() []byte {
	return bytes.Clone(defaultsYAML)
}

// WriteDefault writes the default project file to path. It refuses to
// replace an existing file unless force is set.
func WriteDefault(ctx context.Context, path string, force bool) error {
	if err := fileio.WriteNew(ctx, path, defaultsYAML, 0o644, force); err != nil {
		return err
	}
	logger.FromContext(ctx).V(1).Info("wrote project config", logger.FileKey, path)
	return nil
}

// Load reads the project file at path. Values are overridden, in order of
// precedence, by process environment variables and by a .env file next to
// the project file. Fields and prompts the file leaves out keep their
// defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := Default()
	var file Config
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.merge(&file)

	dotenv, err := readDotEnv(filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, err
	}
	applied := cfg.applyEnv(func(key string) (string, bool) {
		if v := os.Getenv(key); v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})

	logger.FromContext(ctx).V(1).Info("loaded project config", logger.FileKey, path, "env_overrides", applied)
	return cfg, nil
}

func readDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return env, nil
}

func (c *Config) merge(file *Config) {
	if file.SrcPath != "" {
		c.SrcPath = file.SrcPath
	}
	if file.Language != "" {
		c.Language = file.Language
	}
	if file.Framework != "" {
		c.Framework = file.Framework
	}
	for name, tpl := range file.Prompts {
		if c.Prompts == nil {
			c.Prompts = make(map[string]string)
		}
		c.Prompts[name] = tpl
	}
}

// applyEnv returns the names of the variables that were applied.
func (c *Config) applyEnv(lookup func(string) (string, bool)) []string {
	var applied []string
	for _, o := range []struct {
		key   string
		field *string
	}{
		{EnvSrcPath, &c.SrcPath},
		{EnvLanguage, &c.Language},
		{EnvFramework, &c.Framework},
	} {
		if v, ok := lookup(o.key); ok && v != "" {
			*o.field = v
			applied = append(applied, o.key)
		}
	}
	return applied
}

// Prompt returns the raw template for name.
func (c *Config) Prompt(name string) (string, error) {
	tpl, ok := c.Prompts[name]
	if !ok {
		return "", fmt.Errorf("%w %q (available: %v)", ErrUnknownPrompt, name, c.PromptNames())
	}
	return tpl, nil
}

// PromptNames lists the configured prompts: built-in names first, in
// documentation order, then any custom prompts sorted by name.
func (c *Config) PromptNames() []string {
	known := make(map[string]bool, len(PromptNames))
	var out []string
	for _, name := range PromptNames {
		known[name] = true
		if _, ok := c.Prompts[name]; ok {
			out = append(out, name)
		}
	}
	var custom []string
	for name := range c.Prompts {
		if !known[name] {
			custom = append(custom, name)
		}
	}
	sort.Strings(custom)
	return append(out, custom...)
}

// RenderPrompt fills the named template. language and framework default to
// the project's values; vars take precedence.
func (c *Config) RenderPrompt(name string, vars map[string]string) (string, error) {
	tpl, err := c.Prompt(name)
	if err != nil {
		return "", err
	}
	all := map[string]string{
		"language":  c.Language,
		"framework": c.Framework,
	}
	for k, v := range vars {
		all[k] = v
	}
	out, err := Render(tpl, all)
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", name, err)
	}
	return out, nil
}
