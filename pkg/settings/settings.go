// Package settings provides build metadata, runtime configuration, and
// context helpers used across the docsite CLI and library packages.
package settings

import (
	"path/filepath"
	"time"

	"github.com/oakwood-commons/docsite/pkg/loader"
)

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "docsite"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// SiteSettings says where the site configuration comes from.
type SiteSettings struct {
	// Path is the explicit --file value; empty means discover in Dir.
	Path string
	// Dir is searched for a conventionally named config file.
	Dir string
}

// Run holds configuration settings for a single execution of the application.
type Run struct {
	MinLogLevel int8
	Site        SiteSettings
	Strict      bool
	Timeout     time.Duration
	NoColor     bool
}

// NewCliParams initializes and returns a pointer to a Run struct with default CLI parameters.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Site: SiteSettings{
			Dir: ".",
		},
		Timeout: loader.DefaultTimeout,
		NoColor: false,
	}
}

// LoaderOptions returns the loader options for this run.
func (r *Run) LoaderOptions() loader.Options {
	return loader.Options{Strict: r.Strict, Timeout: r.Timeout}
}

// SitePath resolves the site configuration file. A positional argument wins
// over --file, which wins over discovery in the search directory.
func (r *Run) SitePath(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if r.Site.Path != "" {
		return r.Site.Path, nil
	}
	dir := r.Site.Dir
	if dir == "" {
		dir = "."
	}
	path, err := loader.Discover(dir)
	if err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}
