// Package docs checks that every navigation link resolves to a page in the
// documentation content tree.
package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/oakwood-commons/docsite/pkg/logger"
	"github.com/oakwood-commons/docsite/pkg/site"
)

// Status is the outcome of resolving one nav entry.
type Status string

const (
	StatusOK      Status = "ok"
	StatusMissing Status = "missing"
)

// DefaultExtensions are tried in order when resolving a link to a file.
var DefaultExtensions = []string{".md", ".mdx"}

// Result describes one nav entry.
type Result struct {
	Entry  site.NavEntry
	Status Status
	// Path is the resolved page file, relative to the content directory.
	Path string
	// Title is the page title from front matter or its first H1.
	Title string
	// Reason explains a missing page.
	Reason string
}

// Report holds results in nav order.
type Report struct {
	Results []Result
}

// OK reports whether every entry resolved to a page.
func (r *Report) OK() bool {
	for _, res := range r.Results {
		if res.Status != StatusOK {
			return false
		}
	}
	return true
}

// Missing returns the entries that did not resolve.
func (r *Report) Missing() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status != StatusOK {
			out = append(out, res)
		}
	}
	return out
}

// Checker resolves nav links against a content directory.
type Checker struct {
	ContentDir string
	// Extensions defaults to DefaultExtensions.
	Extensions []string
	// Concurrency bounds parallel page reads; 0 means GOMAXPROCS.
	Concurrency int
}

// Check resolves every entry of nav. Pages are read concurrently; results
// keep nav order. Only I/O failures other than a missing file are returned
// as errors.
func (c *Checker) Check(ctx context.Context, nav []site.NavEntry) (*Report, error) {
	info, err := os.Stat(c.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content directory: %s is not a directory", c.ContentDir)
	}

	lgr := logger.FromContext(ctx)
	results := make([]Result, len(nav))

	g, ctx := errgroup.WithContext(ctx)
	limit := c.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)

	for i, entry := range nav {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.resolve(entry)
			if err != nil {
				return fmt.Errorf("nav entry %q: %w", entry.Link, err)
			}
			lgr.V(1).Info("resolved nav entry", "link", entry.Link, "status", res.Status, "path", res.Path)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Report{Results: results}, nil
}

func (c *Checker) resolve(entry site.NavEntry) (Result, error) {
	res := Result{Entry: entry, Status: StatusMissing}

	candidates, err := c.Candidates(entry.Link)
	if err != nil {
		res.Reason = err.Error()
		return res, nil
	}

	for _, rel := range candidates {
		path := filepath.Join(c.ContentDir, rel)
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
			continue
		}
		if err != nil {
			return res, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return res, err
		}
		res.Status = StatusOK
		res.Path = filepath.ToSlash(rel)
		res.Title = PageTitle(data)
		return res, nil
	}

	res.Reason = "no page at " + strings.Join(toSlash(candidates), ", ")
	return res, nil
}

// Candidates lists the files, relative to the content directory, that may
// back link. A trailing slash resolves only to the directory index.
func (c *Checker) Candidates(link string) ([]string, error) {
	if !strings.HasPrefix(link, "/") {
		return nil, fmt.Errorf("link %q is not site-relative", link)
	}
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}

	trimmed := strings.Trim(link, "/")
	for _, part := range strings.Split(trimmed, "/") {
		if part == ".." {
			return nil, fmt.Errorf("link %q escapes the content directory", link)
		}
	}
	base := filepath.FromSlash(trimmed)

	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var out []string
	if trimmed != "" && !(site.NavEntry{Link: link}).IsSection() {
		for _, ext := range exts {
			out = append(out, base+ext)
		}
	}
	for _, ext := range exts {
		out = append(out, filepath.Join(base, "index"+ext))
	}
	return out, nil
}

func toSlash(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}
	return out
}
