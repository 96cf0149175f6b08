package site

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/multierr"
)

// FieldError describes one violated rule. Field uses the wire path of the
// offending value, e.g. "themeConfig.nav[2].link".
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the structural rules of the record and returns every
// violation combined into a single error, in field order. It returns nil for
// a valid record.
func (c *Config) Validate() error {
	if c == nil {
		return &FieldError{Field: "config", Message: "is nil"}
	}

	var err error
	if strings.TrimSpace(c.Title) == "" {
		err = multierr.Append(err, &FieldError{Field: "title", Message: "must not be empty"})
	}
	if strings.TrimSpace(c.Description) == "" {
		err = multierr.Append(err, &FieldError{Field: "description", Message: "must not be empty"})
	}

	seen := make(map[string]int, len(c.ThemeConfig.Nav))
	for i, e := range c.ThemeConfig.Nav {
		prefix := fmt.Sprintf("themeConfig.nav[%d]", i)
		if strings.TrimSpace(e.Text) == "" {
			err = multierr.Append(err, &FieldError{Field: prefix + ".text", Message: "must not be empty"})
		}
		switch {
		case e.Link == "":
			err = multierr.Append(err, &FieldError{Field: prefix + ".link", Message: "must not be empty"})
		case !strings.HasPrefix(e.Link, "/"):
			err = multierr.Append(err, &FieldError{Field: prefix + ".link", Message: fmt.Sprintf("must begin with \"/\", got %q", e.Link)})
		case strings.IndexFunc(e.Link, unicode.IsSpace) >= 0:
			err = multierr.Append(err, &FieldError{Field: prefix + ".link", Message: fmt.Sprintf("must not contain whitespace, got %q", e.Link)})
		}
		if e.Link == "" {
			continue
		}
		if first, dup := seen[e.Link]; dup {
			err = multierr.Append(err, &FieldError{Field: prefix + ".link", Message: fmt.Sprintf("duplicates themeConfig.nav[%d].link %q", first, e.Link)})
			continue
		}
		seen[e.Link] = i
	}
	return err
}

// FieldErrors unpacks the violations held by an error returned from
// Validate. Errors of other kinds are skipped.
func FieldErrors(err error) []*FieldError {
	var out []*FieldError
	for _, e := range multierr.Errors(err) {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, fe)
		}
	}
	return out
}
