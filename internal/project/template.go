package project

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMissingVar is returned when a {name} placeholder has no value.
var ErrMissingVar = errors.New("missing template variable")

var dollarPattern = regexp.MustCompile(`\$(?:(\$)|([_A-Za-z][_A-Za-z0-9]*)|\{([_A-Za-z][_A-Za-z0-9]*)\})`)

// Render fills tpl from vars. A template containing "$" uses dollar syntax:
// $name and ${name} are replaced, $$ is a literal dollar and unknown names
// are left untouched. Otherwise {name} placeholders are replaced, {{ and }}
// are literal braces and an unknown name is an error.
func Render(tpl string, vars map[string]string) (string, error) {
	if strings.Contains(tpl, "$") {
		return substituteDollar(tpl, vars), nil
	}
	return substituteBraces(tpl, vars)
}

func substituteDollar(tpl string, vars map[string]string) string {
	return dollarPattern.ReplaceAllStringFunc(tpl, func(m string) string {
		sub := dollarPattern.FindStringSubmatch(m)
		switch {
		case sub[1] != "":
			return "$"
		case sub[2] != "":
			if v, ok := vars[sub[2]]; ok {
				return v
			}
		case sub[3] != "":
			if v, ok := vars[sub[3]]; ok {
				return v
			}
		}
		return m
	})
}

func substituteBraces(tpl string, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(tpl))
	for i := 0; i < len(tpl); i++ {
		ch := tpl[i]
		switch ch {
		case '{':
			if i+1 < len(tpl) && tpl[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("unmatched '{' at offset %d", i)
			}
			name := tpl[i+1 : i+1+end]
			v, ok := vars[name]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrMissingVar, name)
			}
			b.WriteString(v)
			i += end + 1
		case '}':
			if i+1 < len(tpl) && tpl[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("single '}' at offset %d", i)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), nil
}
