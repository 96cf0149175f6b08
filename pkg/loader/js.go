package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
	"github.com/dop251/goja/parser"
)

var errJSTimeout = errors.New("javascript evaluation timed out")

// evalJS runs a site config module in an isolated VM and returns the value
// assigned to the default export. Only a single exported object literal (or a
// defineConfig(...) call around one) is expected; imports and require calls
// are refused.
func evalJS(ctx context.Context, name, source string, timeout time.Duration) (any, error) {
	source, err := moduleSource(source)
	if err != nil {
		return nil, err
	}
	prog, err := parser.ParseFile(nil, name, source, 0)
	if err != nil {
		return nil, fmt.Errorf("evaluate javascript: %w", err)
	}
	compiled, err := goja.CompileAST(prog, false)
	if err != nil {
		return nil, fmt.Errorf("evaluate javascript: %w", err)
	}

	vm := goja.New()
	module := vm.NewObject()
	exports := vm.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return nil, fmt.Errorf("bind module: %w", err)
	}
	if err := vm.Set("module", module); err != nil {
		return nil, fmt.Errorf("bind module: %w", err)
	}
	if err := vm.Set("exports", exports); err != nil {
		return nil, fmt.Errorf("bind exports: %w", err)
	}
	if err := vm.Set("defineConfig", func(call goja.FunctionCall) goja.Value {
		return call.Argument(0)
	}); err != nil {
		return nil, fmt.Errorf("bind defineConfig: %w", err)
	}
	if err := vm.Set("require", func(call goja.FunctionCall) goja.Value {
		panic(vm.NewGoError(fmt.Errorf("%w: require(%s)", ErrUnsupportedImport, call.Argument(0).String())))
	}); err != nil {
		return nil, fmt.Errorf("bind require: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan struct{})
	var runErr error
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("panic: %v", r)
			}
		}()
		_, runErr = vm.RunProgram(compiled)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		vm.Interrupt(errJSTimeout)
		<-done
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", errJSTimeout, timeout)
		}
		return nil, ctx.Err()
	}
	if runErr != nil {
		return nil, fmt.Errorf("evaluate javascript: %w", runErr)
	}

	exported := module.Get("exports")
	if exported == nil || goja.IsUndefined(exported) || goja.IsNull(exported) ||
		(exported.SameAs(exports) && len(exports.Keys()) == 0) {
		return nil, fmt.Errorf("evaluate javascript: module has no default export")
	}
	return exported.Export(), nil
}

// moduleSource rewrites `export default` into an assignment to
// module.exports, which the VM can run as a script. Import declarations and
// named exports are rejected. Strings, template literals, regular expression
// literals and comments are skipped, so their text never counts as code.
// Malformed input is passed through for the parser to report.
func moduleSource(src string) (string, error) {
	s := &jsScanner{src: src}
	if err := s.code(false); err != nil {
		return "", err
	}
	s.out.WriteString(src[s.copied:])
	return s.out.String(), nil
}

type jsScanner struct {
	src    string
	pos    int
	copied int
	out    strings.Builder
}

func (s *jsScanner) at(i int) byte {
	if i < len(s.src) {
		return s.src[i]
	}
	return 0
}

// code scans until the end of input or, when nested, until the brace closing
// a template substitution.
func (s *jsScanner) code(nested bool) error {
	depth := 0
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '/' && s.at(s.pos+1) == '/':
			s.skipLineComment()
		case c == '/' && s.at(s.pos+1) == '*':
			s.skipBlockComment()
		case c == '/' && s.regexAllowed():
			s.skipRegex()
		case c == '\'' || c == '"':
			s.skipString(c)
		case c == '`':
			if err := s.template(); err != nil {
				return err
			}
		case c == '{':
			depth++
			s.pos++
		case c == '}':
			s.pos++
			if nested && depth == 0 {
				return nil
			}
			depth--
		case isIdentStart(c):
			if err := s.identifier(); err != nil {
				return err
			}
		case c >= '0' && c <= '9':
			for s.pos < len(s.src) && (isIdentPart(s.src[s.pos]) || s.src[s.pos] == '.') {
				s.pos++
			}
		default:
			s.pos++
		}
	}
	return nil
}

func (s *jsScanner) identifier() error {
	start := s.pos
	for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
		s.pos++
	}
	word := s.src[start:s.pos]
	if word != "import" && word != "export" {
		return nil
	}
	// obj.import and { import: ... } are property names.
	if s.prevSignificant(start) == '.' || s.at(s.skipSpace(s.pos)) == ':' {
		return nil
	}
	if word == "import" {
		return ErrUnsupportedImport
	}

	next := s.skipSpace(s.pos)
	end := next
	for end < len(s.src) && isIdentPart(s.src[end]) {
		end++
	}
	if s.src[next:end] != "default" {
		return fmt.Errorf("%w: only export default is supported", ErrUnsupportedImport)
	}
	s.out.WriteString(s.src[s.copied:start])
	s.out.WriteString("module.exports =")
	s.copied = end
	s.pos = end
	return nil
}

func (s *jsScanner) template() error {
	s.pos++
	for s.pos < len(s.src) {
		switch c := s.src[s.pos]; {
		case c == '\\':
			s.pos += 2
		case c == '`':
			s.pos++
			return nil
		case c == '$' && s.at(s.pos+1) == '{':
			s.pos += 2
			if err := s.code(true); err != nil {
				return err
			}
		default:
			s.pos++
		}
	}
	return nil
}

func (s *jsScanner) skipString(quote byte) {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
		case quote:
			s.pos++
			return
		case '\n':
			return
		default:
			s.pos++
		}
	}
}

func (s *jsScanner) skipRegex() {
	s.pos++
	inClass := false
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				s.pos++
				for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
					s.pos++
				}
				return
			}
		case '\n':
			return
		}
		s.pos++
	}
}

func (s *jsScanner) skipLineComment() {
	if i := strings.IndexByte(s.src[s.pos:], '\n'); i >= 0 {
		s.pos += i
		return
	}
	s.pos = len(s.src)
}

func (s *jsScanner) skipBlockComment() {
	if i := strings.Index(s.src[s.pos+2:], "*/"); i >= 0 {
		s.pos += i + 4
		return
	}
	s.pos = len(s.src)
}

// skipSpace returns the index of the first byte at or after i that is not
// whitespace or part of a comment.
func (s *jsScanner) skipSpace(i int) int {
	for i < len(s.src) {
		switch c := s.src[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '/' && s.at(i+1) == '/':
			j := strings.IndexByte(s.src[i:], '\n')
			if j < 0 {
				return len(s.src)
			}
			i += j
		case c == '/' && s.at(i+1) == '*':
			j := strings.Index(s.src[i+2:], "*/")
			if j < 0 {
				return len(s.src)
			}
			i += j + 4
		default:
			return i
		}
	}
	return i
}

// prevSignificant returns the last non-whitespace byte before i, or 0.
func (s *jsScanner) prevSignificant(i int) byte {
	for i--; i >= 0; i-- {
		switch c := s.src[i]; c {
		case ' ', '\t', '\n', '\r':
		default:
			return c
		}
	}
	return 0
}

// regexAllowed reports whether a slash at the current position starts a
// regular expression literal rather than a division.
func (s *jsScanner) regexAllowed() bool {
	switch s.prevSignificant(s.pos) {
	case 0, '(', ',', '=', ':', '[', '!', '&', '|', '?', '{', '}', ';', '+', '-', '*', '%', '<', '>', '~', '^':
		return true
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 || (c|0x20 >= 'a' && c|0x20 <= 'z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
