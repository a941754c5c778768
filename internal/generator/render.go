package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"unicode"
)

// Renderer executes the template set matching one pattern in one file
// system. The set is parsed on first use.
type Renderer struct {
	fsys    fs.FS
	pattern string
	funcMap template.FuncMap

	mu   sync.Mutex
	tmpl *template.Template
}

// NewRenderer creates a renderer for the templates in fsys matching
// pattern, with the built-in helper functions.
func NewRenderer(fsys fs.FS, pattern string) *Renderer {
	return &Renderer{
		fsys:    fsys,
		pattern: pattern,
		funcMap: defaultFuncMap(),
	}
}

// Render executes the template called name.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	tmpl, err := r.load()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", name, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) load() (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tmpl != nil {
		return r.tmpl, nil
	}
	tmpl, err := template.New(path.Base(r.pattern)).Funcs(r.funcMap).ParseFS(r.fsys, r.pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates '%s': %w", r.pattern, err)
	}
	r.tmpl = tmpl
	return tmpl, nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"quote":     strconv.Quote,
		"backquote": Backquote,
		"comment":   Comment,
	}
}

// CamelCase lowercases the leading run of upper-case letters so that
// exported Go names become unexported ones.
// Examples: Server → server, HTTPProxy → httpProxy, ID → id
func CamelCase(s string) string {
	runes := []rune(s)
	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}
	if n == 0 {
		return s
	}
	if n > 1 && n < len(runes) && unicode.IsLower(runes[n]) {
		n-- // keep the first letter of the next word
	}
	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// PascalCase upper-cases the first letter.
func PascalCase(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Backquote wraps s in back quotes, falling back to a quoted string when s
// contains a back quote.
func Backquote(s string) string {
	if strings.Contains(s, "`") {
		return strconv.Quote(s)
	}
	return "`" + s + "`"
}

// Comment turns text into Go line comments.
func Comment(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("// "+l, " ")
	}
	return strings.Join(lines, "\n")
}
