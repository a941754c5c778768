// Package codegen emits Prompt and BuildForm implementations for derived
// types.
//
// The output behaves exactly like runtime derivation in package prompt:
// struct fields are prompted in order with their tag labels and help,
// enums list their variants and then prompt the chosen variant's fields.
package codegen

import (
	"embed"
	"fmt"
	"go/format"
	"path/filepath"
	"strings"

	"github.com/simonhull/userprompt/internal/generator"
	"github.com/simonhull/userprompt/internal/shape"
)

//go:embed templates/*.tmpl
var templates embed.FS

// PromptImport is the import path of the runtime package generated code
// calls into.
const PromptImport = "github.com/simonhull/userprompt/prompt"

// Options configures emission.
type Options struct {
	GUI bool // also emit BuildForm implementations
}

// Emitter renders shape files to Go source.
type Emitter struct {
	renderer *generator.Renderer
	opts     Options
}

// New creates an emitter.
func New(opts Options) *Emitter {
	return &Emitter{renderer: generator.NewRenderer(templates, "templates/*.tmpl"), opts: opts}
}

type fileView struct {
	Source  string
	Package string
	Std     []string // standard library imports
	Imports []string // everything else, in a second group
	Types   []typeView
}

type typeView struct {
	shape.Type
	GUI        bool
	EnumVar    string
	PromptFunc string
	FormFunc   string
}

func (t typeView) IsStruct() bool { return t.Kind == shape.Struct }

// FormCases are the variants whose fields the form has to render.
func (t typeView) FormCases() []shape.Variant {
	var out []shape.Variant
	for _, v := range t.Variants {
		if v.Positional() || len(v.Fields) > 0 {
			out = append(out, v)
		}
	}
	return out
}

// Emit renders f as gofmt-clean Go source.
func (e *Emitter) Emit(f shape.File) ([]byte, error) {
	if f.Package == "" {
		return nil, fmt.Errorf("%s: no package name", f.Source)
	}
	if len(f.Types) == 0 {
		return nil, fmt.Errorf("%s: nothing to generate", f.Source)
	}

	view := fileView{Source: f.Source, Package: f.Package}
	for _, t := range f.Types {
		view.Types = append(view.Types, typeView{
			Type:       t,
			GUI:        e.opts.GUI,
			EnumVar:    generator.CamelCase(t.Name) + "Enum",
			PromptFunc: "prompt" + generator.PascalCase(t.Name),
			FormFunc:   "build" + generator.PascalCase(t.Name) + "Form",
		})
	}
	view.Std, view.Imports = groupImports(e.imports(f))

	src, err := e.renderer.Render("file", view)
	if err != nil {
		return nil, err
	}
	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("%s: formatting generated code: %w\n%s", f.Source, err, src)
	}
	return out, nil
}

// imports lists exactly the packages the rendered file refers to.
func (e *Emitter) imports(f shape.File) []string {
	paths := []string{PromptImport}
	if f.Declares() {
		paths = append(paths, f.Imports...)
	}
	for _, t := range f.Types {
		switch t.Kind {
		case shape.Enum:
			paths = append(paths, "fmt")
			if e.opts.GUI && hasStructCase(t) {
				paths = append(paths, "errors")
			}
		case shape.Struct:
			if e.opts.GUI && len(t.Fields) > 0 {
				paths = append(paths, "errors")
			}
		}
	}
	return shape.Sorted(paths)
}

// groupImports splits sorted paths into standard library packages, whose
// first element has no dot, and the rest.
func groupImports(paths []string) (std, other []string) {
	for _, p := range paths {
		first, _, _ := strings.Cut(p, "/")
		if strings.Contains(first, ".") {
			other = append(other, p)
		} else {
			std = append(std, p)
		}
	}
	return std, other
}

func hasStructCase(t shape.Type) bool {
	for _, v := range t.Variants {
		if !v.Positional() && len(v.Fields) > 0 {
			return true
		}
	}
	return false
}

// OutputName is the generated file name for source: server.go becomes
// server_prompt.go with the default suffix, types.yml types_prompt.go.
func OutputName(source, suffix string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix
}
