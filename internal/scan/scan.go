// Package scan finds the types to derive in Go source.
//
// A struct is derived when its doc comment carries the directive
//
//	//prompt:derive
//
// An interface marked
//
//	//prompt:enum
//
// is a sealed enum. It must declare exactly one method taking and
// returning nothing; every type in the package with that method is a
// variant, in declaration order. A variant's "//prompt:help <text>"
// directive becomes its comment in the variant listing.
package scan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/simonhull/userprompt/internal/shape"
	"github.com/simonhull/userprompt/prompt"
)

const (
	deriveDirective = "//prompt:derive"
	enumDirective   = "//prompt:enum"
	helpDirective   = "//prompt:help"
)

// Options selects which files of a directory are read.
type Options struct {
	Exclude []string // base-name glob patterns
}

type decl struct {
	file string
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
}

type receiver struct {
	pointer bool
}

// Dir scans the Go package in dir and returns one shape.File per source
// file that declares derived types. Test files and generated files are
// skipped.
func Dir(fs afero.Fs, dir string, opts Options) ([]shape.File, error) {
	names, err := goFiles(fs, dir, opts)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	var pkg string
	var decls []decl
	methods := make(map[string]map[string]receiver) // method -> type -> receiver

	for _, name := range names {
		path := filepath.Join(dir, name)
		src, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		f, err := parser.ParseFile(fset, path, src, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if ast.IsGenerated(f) {
			continue
		}
		if pkg == "" {
			pkg = f.Name.Name
		} else if f.Name.Name != pkg {
			return nil, fmt.Errorf("%s: package %s, expected %s", path, f.Name.Name, pkg)
		}

		for _, d := range f.Decls {
			switch d := d.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, s := range d.Specs {
					ts := s.(*ast.TypeSpec)
					doc := ts.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}
					decls = append(decls, decl{file: name, spec: ts, doc: doc})
				}
			case *ast.FuncDecl:
				recordMethod(methods, d)
			}
		}
	}

	byFile := make(map[string]*shape.File)
	var order []string
	add := func(file string, t shape.Type) {
		sf, ok := byFile[file]
		if !ok {
			sf = &shape.File{Package: pkg, Source: file}
			byFile[file] = sf
			order = append(order, file)
		}
		sf.Types = append(sf.Types, t)
	}

	for _, d := range decls {
		switch {
		case hasDirective(d.doc, deriveDirective):
			st, ok := d.spec.Type.(*ast.StructType)
			if !ok {
				return nil, fmt.Errorf("%s: %s is marked %s but is not a struct", d.file, d.spec.Name.Name, deriveDirective)
			}
			add(d.file, shape.Type{
				Name:    d.spec.Name.Name,
				Kind:    shape.Struct,
				Comment: docText(d.doc),
				Fields:  structFields(st),
			})
		case hasDirective(d.doc, enumDirective):
			t, err := enumType(d, decls, methods)
			if err != nil {
				return nil, err
			}
			add(d.file, t)
		}
	}

	out := make([]shape.File, 0, len(order))
	for _, file := range order {
		out = append(out, *byFile[file])
	}
	return out, nil
}

// Package returns the package name of the Go files in dir, or "" when
// there are none.
func Package(fs afero.Fs, dir string) (string, error) {
	names, err := goFiles(fs, dir, Options{})
	if err != nil {
		return "", err
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		src, err := afero.ReadFile(fs, path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		f, err := parser.ParseFile(token.NewFileSet(), path, src, parser.PackageClauseOnly)
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", path, err)
		}
		return f.Name.Name, nil
	}
	return "", nil
}

// goFiles lists the candidate source files of dir, sorted.
func goFiles(fs afero.Fs, dir string, opts Options) ([]string, error) {
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var names []string
	for _, fi := range infos {
		name := fi.Name()
		if fi.IsDir() || filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") ||
			strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		if excluded(name, opts.Exclude) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func excluded(name string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(p string) bool {
		ok, _ := filepath.Match(p, name)
		return ok
	})
}

func recordMethod(methods map[string]map[string]receiver, fn *ast.FuncDecl) {
	if fn.Recv == nil || len(fn.Recv.List) != 1 {
		return
	}
	if fn.Type.Params.NumFields() != 0 || fn.Type.Results.NumFields() != 0 {
		return
	}
	expr := fn.Recv.List[0].Type
	pointer := false
	if star, ok := expr.(*ast.StarExpr); ok {
		pointer, expr = true, star.X
	}
	id, ok := expr.(*ast.Ident)
	if !ok {
		return // generic receivers are not variants
	}
	m := methods[fn.Name.Name]
	if m == nil {
		m = make(map[string]receiver)
		methods[fn.Name.Name] = m
	}
	m[id.Name] = receiver{pointer: pointer}
}

func enumType(d decl, decls []decl, methods map[string]map[string]receiver) (shape.Type, error) {
	name := d.spec.Name.Name
	it, ok := d.spec.Type.(*ast.InterfaceType)
	if !ok {
		return shape.Type{}, fmt.Errorf("%s: %s is marked %s but is not an interface", d.file, name, enumDirective)
	}
	marker, err := markerMethod(it)
	if err != nil {
		return shape.Type{}, fmt.Errorf("%s: enum %s: %w", d.file, name, err)
	}

	t := shape.Type{Name: name, Kind: shape.Enum, Comment: docText(d.doc), Marker: marker}
	impls := methods[marker]
	for _, vd := range decls {
		recv, ok := impls[vd.spec.Name.Name]
		if !ok {
			continue
		}
		v := shape.Variant{
			Name:    vd.spec.Name.Name,
			Pointer: recv.pointer,
			Help:    directiveArg(vd.doc, helpDirective),
		}
		if st, ok := vd.spec.Type.(*ast.StructType); ok {
			v.Fields = structFields(st)
		} else {
			v.Type = types.ExprString(vd.spec.Type)
		}
		t.Variants = append(t.Variants, v)
	}
	if len(t.Variants) == 0 {
		return shape.Type{}, fmt.Errorf("%s: enum %s has no variants implementing %s()", d.file, name, marker)
	}
	return t, nil
}

func markerMethod(it *ast.InterfaceType) (string, error) {
	if it.Methods == nil || len(it.Methods.List) != 1 {
		return "", fmt.Errorf("must declare exactly one marker method")
	}
	m := it.Methods.List[0]
	ft, ok := m.Type.(*ast.FuncType)
	if !ok || len(m.Names) != 1 {
		return "", fmt.Errorf("must declare exactly one marker method")
	}
	if ft.Params.NumFields() != 0 || ft.Results.NumFields() != 0 {
		return "", fmt.Errorf("marker method %s must take and return nothing", m.Names[0].Name)
	}
	return m.Names[0].Name, nil
}

// structFields mirrors the reflective field walk: exported fields in
// declaration order, prompt:"-" skipped.
func structFields(st *ast.StructType) []shape.Field {
	var out []shape.Field
	for _, f := range st.Fields.List {
		typ := types.ExprString(f.Type)
		var tag reflect.StructTag
		if f.Tag != nil {
			if raw, err := strconv.Unquote(f.Tag.Value); err == nil {
				tag = reflect.StructTag(raw)
			}
		}
		names := f.Names
		if len(names) == 0 {
			names = []*ast.Ident{ast.NewIdent(embeddedName(f.Type))}
		}
		for _, n := range names {
			if !ast.IsExported(n.Name) {
				continue
			}
			ft, ok := prompt.ParseFieldTag(n.Name, tag)
			if !ok {
				continue
			}
			field := shape.Field{Name: n.Name, Type: typ, Label: ft.Label, Help: ft.Help}
			field.Optional = ft.Optional && field.IsPointer()
			out = append(out, field)
		}
	}
	return out
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.Ident:
		return e.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	}
	return ""
}

func hasDirective(doc *ast.CommentGroup, directive string) bool {
	if doc == nil {
		return false
	}
	return slices.ContainsFunc(doc.List, func(c *ast.Comment) bool {
		return strings.TrimSpace(c.Text) == directive
	})
}

func directiveArg(doc *ast.CommentGroup, directive string) string {
	if doc == nil {
		return ""
	}
	for _, c := range doc.List {
		if rest, ok := strings.CutPrefix(c.Text, directive+" "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// docText is the doc comment without directives.
func docText(doc *ast.CommentGroup) string {
	return strings.TrimSpace(doc.Text())
}
