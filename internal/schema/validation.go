package schema

import (
	"fmt"
	"go/parser"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidationError is one problem in a schema, located by path.
type ValidationError struct {
	Field      string // e.g. "Server.spec.fields[0].name"
	Message    string
	Suggestion string
	Line       int
}

func (e *ValidationError) Error() string {
	var msg string
	if e.Line > 0 {
		msg = fmt.Sprintf("validation error at %s (line %d): %s", e.Field, e.Line, e.Message)
	} else {
		msg = fmt.Sprintf("validation error at %s: %s", e.Field, e.Message)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// ValidationErrors is every problem found in a schema file.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "found %d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

type validator struct {
	errs ValidationErrors
}

func (v *validator) add(field string, line int, msg, suggestion string) {
	v.errs = append(v.errs, ValidationError{Field: field, Message: msg, Suggestion: suggestion, Line: line})
}

// Validate checks every definition of one file.
func Validate(defs []*Definition) error {
	var v validator
	if len(defs) == 0 {
		v.add("file", 0, "no definitions", "add a document with apiVersion, kind and name")
	}

	names := make(map[string]bool)
	pkg := ""
	for i, def := range defs {
		at := def.Name
		if at == "" {
			at = fmt.Sprintf("document[%d]", i)
		}
		v.definition(at, def)

		if def.Name != "" {
			if names[def.Name] {
				v.add(at+".name", def.Line, fmt.Sprintf("type %s is defined more than once", def.Name), "")
			}
			names[def.Name] = true
		}
		if def.Package != "" {
			if pkg != "" && def.Package != pkg {
				v.add(at+".package", def.Line, fmt.Sprintf("package %s conflicts with %s", def.Package, pkg), "use one package per schema file")
			}
			pkg = def.Package
		}
	}

	if len(v.errs) > 0 {
		return v.errs
	}
	return nil
}

func (v *validator) definition(at string, def *Definition) {
	if def.APIVersion != APIVersion {
		msg := "apiVersion is required"
		if def.APIVersion != "" {
			msg = fmt.Sprintf("unsupported apiVersion %q", def.APIVersion)
		}
		v.add(at+".apiVersion", def.Line, msg, "use "+APIVersion)
	}

	if def.Name == "" {
		v.add(at+".name", def.Line, "name is required", "")
	} else if !token.IsIdentifier(def.Name) {
		v.add(at+".name", def.Line, fmt.Sprintf("%q is not a Go identifier", def.Name), identSuggestion(def.Name))
	}

	if def.Package != "" && !token.IsIdentifier(def.Package) {
		v.add(at+".package", def.Line, fmt.Sprintf("%q is not a package name", def.Package), "")
	}
	for i, imp := range def.Imports {
		if strings.TrimSpace(imp) == "" || strings.ContainsAny(imp, "\" \t") {
			v.add(fmt.Sprintf("%s.imports[%d]", at, i), def.Line, fmt.Sprintf("invalid import path %q", imp), "")
		}
	}

	switch def.Kind {
	case KindStruct:
		if len(def.Spec.Variants) > 0 || def.Spec.Marker != "" {
			v.add(at+".spec", def.Line, "a Struct has fields, not variants", "use kind: Enum")
		}
		v.fields(at+".spec.fields", def.Spec.Fields)
	case KindEnum:
		v.enum(at, def)
	case "":
		v.add(at+".kind", def.Line, "kind is required", "use Struct or Enum")
	default:
		v.add(at+".kind", def.Line, fmt.Sprintf("unknown kind %q", def.Kind), kindSuggestion(def.Kind))
	}
}

func (v *validator) enum(at string, def *Definition) {
	if len(def.Spec.Fields) > 0 {
		v.add(at+".spec", def.Line, "an Enum has variants, not fields", "move the fields under a variant")
	}
	if m := def.Spec.Marker; m != "" && !token.IsIdentifier(m) {
		v.add(at+".spec.marker", def.Line, fmt.Sprintf("%q is not a Go identifier", m), "")
	}
	if len(def.Spec.Variants) == 0 {
		v.add(at+".spec.variants", def.Line, "an Enum needs at least one variant", "")
		return
	}

	seen := make(map[string]bool)
	for i, vd := range def.Spec.Variants {
		path := fmt.Sprintf("%s.spec.variants[%d]", at, i)
		switch {
		case vd.Name == "":
			v.add(path+".name", vd.Line, "name is required", "")
		case !token.IsIdentifier(vd.Name):
			v.add(path+".name", vd.Line, fmt.Sprintf("%q is not a Go identifier", vd.Name), identSuggestion(vd.Name))
		case vd.Name == def.Name:
			v.add(path+".name", vd.Line, "a variant cannot share the enum's name", "")
		case seen[vd.Name]:
			v.add(path+".name", vd.Line, fmt.Sprintf("variant %s is listed more than once", vd.Name), "")
		}
		seen[vd.Name] = true

		if vd.Type != "" {
			if len(vd.Fields) > 0 {
				v.add(path, vd.Line, "a variant has either a type or fields", "drop type to make a struct variant")
			}
			v.typeExpr(path+".type", vd.Line, vd.Type)
		}
		v.fields(path+".fields", vd.Fields)
	}
}

func (v *validator) fields(at string, fields []FieldDef) {
	seen := make(map[string]bool)
	for i, f := range fields {
		path := fmt.Sprintf("%s[%d]", at, i)
		switch {
		case f.Name == "":
			v.add(path+".name", f.Line, "name is required", "")
		case !token.IsIdentifier(f.Name):
			v.add(path+".name", f.Line, fmt.Sprintf("%q is not a Go identifier", f.Name), identSuggestion(f.Name))
		case !token.IsExported(f.Name):
			v.add(path+".name", f.Line, fmt.Sprintf("field %s is unexported and would never be prompted", f.Name), "rename it to "+exported(f.Name))
		case seen[f.Name]:
			v.add(path+".name", f.Line, fmt.Sprintf("field %s is listed more than once", f.Name), "")
		}
		seen[f.Name] = true

		if f.Type == "" {
			v.add(path+".type", f.Line, "type is required", "e.g. string, int or *time.Duration")
		} else {
			v.typeExpr(path+".type", f.Line, f.Type)
		}
		if f.Optional && !strings.HasPrefix(f.Type, "*") {
			v.add(path+".optional", f.Line, "only pointer fields can be optional", "use type *"+f.Type)
		}
		if strings.ContainsAny(f.Label, ",\"") {
			v.add(path+".label", f.Line, "label cannot contain commas or quotes", "")
		}
	}
}

func (v *validator) typeExpr(path string, line int, expr string) {
	if _, err := parser.ParseExpr(expr); err != nil {
		v.add(path, line, fmt.Sprintf("%q is not a Go type", expr), "")
	}
}

func kindSuggestion(kind string) string {
	for _, k := range []string{KindStruct, KindEnum} {
		if strings.EqualFold(kind, k) {
			return "did you mean " + k + "?"
		}
	}
	return "use Struct or Enum"
}

func identSuggestion(name string) string {
	var b strings.Builder
	upper := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || r == '_' || (unicode.IsDigit(r) && b.Len() > 0):
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			b.WriteRune(r)
		default:
			upper = b.Len() > 0
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "use " + b.String()
}

func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
