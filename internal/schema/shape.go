package schema

import (
	"unicode"
	"unicode/utf8"

	"github.com/simonhull/userprompt/internal/shape"
)

// Shapes converts validated definitions into one file of declared types.
// pkg is used when no definition names its package.
func Shapes(defs []*Definition, pkg, source string) shape.File {
	out := shape.File{Package: pkg, Source: source}
	var imports []string
	for _, def := range defs {
		if def.Package != "" {
			out.Package = def.Package
		}
		imports = append(imports, def.Imports...)

		t := shape.Type{Name: def.Name, Comment: def.Comment, Declare: true}
		switch def.Kind {
		case KindStruct:
			t.Kind = shape.Struct
			t.Fields = fields(def.Spec.Fields)
		case KindEnum:
			t.Kind = shape.Enum
			t.Marker = def.Spec.Marker
			if t.Marker == "" {
				t.Marker = DefaultMarker(def.Name)
			}
			for _, vd := range def.Spec.Variants {
				t.Variants = append(t.Variants, shape.Variant{
					Name:    vd.Name,
					Help:    vd.Help,
					Pointer: vd.Pointer,
					Type:    vd.Type,
					Fields:  fields(vd.Fields),
				})
			}
		}
		out.Types = append(out.Types, t)
	}
	out.Imports = shape.Sorted(imports)
	return out
}

// DefaultMarker names the marker method of enum name: Shape → isShape.
func DefaultMarker(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return "is" + string(unicode.ToUpper(r)) + name[size:]
}

func fields(defs []FieldDef) []shape.Field {
	var out []shape.Field
	for _, f := range defs {
		label := f.Label
		if label == "" {
			label = f.Name
		}
		out = append(out, shape.Field{
			Name:     f.Name,
			Type:     f.Type,
			Label:    label,
			Help:     f.Help,
			Optional: f.Optional,
		})
	}
	return out
}
