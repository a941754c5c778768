// Package shape is the model shared by the userprompt front ends and the
// code emitter: a flat description of the structs and enums to derive.
package shape

import (
	"fmt"
	"sort"
	"strings"
)

// Kind distinguishes product types from sum types.
type Kind int

const (
	Struct Kind = iota
	Enum
)

func (k Kind) String() string {
	switch k {
	case Struct:
		return "Struct"
	case Enum:
		return "Enum"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field is one prompted struct field.
type Field struct {
	Name     string // Go field name
	Type     string // Go type expression
	Label    string // prompt label; the field name when untagged
	Help     string
	Optional bool // only honoured on pointer types
}

// IsPointer reports whether the field type is a pointer.
func (f Field) IsPointer() bool { return strings.HasPrefix(f.Type, "*") }

// Tag renders the struct tag that reproduces the field's annotations.
func (f Field) Tag() string {
	var parts []string
	label := f.Label
	if label == f.Name {
		label = ""
	}
	if label != "" || f.Optional {
		v := label
		if f.Optional {
			v += ",optional"
		}
		parts = append(parts, fmt.Sprintf("prompt:%q", v))
	}
	if f.Help != "" {
		parts = append(parts, fmt.Sprintf("help:%q", f.Help))
	}
	return strings.Join(parts, " ")
}

// Variant is one alternative of an enum.
type Variant struct {
	Name    string
	Help    string
	Pointer bool    // the marker method has a pointer receiver
	Fields  []Field // struct variants
	Type    string  // underlying type of a positional (non-struct) variant
}

// Positional reports whether the variant is a single unnamed value.
func (v Variant) Positional() bool { return v.Type != "" }

// GoType is the variant's type as stored in the enum interface.
func (v Variant) GoType() string {
	if v.Pointer {
		return "*" + v.Name
	}
	return v.Name
}

// Type is one struct or enum.
type Type struct {
	Name     string
	Kind     Kind
	Comment  string
	Fields   []Field   // Struct
	Variants []Variant // Enum
	Marker   string    // Enum: the interface's marker method
	Declare  bool      // emit the declarations too, not just the methods
}

// File is every type derived for one output file.
type File struct {
	Package string
	Source  string // where the shapes came from, for the header
	Types   []Type
	Imports []string // extra imports required by declared field types
}

// Declares reports whether any type in f must be declared.
func (f File) Declares() bool {
	for _, t := range f.Types {
		if t.Declare {
			return true
		}
	}
	return false
}

// Sorted returns the import paths without duplicates, sorted.
func Sorted(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		if p != "" && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
