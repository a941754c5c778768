package prompt

import (
	"reflect"
	"strings"
)

// FieldTag is the prompting metadata of a struct field.
type FieldTag struct {
	Label    string
	Help     string
	Optional bool
}

// ParseFieldTag reads the prompt and help tags of the field called name.
// It reports false when the field is skipped with prompt:"-".
func ParseFieldTag(name string, tag reflect.StructTag) (FieldTag, bool) {
	out := FieldTag{Label: name, Help: tag.Get("help")}
	raw, ok := tag.Lookup("prompt")
	if !ok {
		return out, true
	}
	if raw == "-" {
		return FieldTag{}, false
	}
	label, rest, _ := strings.Cut(raw, ",")
	if label != "" {
		out.Label = label
	}
	for opt := range strings.SplitSeq(rest, ",") {
		if strings.TrimSpace(opt) == "optional" {
			out.Optional = true
		}
	}
	return out, true
}

type field struct {
	index int
	FieldTag
}

// fieldsOf lists the promptable fields of struct type t in declaration
// order.
func fieldsOf(t reflect.Type) []field {
	var out []field
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, ok := ParseFieldTag(sf.Name, sf.Tag)
		if !ok {
			continue
		}
		out = append(out, field{index: i, FieldTag: tag})
	}
	return out
}

// Sub joins a parent label and a field or element name the way nested
// form labels are built.
func Sub(label, name string) string {
	if label == "" {
		return name
	}
	return label + "/" + name
}
