package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// APIVersion is the only schema version understood.
const APIVersion = "userprompt/v1"

// Kinds of definition.
const (
	KindStruct = "Struct"
	KindEnum   = "Enum"
)

// Definition is one YAML document describing a struct or an enum.
type Definition struct {
	APIVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Name       string   `yaml:"name"`
	Package    string   `yaml:"package,omitempty"`
	Comment    string   `yaml:"comment,omitempty"`
	Imports    []string `yaml:"imports,omitempty"`
	Spec       Spec     `yaml:"spec"`

	Line int `yaml:"-"`
}

// Spec holds the fields of a struct or the variants of an enum.
type Spec struct {
	Fields   []FieldDef   `yaml:"fields,omitempty"`
	Marker   string       `yaml:"marker,omitempty"`
	Variants []VariantDef `yaml:"variants,omitempty"`
}

// FieldDef is one struct field.
type FieldDef struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Label    string `yaml:"label,omitempty"`
	Help     string `yaml:"help,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`

	Line int `yaml:"-"`
}

// VariantDef is one enum variant. Type makes it positional; Fields make it
// a struct. Pointer gives the marker method a pointer receiver.
type VariantDef struct {
	Name    string     `yaml:"name"`
	Help    string     `yaml:"help,omitempty"`
	Type    string     `yaml:"type,omitempty"`
	Pointer bool       `yaml:"pointer,omitempty"`
	Fields  []FieldDef `yaml:"fields,omitempty"`

	Line int `yaml:"-"`
}

func (f *FieldDef) UnmarshalYAML(node *yaml.Node) error {
	type plain FieldDef
	if err := node.Decode((*plain)(f)); err != nil {
		return err
	}
	f.Line = node.Line
	return nil
}

func (v *VariantDef) UnmarshalYAML(node *yaml.Node) error {
	type plain VariantDef
	if err := node.Decode((*plain)(v)); err != nil {
		return err
	}
	v.Line = node.Line
	return nil
}

// ParseFile reads every definition in the YAML file at path.
func ParseFile(fs afero.Fs, path string) ([]*Definition, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	defs, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// ParseBytes parses a stream of YAML documents. Empty documents are
// skipped.
func ParseBytes(data []byte) ([]*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var defs []*Definition
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		if len(node.Content) == 0 || node.Content[0].Tag == "!!null" {
			continue
		}
		var def Definition
		if err := node.Decode(&def); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		def.Line = node.Content[0].Line
		defs = append(defs, &def)
	}
	return defs, nil
}
