package prompt

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Option is a value that may be absent. The zero Option is absent.
type Option[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] { return Option[T]{Value: v, Valid: true} }

// None returns an absent Option.
func None[T any]() Option[T] { return Option[T]{} }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.Value, o.Valid }

// Prompt asks whether the value should be provided and, on yes, prompts for
// it once with the same label and comment.
func (o *Option[T]) Prompt(s *Session, label, comment string) error {
	ok, err := s.Include(label)
	if err != nil {
		return err
	}
	if !ok {
		*o = None[T]()
		return nil
	}
	v, err := Ask[T](s, label, comment)
	if err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// BuildForm draws a checkbox controlling presence. Checking it creates a
// zero value, unchecking discards the value.
func (o *Option[T]) BuildForm(f *Form, label, comment string) error {
	checked := o.Valid
	if f.Check(&checked, label, comment) {
		if checked {
			*o = Option[T]{Valid: true}
		} else {
			*o = None[T]()
		}
	}
	if !o.Valid {
		return nil
	}
	return f.Value(&o.Value, label, "")
}

func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Option[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

func (o Option[T]) MarshalYAML() (any, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.Value, nil
}

func (o *Option[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := node.Decode(&v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
