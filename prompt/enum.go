package prompt

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Variant describes one alternative of an enum.
type Variant struct {
	Name    string
	Comment string
	Type    reflect.Type
}

// NewVariant describes variant type T, named after T (or the type T points
// to).
func NewVariant[T any](comment string) Variant {
	t := reflect.TypeFor[T]()
	name := t.Name()
	if t.Kind() == reflect.Pointer {
		name = t.Elem().Name()
	}
	return Variant{Name: name, Comment: comment, Type: t}
}

// VariantIndex returns the index of the variant whose type is the dynamic
// type of value, or -1.
func VariantIndex(variants []Variant, value any) int {
	if value == nil {
		return -1
	}
	t := reflect.TypeOf(value)
	return slices.IndexFunc(variants, func(v Variant) bool { return v.Type == t })
}

type enumEntry interface {
	promptValue(s *Session, v reflect.Value, label, comment string) error
	formValue(f *Form, v reflect.Value, label, comment string) error
}

var registry = struct {
	sync.RWMutex
	enums map[reflect.Type]enumEntry
}{enums: make(map[reflect.Type]enumEntry)}

func lookupEnum(t reflect.Type) (enumEntry, bool) {
	registry.RLock()
	defer registry.RUnlock()
	e, ok := registry.enums[t]
	return e, ok
}

// Enum is a registered sum type: an interface I and the ordered list of
// variant types implementing it.
type Enum[I any] struct {
	variants []Variant
	prompt   func(s *Session, label, comment string) (I, error)
	form     func(f *Form, v *I, label, comment string) error
}

// RegisterEnum registers interface I with its variants so that fields of
// type I can be prompted and rendered. It panics when I is not an interface
// or a variant does not implement it, mirroring regexp.MustCompile.
func RegisterEnum[I any](variants ...Variant) *Enum[I] {
	t := reflect.TypeFor[I]()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("prompt: RegisterEnum: %v is not an interface", t))
	}
	for _, v := range variants {
		switch {
		case v.Type == nil:
			panic(fmt.Sprintf("prompt: RegisterEnum: variant %q of %v has no type", v.Name, t))
		case !v.Type.Implements(t):
			panic(fmt.Sprintf("prompt: RegisterEnum: %v does not implement %v", v.Type, t))
		case v.Name == "":
			panic(fmt.Sprintf("prompt: RegisterEnum: variant %v of %v has no name", v.Type, t))
		}
	}

	e := &Enum[I]{variants: slices.Clone(variants)}
	registry.Lock()
	registry.enums[t] = e
	registry.Unlock()
	return e
}

// WithPrompt replaces reflective prompting with fn.
func (e *Enum[I]) WithPrompt(fn func(s *Session, label, comment string) (I, error)) *Enum[I] {
	e.prompt = fn
	return e
}

// WithForm replaces reflective form rendering with fn.
func (e *Enum[I]) WithForm(fn func(f *Form, v *I, label, comment string) error) *Enum[I] {
	e.form = fn
	return e
}

// Variants returns the registered variants in order.
func (e *Enum[I]) Variants() []Variant { return slices.Clone(e.variants) }

// Index returns the index of v's variant, or -1 when v is nil.
func (e *Enum[I]) Index(v I) int {
	return VariantIndex(e.variants, any(v))
}

// Prompt asks for a variant and then for its fields.
func (e *Enum[I]) Prompt(s *Session, label, comment string) (I, error) {
	if e.prompt != nil {
		return e.prompt(s, label, comment)
	}
	var out I
	idx, err := s.ChooseVariant(label, e.variants)
	if err != nil {
		return out, err
	}
	val, err := s.variant(e.variants[idx].Type)
	if err != nil {
		return out, err
	}
	return val.Interface().(I), nil
}

// BuildForm renders the variant selector and the active variant's fields.
func (e *Enum[I]) BuildForm(f *Form, v *I, label, comment string) error {
	if e.form != nil {
		return e.form(f, v, label, comment)
	}
	if idx, ok := f.ChooseVariant(label, e.variants, e.Index(*v)); ok {
		*v = ZeroVariant(e.variants[idx]).(I)
	}
	if any(*v) == nil {
		return nil
	}
	val, err := f.variant(reflect.ValueOf(any(*v)), label)
	*v = val.Interface().(I)
	return err
}

func (e *Enum[I]) promptValue(s *Session, v reflect.Value, label, comment string) error {
	out, err := e.Prompt(s, label, comment)
	if err != nil {
		return err
	}
	v.Set(reflect.ValueOf(&out).Elem())
	return nil
}

func (e *Enum[I]) formValue(f *Form, v reflect.Value, label, comment string) error {
	return e.BuildForm(f, v.Addr().Interface().(*I), label, comment)
}

// ZeroVariant returns the zero value of a variant. Pointer variants get a
// freshly allocated zero value.
func ZeroVariant(v Variant) any {
	if v.Type.Kind() == reflect.Pointer {
		return reflect.New(v.Type.Elem()).Interface()
	}
	return reflect.Zero(v.Type).Interface()
}

// ChooseVariant lists variants under label and reads names until one
// matches exactly. It returns the index of the chosen variant.
func (s *Session) ChooseVariant(label string, variants []Variant) (int, error) {
	if len(variants) == 0 {
		return -1, errors.New("prompt: enum has no variants")
	}
	idx := -1
	err := s.retry(label, "Invalid option", func() (bool, error) {
		s.Heading(label)
		s.term.Println("Enter the variant type, valid options are listed below")
		for _, v := range variants {
			if v.Comment != "" {
				s.term.Println(fmt.Sprintf("\t%s - %s", v.Name, v.Comment))
			} else {
				s.term.Println("\t" + v.Name)
			}
		}
		text, err := s.readLine("")
		if err != nil {
			return false, err
		}
		idx = slices.IndexFunc(variants, func(v Variant) bool { return v.Name == text })
		return idx >= 0, nil
	})
	return idx, err
}

// variant prompts for the fields of a new value of variant type t.
func (s *Session) variant(t reflect.Type) (reflect.Value, error) {
	p, elem := newVariant(t)
	if elem.Kind() == reflect.Struct {
		if err := s.fields(elem, fieldsOf(elem.Type())); err != nil {
			return reflect.Value{}, err
		}
	} else if err := s.value(elem, "0", ""); err != nil {
		return reflect.Value{}, err
	}
	if t.Kind() == reflect.Pointer {
		return p, nil
	}
	return elem, nil
}

// variant renders the fields of the dynamic enum value v and returns the
// possibly updated value.
func (f *Form) variant(v reflect.Value, label string) (reflect.Value, error) {
	var elem reflect.Value
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v = reflect.New(v.Type().Elem())
		}
		elem = v.Elem()
	} else {
		elem = reflect.New(v.Type()).Elem()
		elem.Set(v)
	}

	var err error
	if elem.Kind() == reflect.Struct {
		err = f.fields(elem, label, fieldsOf(elem.Type()))
	} else {
		err = f.value(elem, Sub(label, "0"), "")
	}
	if v.Kind() == reflect.Pointer {
		return v, err
	}
	return elem, err
}

func newVariant(t reflect.Type) (ptr, elem reflect.Value) {
	base := t
	if t.Kind() == reflect.Pointer {
		base = t.Elem()
	}
	ptr = reflect.New(base)
	return ptr, ptr.Elem()
}
