package prompt

import (
	"fmt"
	"reflect"
)

var prompterType = reflect.TypeFor[Prompter]()

// value prompts for the addressable v.
func (s *Session) value(v reflect.Value, label, comment string) error {
	t := v.Type()
	if reflect.PointerTo(t).Implements(prompterType) {
		return v.Addr().Interface().(Prompter).Prompt(s, label, comment)
	}
	if t.Kind() == reflect.Interface {
		e, ok := lookupEnum(t)
		if !ok {
			return &UnsupportedTypeError{Type: t, Reason: "interface is not a registered enum"}
		}
		return e.promptValue(s, v, label, comment)
	}
	if isScalar(t) {
		if t.Kind() == reflect.Bool && !reflect.PointerTo(t).Implements(textUnmarshalerType) {
			b, err := s.Bool(label, comment)
			if err != nil {
				return err
			}
			v.SetBool(b)
			return nil
		}
		return s.scalar(label, comment, func(text string) error {
			return parseInto(v, text)
		})
	}

	switch t.Kind() {
	case reflect.Pointer:
		return s.indirect(v, label, comment)
	case reflect.Slice:
		return s.sequence(v, label, comment)
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &UnsupportedTypeError{Type: t, Reason: "map keys must be strings"}
		}
		return s.mapping(v, label, comment)
	case reflect.Struct:
		return s.structure(v, label, comment)
	}
	return &UnsupportedTypeError{Type: t}
}

// indirect allocates a fresh value behind the pointer v and prompts for it
// with the same label and comment.
func (s *Session) indirect(v reflect.Value, label, comment string) error {
	p := reflect.New(v.Type().Elem())
	if err := s.value(p.Elem(), label, comment); err != nil {
		return err
	}
	v.Set(p)
	return nil
}

func (s *Session) optional(v reflect.Value, label, comment string) error {
	ok, err := s.Include(label)
	if err != nil {
		return err
	}
	if !ok {
		v.SetZero()
		return nil
	}
	return s.indirect(v, label, comment)
}

func (s *Session) sequence(v reflect.Value, label, comment string) error {
	s.Comment(comment)
	if label != "" {
		s.term.Println("Enter a list of items for " + label)
	}
	out := reflect.MakeSlice(v.Type(), 0, 0)
	for {
		name := Sub(label, fmt.Sprintf("element%d", out.Len()+1))
		more, err := s.Bool("Provide "+name, "")
		if err != nil {
			return err
		}
		if !more {
			break
		}
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := s.value(elem, name, ""); err != nil {
			return err
		}
		out = reflect.Append(out, elem)
	}
	v.Set(out)
	return nil
}

func (s *Session) mapping(v reflect.Value, label, comment string) error {
	t := v.Type()
	out := reflect.MakeMap(t)
	err := s.Entries(label, comment, func(key string) error {
		elem := reflect.New(t.Elem()).Elem()
		if err := s.value(elem, key, ""); err != nil {
			return err
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), elem)
		return nil
	})
	if err != nil {
		return err
	}
	v.Set(out)
	return nil
}

// Entries runs the key loop of a map prompt: it reads key names until a
// blank one and calls each for every key read.
func (s *Session) Entries(label, comment string, each func(key string) error) error {
	s.Comment(comment)
	s.Heading(label)
	for {
		key, err := s.readLine("Enter key name (blank to end)")
		if err != nil {
			return err
		}
		if key == "" {
			s.term.Println("Done")
			return nil
		}
		if err := each(key); err != nil {
			return err
		}
	}
}

// structure fills a copy of v field by field and stores it only when every
// field succeeded.
func (s *Session) structure(v reflect.Value, label, comment string) error {
	s.Heading(label)
	s.Comment(comment)
	out := reflect.New(v.Type()).Elem()
	out.Set(v)
	if err := s.fields(out, fieldsOf(v.Type())); err != nil {
		return err
	}
	v.Set(out)
	return nil
}

func (s *Session) fields(v reflect.Value, fields []field) error {
	for _, f := range fields {
		fv := v.Field(f.index)
		var err error
		if f.Optional && fv.Kind() == reflect.Pointer {
			err = s.optional(fv, f.Label, f.Help)
		} else {
			err = s.value(fv, f.Label, f.Help)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
