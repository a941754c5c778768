package prompt

import (
	"errors"
	"reflect"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/simonhull/userprompt/ui"
)

// FormBuilder is implemented by types that render themselves into a Form.
// BuildForm is called once per frame, edits the receiver in place and
// returns a validation error while the value is not acceptable.
type FormBuilder interface {
	BuildForm(f *Form, label, comment string) error
}

var formBuilderType = reflect.TypeFor[FormBuilder]()

// Form is a ui.UI plus the context form builders need.
type Form struct {
	ui.UI
	fs  afero.Fs
	log *log.Logger
}

// NewForm wraps u. WithFs and WithLogger apply; WithMaxAttempts is ignored.
func NewForm(u ui.UI, opts ...Setting) *Form {
	cfg := apply(opts)
	return &Form{UI: u, fs: cfg.fs, log: cfg.log}
}

// Build returns a frame function for hosts that renders ptr under label.
func Build(ptr any, label string, opts ...Setting) func(ui.UI) error {
	return func(u ui.UI) error {
		return NewForm(u, opts...).Value(ptr, label, "")
	}
}

// Fs returns the filesystem used for existence checks.
func (f *Form) Fs() afero.Fs { return f.fs }

// Heading draws label when it is not empty.
func (f *Form) Heading(label string) {
	if label != "" {
		f.Label(label)
	}
}

// Comment draws comment when it is not empty.
func (f *Form) Comment(comment string) {
	if comment != "" {
		f.Label(comment)
	}
}

// Text draws a labelled text edit bound to text.
func (f *Form) Text(text *string, label, comment string) bool {
	f.Comment(comment)
	f.Heading(label)
	return f.TextEdit(text)
}

// Parsed draws a text edit showing current and calls parse with the edited
// text. Text that fails to parse is dropped.
func (f *Form) Parsed(current, label, comment string, parse func(text string) error) {
	text := current
	if f.Text(&text, label, comment) {
		if err := parse(text); err != nil {
			f.log.Debug("edit rejected", "label", label, "err", err)
		}
	}
}

// Check draws a checkbox labelled with label, or "Item" when label is
// empty.
func (f *Form) Check(checked *bool, label, comment string) bool {
	f.Comment(comment)
	if label == "" {
		label = "Item"
	}
	return f.Checkbox(checked, label)
}

// AddButton draws the "Add another" button of a sequence.
func (f *Form) AddButton() bool {
	return f.Button("Add another")
}

// ChooseVariant draws the variant combo box of an enum. current is the
// active variant index or -1. It returns the picked index when the user
// made a selection during this frame.
func (f *Form) ChooseVariant(label string, variants []Variant, current int) (int, bool) {
	title := "Select"
	if label != "" {
		title = "Select a " + label
	}
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	selected := ""
	if current >= 0 && current < len(names) {
		selected = names[current]
	}
	return f.ComboBox(title, selected, names)
}

// Value renders the value ptr points to.
func (f *Form) Value(ptr any, label, comment string) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &UnsupportedTypeError{Type: reflect.TypeOf(ptr), Reason: "target must be a non-nil pointer"}
	}
	return f.value(rv.Elem(), label, comment)
}

// Optional renders the pointer pp points to as an optional value: a
// checkbox that allocates or clears it, followed by the value itself.
func (f *Form) Optional(pp any, label, comment string) error {
	rv := reflect.ValueOf(pp)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Pointer {
		return &UnsupportedTypeError{Type: reflect.TypeOf(pp), Reason: "optional target must be a pointer to a pointer"}
	}
	return f.optional(rv.Elem(), label, comment)
}

func (f *Form) value(v reflect.Value, label, comment string) error {
	t := v.Type()
	if reflect.PointerTo(t).Implements(formBuilderType) {
		return v.Addr().Interface().(FormBuilder).BuildForm(f, label, comment)
	}
	if t.Kind() == reflect.Interface {
		e, ok := lookupEnum(t)
		if !ok {
			return &UnsupportedTypeError{Type: t, Reason: "interface is not a registered enum"}
		}
		return e.formValue(f, v, label, comment)
	}
	if isScalar(t) {
		if t.Kind() == reflect.Bool && !reflect.PointerTo(t).Implements(textUnmarshalerType) {
			b := v.Bool()
			if f.Check(&b, label, comment) {
				v.SetBool(b)
			}
			return nil
		}
		f.Parsed(formatScalar(v), label, comment, func(text string) error {
			return parseInto(v, text)
		})
		return nil
	}

	switch t.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return f.value(v.Elem(), label, comment)
	case reflect.Slice:
		return f.sequence(v, label, comment)
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return &UnsupportedTypeError{Type: t, Reason: "map keys must be strings"}
		}
		return f.mapping(v, label, comment)
	case reflect.Struct:
		f.Comment(comment)
		f.Heading(label)
		return f.fields(v, label, fieldsOf(t))
	}
	return &UnsupportedTypeError{Type: t}
}

func (f *Form) optional(v reflect.Value, label, comment string) error {
	checked := !v.IsNil()
	if f.Check(&checked, label, comment) {
		if checked {
			v.Set(reflect.New(v.Type().Elem()))
		} else {
			v.SetZero()
		}
	}
	if v.IsNil() {
		return nil
	}
	return f.value(v.Elem(), label, "")
}

func (f *Form) sequence(v reflect.Value, label, comment string) error {
	f.Comment(comment)
	f.Heading(label)
	var errs []error
	for i := range v.Len() {
		errs = append(errs, f.value(v.Index(i), Sub(label, strconv.Itoa(i+1)), ""))
	}
	if f.AddButton() {
		v.Set(reflect.Append(v, reflect.New(v.Type().Elem()).Elem()))
	}
	return errors.Join(errs...)
}

func (f *Form) mapping(v reflect.Value, label, comment string) error {
	f.Comment(comment)
	f.Heading(label)
	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})
	var errs []error
	for _, k := range keys {
		elem := reflect.New(v.Type().Elem()).Elem()
		elem.Set(v.MapIndex(k))
		errs = append(errs, f.value(elem, Sub(label, k.String()), ""))
		v.SetMapIndex(k, elem)
	}
	return errors.Join(errs...)
}

// fields renders every field of the struct v under label/field and joins
// their validation errors.
func (f *Form) fields(v reflect.Value, label string, fields []field) error {
	var errs []error
	for _, fd := range fields {
		fv := v.Field(fd.index)
		name := Sub(label, fd.Label)
		if fd.Optional && fv.Kind() == reflect.Pointer {
			errs = append(errs, f.optional(fv, name, fd.Help))
			continue
		}
		errs = append(errs, f.value(fv, name, fd.Help))
	}
	return errors.Join(errs...)
}
