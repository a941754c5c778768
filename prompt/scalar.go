package prompt

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
)

// ParseBool accepts yes, y, true, no, n and false in any case.
func ParseBool(text string) (bool, error) {
	switch strings.ToLower(text) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not yes or no", ErrConversion, text)
}

// Parse converts text into a scalar T. T must be a string, bool, integer or
// float kind, or implement encoding.TextUnmarshaler through its pointer.
func Parse[T any](text string) (T, error) {
	var out T
	err := parseInto(reflect.ValueOf(&out).Elem(), text)
	return out, err
}

// Format renders a scalar the way Parse reads it back.
func Format[T any](v T) string {
	return formatScalar(reflect.ValueOf(&v).Elem())
}

func isScalar(t reflect.Type) bool {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// parseInto parses text into the addressable scalar v. v is left unchanged
// on failure.
func parseInto(v reflect.Value, text string) error {
	if reflect.PointerTo(v.Type()).Implements(textUnmarshalerType) {
		tmp := reflect.New(v.Type())
		if err := tmp.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return fmt.Errorf("%w: %w", ErrConversion, err)
		}
		v.Set(tmp.Elem())
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(text)
	case reflect.Bool:
		b, err := ParseBool(text)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, v.Type().Bits())
		if err != nil {
			return conversionError(v.Type(), text)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(text, 10, v.Type().Bits())
		if err != nil {
			return conversionError(v.Type(), text)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, v.Type().Bits())
		if err != nil {
			return conversionError(v.Type(), text)
		}
		v.SetFloat(f)
	default:
		return &UnsupportedTypeError{Type: v.Type(), Reason: "not a scalar"}
	}
	return nil
}

func conversionError(t reflect.Type, text string) error {
	return fmt.Errorf("%w: %q is not a valid %v", ErrConversion, text, t)
}

func formatScalar(v reflect.Value) string {
	if v.Type().Implements(textMarshalerType) {
		if b, err := v.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(b)
		}
	}
	if v.CanAddr() && reflect.PointerTo(v.Type()).Implements(textMarshalerType) {
		if b, err := v.Addr().Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(b)
		}
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits())
	}
	return fmt.Sprint(v.Interface())
}
