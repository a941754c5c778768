// Package prompt fills Go values interactively, either by asking questions
// on a line-oriented terminal or by rendering an immediate-mode form.
//
// # Overview
//
// Two capabilities are provided for every supported type:
//
//   - Prompter: sequential text prompting through a Session. Scalars are
//     read one line at a time and re-asked until they parse; containers add
//     their own questions ("provide this optional value?", "add another
//     element?", "enter key name").
//   - FormBuilder: in-place editing through a Form wrapping a ui.UI. The
//     host calls it once per frame; it never blocks and returns a
//     validation error until the value is acceptable.
//
// Any struct, slice, string-keyed map, pointer, Option, SelectedMap,
// registered enum or scalar works through reflection. Types can also
// implement Prompter and FormBuilder directly; code emitted by
// `userprompt generate` does exactly that.
//
// # Usage
//
//	type Server struct {
//	    Host string         `help:"Hostname to bind"`
//	    Port uint16         `help:"TCP port"`
//	    TLS  *TLSConfig     `prompt:",optional"`
//	    Tags map[string]int `prompt:"tags"`
//	}
//
//	s := prompt.Stdio()
//	srv, err := prompt.Ask[Server](s, "server", "")
//
// # Struct tags
//
//   - prompt:"label"       overrides the label (default: the field name)
//   - prompt:",optional"   asks before filling a pointer field
//   - prompt:"-"           skips the field
//   - help:"text"          comment shown before the field is prompted
//
// # Enums
//
// Sum types are sealed interfaces whose variants are registered once:
//
//	type Shape interface{ isShape() }
//
//	var shapes = prompt.RegisterEnum[Shape](
//	    prompt.NewVariant[Circle]("a round shape"),
//	    prompt.NewVariant[Square](""),
//	)
//
// # Retries
//
// Rejected input is retried without limit unless the session was created
// with WithMaxAttempts.
package prompt
