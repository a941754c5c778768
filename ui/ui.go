// Package ui defines the immediate-mode widget surface that form builders
// render into.
//
// A host owns the window, the event loop and the redraw cycle. Once per
// frame it hands a UI to a form builder, which calls the widget methods in
// layout order. Each method both draws the widget and reports what the user
// did to it since the previous frame, so builders never block and never hold
// widget state of their own.
package ui

// UI is implemented by rendering hosts.
type UI interface {
	// Label draws static text.
	Label(text string)

	// TextEdit draws a single-line editor bound to text and reports
	// whether the text changed during this frame.
	TextEdit(text *string) bool

	// PasswordEdit is TextEdit without echoing the characters.
	PasswordEdit(text *string) bool

	// Checkbox draws a labelled checkbox bound to checked and reports
	// whether it was toggled during this frame.
	Checkbox(checked *bool, label string) bool

	// Button draws a button and reports whether it was clicked.
	Button(label string) bool

	// ComboBox draws a selector showing selected and listing options.
	// When the user picks an option during this frame it returns the
	// option index and true.
	ComboBox(label, selected string, options []string) (int, bool)

	// FileDialog draws a button that opens a native file dialog described
	// by req. When the dialog completes, the chosen path is stored in path
	// and FileDialog reports true for that frame.
	FileDialog(label string, req DialogRequest, path *string) bool
}

// DialogMode selects between picking an existing file and naming a new one.
type DialogMode int

const (
	DialogOpen DialogMode = iota
	DialogSave
)

// String returns the mode name.
func (m DialogMode) String() string {
	if m == DialogSave {
		return "save"
	}
	return "open"
}

// Filter restricts a file dialog to a set of extensions.
type Filter struct {
	Name       string
	Extensions []string
}

// DialogRequest carries the optional presentation hints for a file dialog.
type DialogRequest struct {
	Mode        DialogMode
	Title       string
	Filter      *Filter
	InitialDir  string
	InitialFile string
}
