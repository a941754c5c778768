package tui

import (
	"slices"

	"github.com/simonhull/userprompt/ui"
)

type kind int

const (
	kindLabel kind = iota
	kindText
	kindPassword
	kindCheckbox
	kindButton
	kindCombo
	kindFileDialog
	kindSubmit
)

func (k kind) focusable() bool { return k != kindLabel }

func (k kind) editable() bool { return k == kindText || k == kindPassword }

// widget is what one ui.UI call drew during the last frame.
type widget struct {
	kind    kind
	label   string
	text    string
	checked bool
	options []string
	req     ui.DialogRequest
}

// action is user input aimed at the widget drawn at index during the next
// frame.
type action struct {
	index  int
	kind   kind
	option int
	path   string
}

// frame is the ui.UI handed to the builder for a single pass. Widgets are
// identified by their position in call order.
type frame struct {
	m       *Model
	widgets []widget
}

var _ ui.UI = (*frame)(nil)

func (f *frame) next() int { return len(f.widgets) }

func (f *frame) add(w widget) { f.widgets = append(f.widgets, w) }

func (f *frame) take(idx int, k kind) (action, bool) {
	a := f.m.pending
	if a == nil || a.index != idx || a.kind != k {
		return action{}, false
	}
	f.m.pending = nil
	return *a, true
}

func (f *frame) Label(text string) {
	f.add(widget{kind: kindLabel, label: text})
}

func (f *frame) TextEdit(text *string) bool { return f.edit(kindText, text) }

func (f *frame) PasswordEdit(text *string) bool { return f.edit(kindPassword, text) }

// edit binds the focused editor's buffer to text.
func (f *frame) edit(k kind, text *string) bool {
	idx := f.next()
	changed := false
	if f.m.bound == idx && f.m.boundKind == k {
		if v := f.m.input.Value(); v != *text {
			*text = v
			changed = true
		}
	}
	f.add(widget{kind: k, text: *text})
	return changed
}

func (f *frame) Checkbox(checked *bool, label string) bool {
	_, toggled := f.take(f.next(), kindCheckbox)
	if toggled {
		*checked = !*checked
	}
	f.add(widget{kind: kindCheckbox, label: label, checked: *checked})
	return toggled
}

func (f *frame) Button(label string) bool {
	_, clicked := f.take(f.next(), kindButton)
	f.add(widget{kind: kindButton, label: label})
	return clicked
}

func (f *frame) ComboBox(label, selected string, options []string) (int, bool) {
	a, chosen := f.take(f.next(), kindCombo)
	chosen = chosen && a.option >= 0 && a.option < len(options)
	if chosen {
		selected = options[a.option]
	}
	f.add(widget{kind: kindCombo, label: label, text: selected, options: slices.Clone(options)})
	if !chosen {
		return 0, false
	}
	return a.option, true
}

func (f *frame) FileDialog(label string, req ui.DialogRequest, path *string) bool {
	a, done := f.take(f.next(), kindFileDialog)
	if done {
		*path = a.path
	}
	f.add(widget{kind: kindFileDialog, label: label, text: *path, req: req})
	return done
}
