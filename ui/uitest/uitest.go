// Package uitest provides a headless, scripted ui.UI for tests.
//
// A test queues user actions (typing, clicks, toggles, selections) and then
// runs a frame. Actions are consumed by the first matching widget drawn in
// that frame; anything left over is discarded when the frame ends, the same
// way a real host drops input aimed at a widget that is no longer on screen.
package uitest

import (
	"slices"

	"github.com/simonhull/userprompt/ui"
)

// Kind identifies the widget type that was drawn.
type Kind int

const (
	KindLabel Kind = iota
	KindText
	KindPassword
	KindCheckbox
	KindButton
	KindCombo
	KindFileDialog
)

// Widget is one recorded widget call.
type Widget struct {
	Kind    Kind
	Label   string
	Text    string
	Checked bool
	Options []string
	Request ui.DialogRequest
}

// Fake records widgets and replays queued user input.
type Fake struct {
	widgets []Widget
	edits   int

	typed   map[int]string
	clicks  map[string]int
	toggles map[string]int
	choices map[string]string
	files   map[string]string
}

var _ ui.UI = (*Fake)(nil)

// New returns an empty Fake.
func New() *Fake {
	f := &Fake{}
	f.reset()
	return f
}

func (f *Fake) reset() {
	f.typed = make(map[int]string)
	f.clicks = make(map[string]int)
	f.toggles = make(map[string]int)
	f.choices = make(map[string]string)
	f.files = make(map[string]string)
}

// Frame runs build as a single frame and returns its result.
func (f *Fake) Frame(build func(ui.UI) error) error {
	f.widgets = f.widgets[:0]
	f.edits = 0
	err := build(f)
	f.reset()
	return err
}

// Type queues text for the index-th text or password edit of the next frame.
func (f *Fake) Type(index int, text string) { f.typed[index] = text }

// Click queues a click on the button with the given label.
func (f *Fake) Click(label string) { f.clicks[label]++ }

// Toggle queues a toggle of the checkbox with the given label.
func (f *Fake) Toggle(label string) { f.toggles[label]++ }

// Choose queues picking option from the combo box with the given label.
func (f *Fake) Choose(label, option string) { f.choices[label] = option }

// PickFile queues a completed file dialog for the given dialog label.
func (f *Fake) PickFile(label, path string) { f.files[label] = path }

// Widgets returns the widgets drawn during the last frame.
func (f *Fake) Widgets() []Widget { return f.widgets }

// Labels returns the text of every Label drawn during the last frame.
func (f *Fake) Labels() []string {
	var out []string
	for _, w := range f.widgets {
		if w.Kind == KindLabel {
			out = append(out, w.Label)
		}
	}
	return out
}

// Count returns how many widgets of kind were drawn during the last frame.
func (f *Fake) Count(kind Kind) int {
	n := 0
	for _, w := range f.widgets {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Find returns the first widget of kind with the given label.
func (f *Fake) Find(kind Kind, label string) (Widget, bool) {
	for _, w := range f.widgets {
		if w.Kind == kind && w.Label == label {
			return w, true
		}
	}
	return Widget{}, false
}

func (f *Fake) Label(text string) {
	f.widgets = append(f.widgets, Widget{Kind: KindLabel, Label: text})
}

func (f *Fake) TextEdit(text *string) bool {
	return f.edit(KindText, text)
}

func (f *Fake) PasswordEdit(text *string) bool {
	return f.edit(KindPassword, text)
}

func (f *Fake) edit(kind Kind, text *string) bool {
	idx := f.edits
	f.edits++

	changed := false
	if v, ok := f.typed[idx]; ok {
		delete(f.typed, idx)
		changed = *text != v
		*text = v
	}
	f.widgets = append(f.widgets, Widget{Kind: kind, Text: *text})
	return changed
}

func (f *Fake) Checkbox(checked *bool, label string) bool {
	changed := false
	if f.toggles[label] > 0 {
		f.toggles[label]--
		*checked = !*checked
		changed = true
	}
	f.widgets = append(f.widgets, Widget{Kind: KindCheckbox, Label: label, Checked: *checked})
	return changed
}

func (f *Fake) Button(label string) bool {
	f.widgets = append(f.widgets, Widget{Kind: KindButton, Label: label})
	if f.clicks[label] > 0 {
		f.clicks[label]--
		return true
	}
	return false
}

func (f *Fake) ComboBox(label, selected string, options []string) (int, bool) {
	f.widgets = append(f.widgets, Widget{
		Kind:    KindCombo,
		Label:   label,
		Text:    selected,
		Options: slices.Clone(options),
	})
	opt, ok := f.choices[label]
	if !ok {
		return 0, false
	}
	delete(f.choices, label)
	idx := slices.Index(options, opt)
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

func (f *Fake) FileDialog(label string, req ui.DialogRequest, path *string) bool {
	f.widgets = append(f.widgets, Widget{Kind: KindFileDialog, Label: label, Text: *path, Request: req})
	p, ok := f.files[label]
	if !ok {
		return false
	}
	delete(f.files, label)
	*path = p
	return true
}
