// Package tui hosts immediate-mode form builders in a bubbletea program.
//
// Every message runs one frame of the builder. Widgets are laid out in call
// order; the keyboard moves a focus cursor between them:
//
//	tab, down        next widget
//	shift+tab, up    previous widget
//	enter, space     press buttons, toggle checkboxes, open file dialogs
//	left, right      cycle combo box options
//	esc, ctrl+c      abandon the form
//
// The focused text edit is backed by a bubbles textinput; file dialogs open
// a bubbles filepicker (open) or a path input (save).
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonhull/userprompt/ui"
)

// Model is the bubbletea model driving a form builder.
type Model struct {
	title string
	build func(ui.UI) error

	widgets []widget
	err     error
	focus   int

	input     textinput.Model
	bound     int
	boundKind kind

	pending *action

	dialog    *dialog
	submitted bool
	abandoned bool
}

// dialog is an open file dialog for the widget at index.
type dialog struct {
	index  int
	mode   ui.DialogMode
	picker filepicker.Model
	path   textinput.Model
}

// NewModel creates a model and runs the first frame.
func NewModel(title string, build func(ui.UI) error) Model {
	m := Model{
		title: title,
		build: build,
		input: textinput.New(),
		bound: -1,
	}
	m.input.Prompt = ""
	m.runFrame()
	m.focus = m.step(-1, 1)
	m.bind()
	return m
}

// Run shows build in a bubbletea program until the user submits or
// abandons the form. It reports whether the form was submitted.
func Run(ctx context.Context, title string, build func(ui.UI) error, opts ...tea.ProgramOption) (bool, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(NewModel(title, build), opts...).Run()
	if err != nil {
		return false, fmt.Errorf("running form: %w", err)
	}
	return final.(Model).Submitted(), nil
}

// Submitted reports whether the user submitted a valid form.
func (m Model) Submitted() bool { return m.submitted }

// Err returns the builder's result from the last frame.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.dialog != nil {
		cmd = m.updateDialog(msg)
	} else if key, ok := msg.(tea.KeyMsg); ok {
		cmd = m.handleKey(key)
	} else if m.bound >= 0 {
		m.input, cmd = m.input.Update(msg)
	}
	if m.submitted || m.abandoned {
		return m, tea.Quit
	}

	m.runFrame()
	m.bind()
	return m, cmd
}

func (m *Model) handleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "ctrl+c", "esc":
		m.abandoned = true
		return nil
	case "tab", "down":
		m.focus = m.step(m.focus, 1)
		return nil
	case "shift+tab", "up":
		m.focus = m.step(m.focus, -1)
		return nil
	case "left":
		m.cycle(-1)
		return nil
	case "right":
		m.cycle(1)
		return nil
	case "enter":
		return m.activate()
	}

	if m.bound >= 0 {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(key)
		return cmd
	}
	if key.Type == tea.KeySpace {
		return m.activate()
	}
	return nil
}

// activate presses the focused widget.
func (m *Model) activate() tea.Cmd {
	w, ok := m.focused()
	if !ok {
		return nil
	}
	switch w.kind {
	case kindText, kindPassword:
		m.focus = m.step(m.focus, 1)
	case kindCheckbox, kindButton:
		m.pending = &action{index: m.focus, kind: w.kind}
	case kindCombo:
		m.cycle(1)
	case kindFileDialog:
		return m.openDialog(w)
	case kindSubmit:
		if m.err == nil {
			m.submitted = true
		}
	}
	return nil
}

// cycle picks the previous or next option of a focused combo box.
func (m *Model) cycle(delta int) {
	w, ok := m.focused()
	if !ok || w.kind != kindCombo || len(w.options) == 0 {
		return
	}
	cur := slices.Index(w.options, w.text)
	next := 0
	if cur >= 0 {
		next = (cur + delta + len(w.options)) % len(w.options)
	} else if delta < 0 {
		next = len(w.options) - 1
	}
	m.pending = &action{index: m.focus, kind: kindCombo, option: next}
}

func (m *Model) openDialog(w widget) tea.Cmd {
	d := &dialog{index: m.focus, mode: w.req.Mode}
	if w.req.Mode == ui.DialogSave {
		d.path = textinput.New()
		d.path.Prompt = "Save as: "
		d.path.SetValue(filepath.Join(w.req.InitialDir, w.req.InitialFile))
		m.dialog = d
		return d.path.Focus()
	}

	d.picker = filepicker.New()
	d.picker.CurrentDirectory = "."
	if w.req.InitialDir != "" {
		d.picker.CurrentDirectory = w.req.InitialDir
	}
	if w.req.Filter != nil {
		for _, ext := range w.req.Filter.Extensions {
			d.picker.AllowedTypes = append(d.picker.AllowedTypes, "."+strings.TrimPrefix(ext, "."))
		}
	}
	m.dialog = d
	return d.picker.Init()
}

func (m *Model) updateDialog(msg tea.Msg) tea.Cmd {
	d := m.dialog
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			m.abandoned = true
			return nil
		case "esc":
			m.dialog = nil
			return nil
		case "enter":
			if d.mode == ui.DialogSave {
				m.finishDialog(d.path.Value())
				return nil
			}
		}
	}

	var cmd tea.Cmd
	if d.mode == ui.DialogSave {
		d.path, cmd = d.path.Update(msg)
		return cmd
	}
	d.picker, cmd = d.picker.Update(msg)
	if ok, path := d.picker.DidSelectFile(msg); ok {
		m.finishDialog(path)
	}
	return cmd
}

func (m *Model) finishDialog(path string) {
	m.pending = &action{index: m.dialog.index, kind: kindFileDialog, path: path}
	m.dialog = nil
}

// runFrame runs the builder and appends the submit row. A frame that
// consumed an action is run again so the widgets show its effect.
func (m *Model) runFrame() {
	acted := m.pending != nil
	f := &frame{m: m}
	m.err = m.build(f)
	if acted && m.pending == nil {
		f = &frame{m: m}
		m.err = m.build(f)
	}
	m.pending = nil
	f.add(widget{kind: kindSubmit, label: "Submit"})
	m.widgets = f.widgets

	if m.focus >= len(m.widgets) {
		m.focus = len(m.widgets) - 1
	}
	if !m.widgets[m.focus].kind.focusable() {
		m.focus = m.step(m.focus, 1)
	}
}

// bind attaches the text input to the focused edit, loading its text.
func (m *Model) bind() {
	w, ok := m.focused()
	if !ok || !w.kind.editable() {
		m.input.Blur()
		m.bound = -1
		return
	}
	if m.bound == m.focus && m.boundKind == w.kind {
		return
	}
	m.bound, m.boundKind = m.focus, w.kind
	m.input.SetValue(w.text)
	m.input.CursorEnd()
	m.input.EchoMode = textinput.EchoNormal
	if w.kind == kindPassword {
		m.input.EchoMode = textinput.EchoPassword
	}
	m.input.Focus()
}

func (m *Model) focused() (widget, bool) {
	if m.focus < 0 || m.focus >= len(m.widgets) {
		return widget{}, false
	}
	return m.widgets[m.focus], true
}

// step returns the next focusable widget index from i in direction dir,
// wrapping around.
func (m *Model) step(i, dir int) int {
	n := len(m.widgets)
	for range n {
		i = (i + dir + n) % n
		if m.widgets[i].kind.focusable() {
			return i
		}
	}
	return n - 1
}
