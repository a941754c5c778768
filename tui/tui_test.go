package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/userprompt/internal/demo"
	"github.com/simonhull/userprompt/prompt"
	"github.com/simonhull/userprompt/ui"
)

type settings struct {
	Name    string
	Enabled bool
	Mode    string
	Path    string
}

func (s *settings) build(u ui.UI) error {
	u.Label("Name")
	u.TextEdit(&s.Name)
	u.Checkbox(&s.Enabled, "Enabled")
	modes := []string{"fast", "safe"}
	if i, ok := u.ComboBox("Mode", s.Mode, modes); ok {
		s.Mode = modes[i]
	}
	u.FileDialog("Update path", ui.DialogRequest{Mode: ui.DialogSave}, &s.Path)
	if s.Name == "" {
		return errors.New("name is blank")
	}
	return nil
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestNewModelFocusesFirstWidget(t *testing.T) {
	s := &settings{}
	m := NewModel("Settings", s.build)

	require.Len(t, m.widgets, 6)
	assert.Equal(t, 1, m.focus, "labels are skipped")
	assert.Equal(t, 1, m.bound)
	assert.EqualError(t, m.Err(), "name is blank")
}

func TestTypingEditsFocusedText(t *testing.T) {
	s := &settings{}
	m := NewModel("", s.build)

	m = send(t, m, runes("ada"))
	assert.Equal(t, "ada", s.Name)
	assert.NoError(t, m.Err())
}

func TestFocusMovesAndWraps(t *testing.T) {
	s := &settings{}
	m := NewModel("", s.build)

	m = send(t, m, key(tea.KeyTab))
	assert.Equal(t, 2, m.focus)
	assert.Equal(t, -1, m.bound)

	m = send(t, m, key(tea.KeyShiftTab), key(tea.KeyShiftTab))
	assert.Equal(t, 5, m.focus, "wraps to the submit row")

	m = send(t, m, key(tea.KeyDown))
	assert.Equal(t, 1, m.focus)
}

func TestCheckboxAndCombo(t *testing.T) {
	s := &settings{}
	m := NewModel("", s.build)

	m = send(t, m, key(tea.KeyTab), key(tea.KeySpace))
	assert.True(t, s.Enabled)

	m = send(t, m, key(tea.KeyEnter))
	assert.False(t, s.Enabled)

	m = send(t, m, key(tea.KeyTab), key(tea.KeyRight))
	assert.Equal(t, "fast", s.Mode)

	m = send(t, m, key(tea.KeyRight))
	assert.Equal(t, "safe", s.Mode)

	send(t, m, key(tea.KeyLeft))
	assert.Equal(t, "fast", s.Mode)
}

func TestComboCyclesEnumVariants(t *testing.T) {
	var sh demo.Shape
	m := NewModel("", prompt.Build(&sh, "shape"))
	require.Equal(t, kindCombo, m.widgets[m.focus].kind)

	m = send(t, m, key(tea.KeyRight))
	assert.Equal(t, demo.Circle{}, sh)

	m = send(t, m, key(tea.KeyRight))
	assert.Equal(t, demo.Rectangle{}, sh)
	assert.Equal(t, "Rectangle", m.widgets[0].text)

	var labels []string
	for _, w := range m.widgets {
		if w.kind == kindLabel {
			labels = append(labels, w.label)
		}
	}
	assert.Equal(t, []string{"shape/width", "shape/height"}, labels, "fields of the picked variant show at once")

	m = send(t, m, key(tea.KeyTab), runes("5"))
	assert.Equal(t, demo.Rectangle{Width: 5}, sh)

	m = send(t, m, key(tea.KeyShiftTab), key(tea.KeyRight))
	_, ok := sh.(*demo.Named)
	assert.True(t, ok)

	send(t, m, key(tea.KeyLeft))
	assert.Equal(t, demo.Rectangle{}, sh, "picking resets to the zero variant")
}

func TestSaveDialog(t *testing.T) {
	s := &settings{}
	m := NewModel("", s.build)

	m = send(t, m, key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyEnter))
	require.NotNil(t, m.dialog)
	assert.Contains(t, m.View(), "Save as")

	m = send(t, m, runes("out.txt"), key(tea.KeyEnter))
	assert.Nil(t, m.dialog)
	assert.Equal(t, "out.txt", s.Path)
}

func TestDialogEscCancels(t *testing.T) {
	s := &settings{Path: "keep"}
	m := NewModel("", s.build)

	m = send(t, m, key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyEnter))
	m = send(t, m, runes("x"), key(tea.KeyEsc))
	assert.Nil(t, m.dialog)
	assert.Equal(t, "keep", s.Path)
	assert.False(t, m.abandoned)
}

func TestSubmitRequiresValidForm(t *testing.T) {
	s := &settings{}
	m := NewModel("", s.build)

	m = send(t, m, key(tea.KeyShiftTab))
	assert.Contains(t, m.View(), "Failed to validate: name is blank")

	m = send(t, m, key(tea.KeyEnter))
	assert.False(t, m.Submitted())

	m = send(t, m, key(tea.KeyTab), runes("bob"), key(tea.KeyShiftTab))
	assert.Contains(t, m.View(), "Submit")

	next, cmd := m.Update(key(tea.KeyEnter))
	assert.True(t, next.(Model).Submitted())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEscAbandons(t *testing.T) {
	s := &settings{}
	m := NewModel("", s.build)

	next, cmd := m.Update(key(tea.KeyEsc))
	assert.False(t, next.(Model).Submitted())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPasswordIsMasked(t *testing.T) {
	secret := "hunter2"
	m := NewModel("", func(u ui.UI) error {
		u.Button("noop")
		u.PasswordEdit(&secret)
		return nil
	})

	view := m.View()
	assert.NotContains(t, view, "hunter2")
	assert.Contains(t, view, "*******")
}
