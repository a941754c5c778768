package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/simonhull/userprompt/ui"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).MarginBottom(1)
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, true)
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	submitStyle   = buttonStyle.Foreground(lipgloss.Color("10"))
	checkedMark   = "[x]"
	uncheckedMark = "[ ]"
)

const help = "tab/shift+tab move • enter/space activate • ←/→ choose • esc quit"

func (m Model) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString("\n")
	}

	if m.dialog != nil {
		b.WriteString(m.dialogView())
		return b.String()
	}

	for i, w := range m.widgets {
		line := m.widgetView(i, w)
		if i == m.focus {
			line = focusStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(help))
	return b.String()
}

func (m Model) widgetView(i int, w widget) string {
	switch w.kind {
	case kindLabel:
		return w.label
	case kindText, kindPassword:
		if i == m.bound {
			return m.input.View()
		}
		if w.kind == kindPassword {
			return mutedStyle.Render(strings.Repeat("*", len([]rune(w.text))))
		}
		return mutedStyle.Render(w.text)
	case kindCheckbox:
		mark := uncheckedMark
		if w.checked {
			mark = checkedMark
		}
		return mark + " " + w.label
	case kindButton, kindFileDialog:
		return buttonStyle.Render(w.label)
	case kindCombo:
		selected := w.text
		if selected == "" {
			selected = mutedStyle.Render("none")
		}
		return w.label + ": ‹ " + selected + " ›"
	case kindSubmit:
		if m.err != nil {
			return errorStyle.Render("Failed to validate: " + m.err.Error())
		}
		return submitStyle.Render(w.label)
	}
	return ""
}

func (m Model) dialogView() string {
	d := m.dialog
	if d.mode == ui.DialogSave {
		return dialogStyle.Render(d.path.View()) + "\n" + mutedStyle.Render("enter confirm • esc cancel")
	}
	return dialogStyle.Render(d.picker.View()) + "\n" + mutedStyle.Render("enter select • esc cancel")
}
