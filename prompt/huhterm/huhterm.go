// Package huhterm implements prompt.Terminal with charmbracelet/huh: every
// read is a single-field form.
package huhterm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/simonhull/userprompt/prompt"
)

// Terminal asks each question with a one-input huh form.
type Terminal struct {
	in         io.Reader
	out        io.Writer
	theme      *huh.Theme
	accessible bool
}

var _ prompt.Terminal = (*Terminal)(nil)

// Option configures a Terminal.
type Option func(*Terminal)

// WithTheme sets the form theme. Defaults to huh.ThemeCharm.
func WithTheme(theme *huh.Theme) Option {
	return func(t *Terminal) { t.theme = theme }
}

// WithAccessible switches huh into its accessible, line-based mode.
func WithAccessible(on bool) Option {
	return func(t *Terminal) { t.accessible = on }
}

// WithIO sets the input and output streams. Defaults to stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(t *Terminal) {
		t.in = in
		t.out = out
	}
}

// New creates a Terminal.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		in:    os.Stdin,
		out:   os.Stdout,
		theme: huh.ThemeCharm(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) Println(text string) {
	fmt.Fprintln(t.out, text)
}

func (t *Terminal) ReadLine(title string) (string, error) {
	return t.ask(title, huh.EchoModeNormal)
}

func (t *Terminal) ReadPassword(title string) (string, error) {
	return t.ask(title, huh.EchoModePassword)
}

// ask runs the form. Aborting it with ctrl+c is reported as a closed
// stream.
func (t *Terminal) ask(title string, mode huh.EchoMode) (string, error) {
	var value string
	form := t.form(title, mode, &value)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", io.EOF
		}
		return "", err
	}
	return value, nil
}

func (t *Terminal) form(title string, mode huh.EchoMode, value *string) *huh.Form {
	input := huh.NewInput().
		Value(value).
		EchoMode(mode)
	if title != "" {
		input = input.Title(title)
	}
	return huh.NewForm(huh.NewGroup(input)).
		WithTheme(t.theme).
		WithAccessible(t.accessible).
		WithShowHelp(false).
		WithInput(t.in).
		WithOutput(t.out)
}
