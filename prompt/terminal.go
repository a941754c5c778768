package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Terminal is the line-oriented device a Session talks to.
//
// ReadLine and ReadPassword show prompt (when non-empty) and return the raw
// answer; the session strips line endings. ReadPassword must not echo.
type Terminal interface {
	Println(text string)
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}

// SecretReader reads one line of hidden input.
type SecretReader interface {
	ReadSecret() (string, error)
}

// LineTerminal is a Terminal over a reader and a writer.
type LineTerminal struct {
	in      *bufio.Reader
	out     io.Writer
	secrets SecretReader

	promptStyle lipgloss.Style
}

// LineOption configures a LineTerminal.
type LineOption func(*LineTerminal)

// WithSecretReader sets where hidden input comes from. Without one, a
// terminal-backed input uses term.ReadPassword and anything else falls back
// to a plain line read.
func WithSecretReader(r SecretReader) LineOption {
	return func(t *LineTerminal) { t.secrets = r }
}

// NewLineTerminal creates a terminal reading lines from in and writing
// prompts to out.
func NewLineTerminal(in io.Reader, out io.Writer, opts ...LineOption) *LineTerminal {
	r := lipgloss.NewRenderer(out)
	t := &LineTerminal{
		in:          bufio.NewReader(in),
		out:         out,
		promptStyle: r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.secrets = TerminalSecrets(int(f.Fd()), out)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *LineTerminal) Println(text string) {
	fmt.Fprintln(t.out, text)
}

func (t *LineTerminal) ReadLine(prompt string) (string, error) {
	t.show(prompt)
	return t.readLine()
}

// ReadPassword uses the secret reader only when no input is buffered. Input
// that was typed ahead has already left the device, so it is read from the
// buffer like any other line.
func (t *LineTerminal) ReadPassword(prompt string) (string, error) {
	t.show(prompt)
	if t.secrets == nil || t.in.Buffered() > 0 {
		return t.readLine()
	}
	return t.secrets.ReadSecret()
}

func (t *LineTerminal) show(prompt string) {
	if prompt != "" {
		fmt.Fprint(t.out, t.promptStyle.Render(prompt)+": ")
	}
}

// readLine returns a trailing partial line at end of input; only an empty
// read at EOF is an error.
func (t *LineTerminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

type terminalSecrets struct {
	fd   int
	echo io.Writer
}

// TerminalSecrets reads hidden input from the terminal behind fd. A newline
// is written to echo afterwards since the user's Enter is not echoed. It
// reads the fd directly, bypassing any buffered reader over the same file.
func TerminalSecrets(fd int, echo io.Writer) SecretReader {
	return &terminalSecrets{fd: fd, echo: echo}
}

func (r *terminalSecrets) ReadSecret() (string, error) {
	b, err := term.ReadPassword(r.fd)
	fmt.Fprintln(r.echo)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
