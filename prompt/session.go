package prompt

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Prompter is implemented by types that know how to fill themselves from a
// Session. An empty label or comment means there is none.
type Prompter interface {
	Prompt(s *Session, label, comment string) error
}

// Session is a sequential prompting conversation over a Terminal.
type Session struct {
	term        Terminal
	fs          afero.Fs
	log         *log.Logger
	maxAttempts int
}

type settings struct {
	fs          afero.Fs
	log         *log.Logger
	maxAttempts int
}

// Setting configures a Session or a Form.
type Setting func(*settings)

// WithFs sets the filesystem used for file existence checks.
func WithFs(fs afero.Fs) Setting {
	return func(s *settings) { s.fs = fs }
}

// WithLogger sets the logger that receives debug events such as rejected
// input.
func WithLogger(l *log.Logger) Setting {
	return func(s *settings) { s.log = l }
}

// WithMaxAttempts bounds how many rejected answers a single prompt accepts
// before failing with ErrTooManyAttempts. Zero means no bound.
func WithMaxAttempts(n int) Setting {
	return func(s *settings) { s.maxAttempts = n }
}

func apply(opts []Setting) settings {
	cfg := settings{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = log.New(io.Discard)
	}
	return cfg
}

// NewSession creates a session talking to t.
func NewSession(t Terminal, opts ...Setting) *Session {
	cfg := apply(opts)
	return &Session{
		term:        t,
		fs:          cfg.fs,
		log:         cfg.log,
		maxAttempts: cfg.maxAttempts,
	}
}

// Stdio creates a session on the process's standard input and output.
func Stdio(opts ...Setting) *Session {
	return NewSession(NewLineTerminal(os.Stdin, os.Stdout), opts...)
}

// Terminal returns the session's terminal.
func (s *Session) Terminal() Terminal { return s.term }

// Fs returns the filesystem used for existence checks.
func (s *Session) Fs() afero.Fs { return s.fs }

// Println writes a line of text.
func (s *Session) Println(text string) { s.term.Println(text) }

// Heading prints "[label]" when label is not empty.
func (s *Session) Heading(label string) {
	if label != "" {
		s.term.Println("[" + label + "]")
	}
}

// Comment prints comment when it is not empty.
func (s *Session) Comment(comment string) {
	if comment != "" {
		s.term.Println(comment)
	}
}

// Ask prompts for a new T and returns it.
func Ask[T any](s *Session, label, comment string) (T, error) {
	var v T
	err := s.Value(&v, label, comment)
	return v, err
}

// Value prompts for the value ptr points to. Prompter implementations and
// registered enums are used when available; everything else is walked with
// reflection.
func (s *Session) Value(ptr any, label, comment string) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &UnsupportedTypeError{Type: reflect.TypeOf(ptr), Reason: "target must be a non-nil pointer"}
	}
	return s.value(rv.Elem(), label, comment)
}

// Optional asks whether an optional value should be provided and prompts
// for it on yes. pp must point to a pointer; it is set to nil on no.
func (s *Session) Optional(pp any, label, comment string) error {
	rv := reflect.ValueOf(pp)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Pointer {
		return &UnsupportedTypeError{Type: reflect.TypeOf(pp), Reason: "optional target must be a pointer to a pointer"}
	}
	return s.optional(rv.Elem(), label, comment)
}

// Include prints the optional-value question for label and reads the answer.
func (s *Session) Include(label string) (bool, error) {
	if label != "" {
		s.term.Println(fmt.Sprintf("[%s is optional, provide? (yes/no)]", label))
	}
	return s.Bool(label, "")
}

// Line reads one line of free text.
func (s *Session) Line(label, comment string) (string, error) {
	s.Comment(comment)
	return s.readLine(label)
}

// Secret reads one line of hidden text.
func (s *Session) Secret(label, comment string) (string, error) {
	s.Comment(comment)
	return s.readSecret(label)
}

// Bool reads a yes/no answer, retrying until one is given.
func (s *Session) Bool(label, comment string) (bool, error) {
	var out bool
	err := s.scalar(label+boolHint(label), comment, func(text string) error {
		b, err := ParseBool(text)
		out = b
		return err
	})
	return out, err
}

func boolHint(label string) string {
	if label == "" {
		return ""
	}
	return " (yes,no,true,false)"
}

// Parsed reads lines until parse accepts one. Rejections print
// "Invalid input".
func (s *Session) Parsed(label, comment string, parse func(text string) error) error {
	return s.scalar(label, comment, parse)
}

func (s *Session) scalar(label, comment string, parse func(string) error) error {
	s.Comment(comment)
	return s.retry(label, "Invalid input", func() (bool, error) {
		text, err := s.readLine(label)
		if err != nil {
			return false, err
		}
		if err := parse(text); err != nil {
			s.log.Debug("conversion failed", "label", label, "err", err)
			return false, nil
		}
		return true, nil
	})
}

// retry runs attempt until it succeeds, printing rejected after every
// rejection and enforcing the session's attempt bound.
func (s *Session) retry(label, rejected string, attempt func() (bool, error)) error {
	for n := 1; ; n++ {
		ok, err := attempt()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		s.log.Debug("input rejected", "label", label, "attempt", n)
		if rejected != "" {
			s.term.Println(rejected)
		}
		if s.maxAttempts > 0 && n >= s.maxAttempts {
			if label == "" {
				return ErrTooManyAttempts
			}
			return fmt.Errorf("%s: %w", label, ErrTooManyAttempts)
		}
	}
}

func (s *Session) readLine(label string) (string, error) {
	line, err := s.term.ReadLine(label)
	if err != nil {
		return "", &InputError{Label: label, Err: err}
	}
	return trimLineEnding(line), nil
}

func (s *Session) readSecret(label string) (string, error) {
	line, err := s.term.ReadPassword(label)
	if err != nil {
		return "", &InputError{Label: label, Err: err}
	}
	return trimLineEnding(line), nil
}

func trimLineEnding(line string) string {
	return strings.TrimRight(line, "\r\n")
}

func (s *Session) exists(path string) bool {
	return exists(s.fs, path)
}

func exists(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}
	ok, err := afero.Exists(fs, path)
	return err == nil && ok
}
