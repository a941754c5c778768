package prompt

import (
	"io"
	"strings"
)

// scriptTerminal answers reads from a fixed list of lines and records what
// was printed.
type scriptTerminal struct {
	lines   []string
	printed []string
	prompts []string
	secrets int
}

func script(lines ...string) *scriptTerminal {
	return &scriptTerminal{lines: lines}
}

func (t *scriptTerminal) Println(text string) {
	t.printed = append(t.printed, text)
}

func (t *scriptTerminal) ReadLine(prompt string) (string, error) {
	t.prompts = append(t.prompts, prompt)
	return t.next()
}

func (t *scriptTerminal) ReadPassword(prompt string) (string, error) {
	t.prompts = append(t.prompts, prompt)
	t.secrets++
	return t.next()
}

func (t *scriptTerminal) next() (string, error) {
	if len(t.lines) == 0 {
		return "", io.EOF
	}
	line := t.lines[0]
	t.lines = t.lines[1:]
	return line + "\r\n", nil
}

func (t *scriptTerminal) output() string {
	return strings.Join(t.printed, "\n")
}

func (t *scriptTerminal) count(text string) int {
	n := 0
	for _, p := range t.printed {
		if p == text {
			n++
		}
	}
	return n
}
