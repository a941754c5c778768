package prompt

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskScalars(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		term := script("42")
		v, err := Ask[int](NewSession(term), "n", "")
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("int8 out of range retries", func(t *testing.T) {
		term := script("300", "-7")
		v, err := Ask[int8](NewSession(term), "n", "")
		require.NoError(t, err)
		assert.Equal(t, int8(-7), v)
		assert.Equal(t, 1, term.count("Invalid input"))
	})

	t.Run("uint rejects negative", func(t *testing.T) {
		term := script("-1", "9")
		v, err := Ask[uint16](NewSession(term), "n", "")
		require.NoError(t, err)
		assert.Equal(t, uint16(9), v)
	})

	t.Run("float", func(t *testing.T) {
		term := script("abc", "2.5")
		v, err := Ask[float64](NewSession(term), "ratio", "a ratio")
		require.NoError(t, err)
		assert.InDelta(t, 2.5, v, 0.0001)
		assert.Equal(t, 1, term.count("a ratio"), "comment printed once")
	})

	t.Run("string keeps inner spaces", func(t *testing.T) {
		term := script("  hello world")
		v, err := Ask[string](NewSession(term), "name", "")
		require.NoError(t, err)
		assert.Equal(t, "  hello world", v)
	})

	t.Run("text unmarshaler", func(t *testing.T) {
		term := script("yesterday", "2024-03-01T10:00:00Z")
		v, err := Ask[time.Time](NewSession(term), "when", "")
		require.NoError(t, err)
		assert.Equal(t, 2024, v.Year())
		assert.Equal(t, 1, term.count("Invalid input"))
	})

	t.Run("path", func(t *testing.T) {
		term := script("/tmp/x")
		v, err := Ask[Path](NewSession(term), "dir", "")
		require.NoError(t, err)
		assert.Equal(t, Path("/tmp/x"), v)
	})
}

func TestAskBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes", true},
		{"Y", true},
		{"TRUE", true},
		{"no", false},
		{"n", false},
		{"False", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			term := script(tt.input)
			v, err := Ask[bool](NewSession(term), "ok", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, []string{"ok (yes,no,true,false)"}, term.prompts)
		})
	}

	t.Run("retries on garbage", func(t *testing.T) {
		term := script("maybe", "yes")
		v, err := Ask[bool](NewSession(term), "ok", "")
		require.NoError(t, err)
		assert.True(t, v)
		assert.Equal(t, 1, term.count("Invalid input"))
	})
}

func TestInputError(t *testing.T) {
	_, err := Ask[int](NewSession(script()), "n", "")
	require.Error(t, err)

	var inErr *InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "n", inErr.Label)
	assert.ErrorIs(t, err, io.EOF)
}

func TestMaxAttempts(t *testing.T) {
	term := script("a", "b", "c")
	_, err := Ask[int](NewSession(term, WithMaxAttempts(2)), "n", "")
	require.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Equal(t, []string{"c"}, term.lines, "stops after the bound")
}

func TestLoggerReceivesRejections(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	_, err := Ask[int](NewSession(script("x", "1"), WithLogger(logger)), "n", "")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "input rejected")
}

func TestOptional(t *testing.T) {
	t.Run("no leaves nil without prompting", func(t *testing.T) {
		term := script("no")
		v := new(int)
		*v = 3
		require.NoError(t, NewSession(term).Optional(&v, "n", ""))
		assert.Nil(t, v)
		assert.Empty(t, term.lines)
		assert.Equal(t, 1, term.count("[n is optional, provide? (yes/no)]"))
	})

	t.Run("yes prompts once", func(t *testing.T) {
		term := script("yes", "5")
		var v *int
		require.NoError(t, NewSession(term).Optional(&v, "n", ""))
		require.NotNil(t, v)
		assert.Equal(t, 5, *v)
		assert.Equal(t, []string{"n (yes,no,true,false)", "n"}, term.prompts)
	})

	t.Run("option type", func(t *testing.T) {
		term := script("y", "hi")
		o, err := Ask[Option[string]](NewSession(term), "greeting", "")
		require.NoError(t, err)
		v, ok := o.Get()
		assert.True(t, ok)
		assert.Equal(t, "hi", v)

		o, err = Ask[Option[string]](NewSession(script("n")), "greeting", "")
		require.NoError(t, err)
		assert.False(t, o.Valid)
	})
}

func TestSequence(t *testing.T) {
	term := script("yes", "1", "yes", "2", "yes", "3", "no")
	v, err := Ask[[]int](NewSession(term), "nums", "")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, v)
	assert.Equal(t, 1, term.count("Enter a list of items for nums"))
	assert.Contains(t, term.prompts, "Provide nums/element3 (yes,no,true,false)")
	assert.Contains(t, term.prompts, "nums/element2")
}

func TestSequenceEmpty(t *testing.T) {
	v, err := Ask[[]string](NewSession(script("no")), "", "")
	require.NoError(t, err)
	assert.Empty(t, v)
	assert.NotNil(t, v)
}

func TestMapLastWriteWins(t *testing.T) {
	term := script("a", "1", "b", "2", "a", "3", "")
	v, err := Ask[map[string]int](NewSession(term), "m", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 3, "b": 2}, v)
	assert.Equal(t, 1, term.count("Done"))
	assert.Equal(t, 1, term.count("[m]"))
}

func TestBoxedPointer(t *testing.T) {
	term := script("8")
	v, err := Ask[*int](NewSession(term), "n", "help")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 8, *v)
	assert.Equal(t, []string{"n"}, term.prompts)
}

type account struct {
	A int     `help:"an integer"`
	B *string `prompt:",optional"`
}

func TestStructDerivation(t *testing.T) {
	term := script("42", "false")
	v, err := Ask[account](NewSession(term), "acct", "")
	require.NoError(t, err)
	assert.Equal(t, 42, v.A)
	assert.Nil(t, v.B)
	assert.Equal(t, "[acct]", term.printed[0])
	assert.Equal(t, "an integer", term.printed[1])
}

type tagged struct {
	Name    string `prompt:"full name" help:"who"`
	Skipped string `prompt:"-"`
	hidden  string
}

func TestStructTags(t *testing.T) {
	term := script("Ada")
	v := tagged{Skipped: "kept", hidden: "x"}
	require.NoError(t, NewSession(term).Value(&v, "", ""))
	assert.Equal(t, "Ada", v.Name)
	assert.Equal(t, "kept", v.Skipped)
	assert.Equal(t, "x", v.hidden)
	assert.Equal(t, []string{"full name"}, term.prompts)
}

func TestStructFailFastLeavesTargetUntouched(t *testing.T) {
	v := account{A: 1}
	err := NewSession(script("99")).Value(&v, "acct", "")
	require.Error(t, err)
	assert.Equal(t, 1, v.A)
}

func TestUnsupportedType(t *testing.T) {
	var ch chan int
	err := NewSession(script()).Value(&ch, "c", "")
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)

	err = NewSession(script()).Value(3, "c", "")
	require.ErrorAs(t, err, &unsupported)

	var m map[int]string
	err = NewSession(script()).Value(&m, "c", "")
	require.ErrorAs(t, err, &unsupported)
}

func TestPassword(t *testing.T) {
	term := script("s3cret")
	p, err := Ask[Password](NewSession(term), "pw", "")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", p.Reveal())
	assert.Equal(t, "********", p.String())
	assert.Equal(t, 1, term.secrets)
}

func TestConfirmedPassword(t *testing.T) {
	term := script("one", "two", "abc", "abc")
	p, err := Ask[ConfirmedPassword](NewSession(term), "pw", "")
	require.NoError(t, err)
	assert.Equal(t, "abc", p.Reveal())
	assert.True(t, p.Matches())
	assert.Equal(t, 1, term.count("Passwords do not match, try again"))
	assert.Equal(t, 4, term.secrets)
	assert.Equal(t, "pw/Enter password", term.prompts[0])
}

func TestConfirmedPasswordRejectsBlank(t *testing.T) {
	term := script("", "", "x", "x")
	p, err := Ask[ConfirmedPassword](NewSession(term), "", "")
	require.NoError(t, err)
	assert.Equal(t, "x", p.Reveal())
}

func TestFileReferences(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/in.txt", []byte("x"), 0o644))

	t.Run("open accepts existing", func(t *testing.T) {
		term := script("/data/missing.txt", "/data/in.txt")
		v, err := Ask[FileOpen](NewSession(term, WithFs(fs)), "input", "")
		require.NoError(t, err)
		assert.Equal(t, "/data/in.txt", v.Path)
		assert.Equal(t, 1, term.count("That does not exist, please try again"))
	})

	t.Run("create rejects existing", func(t *testing.T) {
		term := script("/data/in.txt", "/data/out.txt")
		v, err := Ask[FileCreate](NewSession(term, WithFs(fs)), "output", "")
		require.NoError(t, err)
		assert.Equal(t, "/data/out.txt", v.Path)
		assert.Equal(t, 1, term.count("That already exists, please try again"))
	})
}

type shape interface{ isShape() }

type circle struct{}

type square struct {
	Side int
}

type freeform string

func (circle) isShape()    {}
func (square) isShape()    {}
func (*freeform) isShape() {}

var shapes = RegisterEnum[shape](
	NewVariant[circle]("round"),
	NewVariant[square](""),
	NewVariant[*freeform]("free text"),
)

func TestEnumDerivation(t *testing.T) {
	term := script("Triangle", "Square", "square", "7")
	v, err := Ask[shape](NewSession(term), "shape", "")
	require.NoError(t, err)
	assert.Equal(t, square{Side: 7}, v)

	assert.Equal(t, 2, term.count("Invalid option"))
	assert.Equal(t, 3, term.count("[shape]"), "listing repeats on every attempt")
	assert.Contains(t, term.printed, "\tcircle - round")
	assert.Contains(t, term.printed, "\tsquare")
	assert.Contains(t, term.prompts, "Side")
}

func TestEnumPositionalVariant(t *testing.T) {
	term := script("freeform", "hello")
	v, err := Ask[shape](NewSession(term), "", "")
	require.NoError(t, err)
	l, ok := v.(*freeform)
	require.True(t, ok)
	assert.Equal(t, freeform("hello"), *l)
	assert.Contains(t, term.prompts, "0")
	assert.Equal(t, 2, shapes.Index(v))
}

func TestEnumInsideStruct(t *testing.T) {
	type drawing struct {
		Shape shape
		Name  string
	}
	term := script("circle", "sketch")
	v, err := Ask[drawing](NewSession(term), "", "")
	require.NoError(t, err)
	assert.Equal(t, circle{}, v.Shape)
	assert.Equal(t, "sketch", v.Name)
}

func TestRegisterEnumPanics(t *testing.T) {
	assert.Panics(t, func() { RegisterEnum[int]() })
	assert.Panics(t, func() { RegisterEnum[shape](NewVariant[string]("")) })
}

func TestEnumWithPrompt(t *testing.T) {
	type mode interface{ isMode() }
	e := RegisterEnum[mode]().WithPrompt(func(s *Session, label, comment string) (mode, error) {
		return nil, errors.New("custom called")
	})
	_, err := e.Prompt(NewSession(script()), "", "")
	assert.EqualError(t, err, "custom called")

	var m mode
	err = NewSession(script()).Value(&m, "", "")
	assert.EqualError(t, err, "custom called")
}

func TestSelectedMapPrompt(t *testing.T) {
	term := script("x", "1", "y", "2", "")
	var m SelectedMap[int]
	m.Set("old", 9)
	require.NoError(t, NewSession(term).Value(&m, "vals", ""))
	assert.Equal(t, map[string]int{"x": 1, "y": 2}, m.Map())
	_, selected := m.Selection()
	assert.False(t, selected)
}

func TestLineTerminal(t *testing.T) {
	var out bytes.Buffer
	lt := NewLineTerminal(strings.NewReader("first\r\nlast"), &out)
	s := NewSession(lt)

	a, err := s.Line("one", "")
	require.NoError(t, err)
	assert.Equal(t, "first", a)

	b, err := s.Line("two", "")
	require.NoError(t, err)
	assert.Equal(t, "last", b)

	_, err = s.Line("three", "")
	assert.ErrorIs(t, err, io.EOF)

	assert.Contains(t, out.String(), "one")
	assert.Contains(t, out.String(), ": ")
}

type fixedSecret string

func (s fixedSecret) ReadSecret() (string, error) { return string(s), nil }

func TestLineTerminalSecretReader(t *testing.T) {
	var out bytes.Buffer
	lt := NewLineTerminal(strings.NewReader("visible\n"), &out, WithSecretReader(fixedSecret("hidden")))
	p, err := Ask[Password](NewSession(lt), "pw", "")
	require.NoError(t, err)
	assert.Equal(t, "hidden", p.Reveal())

	line, err := NewSession(lt).Line("", "")
	require.NoError(t, err)
	assert.Equal(t, "visible", line, "secret reader leaves the line stream alone")
}

type countingSecret struct{ calls int }

func (s *countingSecret) ReadSecret() (string, error) {
	s.calls++
	return "hidden", nil
}

func TestLineTerminalSecretAfterTypeAhead(t *testing.T) {
	secrets := &countingSecret{}
	lt := NewLineTerminal(strings.NewReader("first\ntyped\nlast\n"), &bytes.Buffer{}, WithSecretReader(secrets))
	s := NewSession(lt)

	line, err := s.Line("", "")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	p, err := Ask[Password](s, "pw", "")
	require.NoError(t, err)
	assert.Equal(t, "typed", p.Reveal(), "buffered input is not skipped")
	assert.Zero(t, secrets.calls)

	line, err = s.Line("", "")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	p, err = Ask[Password](s, "pw", "")
	require.NoError(t, err)
	assert.Equal(t, "hidden", p.Reveal())
	assert.Equal(t, 1, secrets.calls)
}
