package demo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/userprompt/prompt"
	"github.com/simonhull/userprompt/ui/uitest"
)

func session(lines ...string) (*prompt.Session, *bytes.Buffer) {
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	return prompt.NewSession(prompt.NewLineTerminal(in, &out)), &out
}

func TestProfilePrompt(t *testing.T) {
	s, out := session(
		"Ada",
		"36",
		"no",
		"secret", "secret",
		"yes", "math",
		"no",
		"Rectangle", "2", "3.5",
	)

	var p Profile
	require.NoError(t, s.Value(&p, "profile", "Tell us about yourself"))

	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, uint8(36), p.Age)
	assert.Nil(t, p.Email)
	assert.True(t, p.Password.Matches())
	assert.Equal(t, []string{"math"}, p.Tags)
	assert.Equal(t, Rectangle{Width: 2, Height: 3.5}, p.Favorite)

	text := out.String()
	assert.Contains(t, text, "[profile]\nTell us about yourself\n")
	assert.Contains(t, text, "shown to other users\n")
	assert.Contains(t, text, "[email is optional, provide? (yes/no)]")
	assert.Contains(t, text, "Circle - radius in metres")
	assert.Contains(t, text, "Named - a shape known by name only")
}

func TestProfilePromptKeepsValueOnFailure(t *testing.T) {
	s, _ := session("Grace", "not a number")
	p := Profile{Name: "before"}

	err := s.Value(&p, "profile", "")
	require.Error(t, err)
	var inputErr *prompt.InputError
	assert.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "before", p.Name)
}

func TestShapePrompt(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Shape
	}{
		{"struct variant", []string{"Circle", "1.5"}, Circle{Radius: 1.5}},
		{"empty variant", []string{"Point"}, Point{}},
		{"retries unknown names", []string{"Triangle", "Point"}, Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := session(tt.lines...)
			got, err := prompt.Ask[Shape](s, "shape", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("pointer variant", func(t *testing.T) {
		s, _ := session("Named", "hexagon")
		got, err := prompt.Ask[Shape](s, "shape", "")
		require.NoError(t, err)
		n, ok := got.(*Named)
		require.True(t, ok)
		assert.Equal(t, Named("hexagon"), *n)
	})
}

func TestShapeForm(t *testing.T) {
	u := uitest.New()
	var sh Shape

	require.NoError(t, u.Frame(prompt.Build(&sh, "shape")))
	w, ok := u.Find(uitest.KindCombo, "Select a shape")
	require.True(t, ok)
	assert.Equal(t, []string{"Circle", "Rectangle", "Named", "Point"}, w.Options)
	assert.Nil(t, sh)

	u.Choose("Select a shape", "Rectangle")
	require.NoError(t, u.Frame(prompt.Build(&sh, "shape")))
	assert.Equal(t, Rectangle{}, sh)
	assert.Contains(t, u.Labels(), "shape/width")
	assert.Contains(t, u.Labels(), "shape/height")

	u.Type(1, "4")
	require.NoError(t, u.Frame(prompt.Build(&sh, "shape")))
	assert.Equal(t, Rectangle{Height: 4}, sh)

	u.Choose("Select a shape", "Named")
	u.Type(0, "blob")
	require.NoError(t, u.Frame(prompt.Build(&sh, "shape")))
	n, ok := sh.(*Named)
	require.True(t, ok)
	assert.Equal(t, Named("blob"), *n)
	assert.Contains(t, u.Labels(), "shape/0")
}

func TestProfileForm(t *testing.T) {
	u := uitest.New()
	var p Profile

	err := u.Frame(prompt.Build(&p, "profile"))
	require.Error(t, err, "blank password is reported")
	assert.Contains(t, err.Error(), "profile/password password is blank")

	labels := u.Labels()
	assert.Contains(t, labels, "profile")
	assert.Contains(t, labels, "profile/name")
	assert.Contains(t, labels, "profile/age")
	assert.Contains(t, labels, "shown to other users")
	assert.Equal(t, 2, u.Count(uitest.KindPassword))

	u.Type(0, "Ada")
	_ = u.Frame(prompt.Build(&p, "profile"))
	assert.Equal(t, "Ada", p.Name)
}
