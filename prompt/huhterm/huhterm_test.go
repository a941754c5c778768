package huhterm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	term := New()
	assert.NotNil(t, term.theme)
	assert.False(t, term.accessible)
}

func TestOptions(t *testing.T) {
	var out bytes.Buffer
	theme := huh.ThemeBase()
	term := New(WithTheme(theme), WithAccessible(true), WithIO(strings.NewReader(""), &out))

	assert.Same(t, theme, term.theme)
	assert.True(t, term.accessible)

	term.Println("[server]")
	assert.Equal(t, "[server]\n", out.String())
}

func TestFormBuildsSingleInput(t *testing.T) {
	var value string
	term := New(WithIO(strings.NewReader(""), &bytes.Buffer{}))
	form := term.form("name", huh.EchoModePassword, &value)
	require.NotNil(t, form)
}
