package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want charmlog.Level
	}{
		{"", charmlog.WarnLevel},
		{"debug", charmlog.DebugLevel},
		{"INFO", charmlog.InfoLevel},
		{" warning ", charmlog.WarnLevel},
		{"error", charmlog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: charmlog.InfoLevel, Output: &buf})

	l.Debug("hidden")
	l.Info("shown", "label", "port")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "label=port")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: charmlog.DebugLevel, Output: &buf, JSON: true})

	l.Debug("input rejected", "attempt", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "input rejected", entry["msg"])
	assert.EqualValues(t, 2, entry["attempt"])
}
