package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldTag(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"plain", Field{Name: "Port", Label: "Port"}, ""},
		{"label", Field{Name: "Host", Label: "hostname"}, `prompt:"hostname"`},
		{"optional", Field{Name: "Proxy", Label: "Proxy", Optional: true}, `prompt:",optional"`},
		{"everything", Field{Name: "Proxy", Label: "proxy", Optional: true, Help: `a "quoted" url`}, `prompt:"proxy,optional" help:"a \"quoted\" url"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Tag())
		})
	}
}

func TestVariant(t *testing.T) {
	v := Variant{Name: "Freeform", Pointer: true, Type: "string"}
	assert.True(t, v.Positional())
	assert.Equal(t, "*Freeform", v.GoType())

	v = Variant{Name: "Square", Fields: []Field{{Name: "Side", Type: "int"}}}
	assert.False(t, v.Positional())
	assert.Equal(t, "Square", v.GoType())
}

func TestFileHelpers(t *testing.T) {
	f := File{Types: []Type{{Name: "A"}, {Name: "B", Declare: true}}}
	assert.True(t, f.Declares())
	assert.False(t, File{Types: []Type{{Name: "A"}}}.Declares())

	assert.Equal(t, []string{"net/url", "time"}, Sorted([]string{"time", "", "net/url", "time"}))
	assert.Equal(t, "Enum", Enum.String())
	assert.True(t, Field{Type: "*string"}.IsPointer())
}
