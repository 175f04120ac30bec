package schemautil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oastypes/parser"
)

func TestLiteralKind(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, LiteralNull},
		{true, LiteralBoolean},
		{int64(3), LiteralInteger},
		{2.5, LiteralNumber},
		{"x", LiteralString},
		{[]any{1}, LiteralArray},
		{map[string]any{"a": 1}, LiteralObject},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LiteralKind(tt.in), "%v", tt.in)
	}
}

func TestIsScalarType(t *testing.T) {
	for _, s := range []string{"string", "integer", "number", "boolean"} {
		assert.True(t, IsScalarType(s), s)
	}
	for _, s := range []string{"object", "array", "null", ""} {
		assert.False(t, IsScalarType(s), s)
	}
}

func TestIsObjectLike(t *testing.T) {
	target := &parser.Schema{Types: []string{"object"}}
	tests := []struct {
		name   string
		schema *parser.Schema
		want   bool
	}{
		{"declared object", &parser.Schema{Types: []string{"object"}}, true},
		{"properties only", &parser.Schema{Properties: []*parser.Property{{Name: "a", Schema: &parser.Schema{}}}}, true},
		{"composition", &parser.Schema{AllOf: []*parser.Schema{target}}, true},
		{"ref to object", &parser.Schema{Ref: "#/x", Target: target}, true},
		{"string", &parser.Schema{Types: []string{"string"}}, false},
		{"unresolved ref", &parser.Schema{Ref: "#/missing"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsObjectLike(tt.schema))
		})
	}
}

func TestIsUntyped(t *testing.T) {
	assert.True(t, IsUntyped(&parser.Schema{Description: "anything"}))
	assert.False(t, IsUntyped(&parser.Schema{Types: []string{"string"}}))
	assert.False(t, IsUntyped(&parser.Schema{Ref: "#/a"}))
	assert.False(t, IsUntyped(nil))
}
