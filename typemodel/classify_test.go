package typemodel

import (
	"testing"

	"github.com/erraggy/oastypes/parser"
)

func TestClassify(t *testing.T) {
	yes, no := true, false
	str := &parser.Schema{Types: []string{"string"}}
	props := []*parser.Property{{Name: "a", Schema: str}}

	tests := []struct {
		name   string
		schema *parser.Schema
		want   SchemaKind
	}{
		{"ref wins over everything", &parser.Schema{Ref: "#/a", AllOf: []*parser.Schema{str}, Types: []string{"object"}}, SchemaReference},
		{"composition wins over enum", &parser.Schema{OneOf: []*parser.Schema{str}, Enum: []any{"a"}}, SchemaComposed},
		{"enum wins over type", &parser.Schema{Types: []string{"string"}, Enum: []any{"a"}}, SchemaEnum},
		{"array", &parser.Schema{Types: []string{"array"}, Items: str}, SchemaArray},
		{"items without type", &parser.Schema{Items: str}, SchemaArray},
		{"map with schema", &parser.Schema{Types: []string{"object"}, AdditionalProperties: str}, SchemaMap},
		{"map with true", &parser.Schema{AdditionalPropertiesAllowed: &yes}, SchemaMap},
		{"properties beat additionalProperties", &parser.Schema{Types: []string{"object"}, Properties: props, AdditionalProperties: str}, SchemaObject},
		{"closed object", &parser.Schema{Types: []string{"object"}, AdditionalPropertiesAllowed: &no}, SchemaObject},
		{"empty object", &parser.Schema{Types: []string{"object"}}, SchemaObject},
		{"properties without type", &parser.Schema{Properties: props}, SchemaObject},
		{"string", str, SchemaPrimitive},
		{"untyped", &parser.Schema{}, SchemaPrimitive},
		{"multi-type", &parser.Schema{Types: []string{"string", "integer"}}, SchemaPrimitive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.schema); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSchemaKind_String(t *testing.T) {
	if got := SchemaComposed.String(); got != "composed" {
		t.Errorf("String() = %q", got)
	}
	if got := SchemaKind(42).String(); got != "SchemaKind(42)" {
		t.Errorf("String() = %q", got)
	}
}
