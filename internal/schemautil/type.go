// Package schemautil provides structural helpers over parsed schemas: identity hashing
// and type inspection shared by the classifier and resolver.
package schemautil

import "github.com/erraggy/oastypes/parser"

// Literal kinds returned by LiteralKind.
const (
	LiteralString  = "string"
	LiteralInteger = "integer"
	LiteralNumber  = "number"
	LiteralBoolean = "boolean"
	LiteralNull    = "null"
	LiteralObject  = "object"
	LiteralArray   = "array"
)

// LiteralKind returns the JSON type of a decoded literal such as an enum value.
func LiteralKind(v any) string {
	switch v.(type) {
	case nil:
		return LiteralNull
	case bool:
		return LiteralBoolean
	case int, int32, int64, uint64:
		return LiteralInteger
	case float32, float64:
		return LiteralNumber
	case []any:
		return LiteralArray
	case map[string]any:
		return LiteralObject
	}
	return LiteralString
}

// IsScalarType reports whether t names a JSON scalar type.
func IsScalarType(t string) bool {
	switch t {
	case "string", "integer", "number", "boolean":
		return true
	}
	return false
}

// IsObjectLike reports whether a schema describes an object: declared type object,
// declared properties, or a composition. References are followed.
func IsObjectLike(schema *parser.Schema) bool {
	s, err := schema.Deref()
	if err != nil || s == nil {
		return false
	}
	return s.HasType("object") || len(s.Properties) > 0 || s.HasComposition()
}

// IsUntyped reports whether a schema carries no structural constraint at all, as in
// {} or a 3.1 boolean schema.
func IsUntyped(schema *parser.Schema) bool {
	return schema != nil &&
		!schema.IsRef() &&
		len(schema.Types) == 0 &&
		len(schema.Properties) == 0 &&
		schema.Items == nil &&
		schema.AdditionalProperties == nil &&
		len(schema.Enum) == 0 &&
		!schema.HasComposition()
}
