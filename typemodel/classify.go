package typemodel

import (
	"fmt"

	"github.com/erraggy/oastypes/parser"
)

// SchemaKind is the structural category of a schema.
type SchemaKind int

const (
	SchemaPrimitive SchemaKind = iota
	SchemaEnum
	SchemaArray
	SchemaMap
	SchemaComposed
	SchemaObject
	SchemaReference
)

var schemaKindNames = [...]string{"primitive", "enum", "array", "map", "composed", "object", "reference"}

func (k SchemaKind) String() string {
	if int(k) < len(schemaKindNames) {
		return schemaKindNames[k]
	}
	return fmt.Sprintf("SchemaKind(%d)", int(k))
}

// Classify returns the kind of s. The first matching rule wins:
//
//  1. $ref present: Reference
//  2. allOf, anyOf or oneOf present: Composed
//  3. enum values present: Enum
//  4. declared array, or items without a declared type: Array
//  5. declared object (or no type) with no properties and a schema-valued or true
//     additionalProperties: Map
//  6. declared object, or properties present: Object
//  7. anything else: Primitive
func Classify(s *parser.Schema) SchemaKind {
	switch {
	case s.IsRef():
		return SchemaReference
	case s.HasComposition():
		return SchemaComposed
	case len(s.Enum) > 0:
		return SchemaEnum
	}

	declared := s.PrimaryType()
	untyped := len(s.Types) == 0
	switch {
	case declared == "array" || (untyped && s.Items != nil):
		return SchemaArray
	case (declared == "object" || untyped) && len(s.Properties) == 0 && s.AllowsAdditionalProperties():
		return SchemaMap
	case declared == "object" || len(s.Properties) > 0:
		return SchemaObject
	}
	return SchemaPrimitive
}
