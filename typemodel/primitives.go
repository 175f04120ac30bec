package typemodel

import (
	"github.com/erraggy/oastypes/internal/schemautil"
	"github.com/erraggy/oastypes/parser"
)

// primitiveType maps a scalar schema to a built-in type. Missing and multiple declared
// types map to any.
func primitiveType(s *parser.Schema) Type {
	t := Primitive(TypeAny)
	t.Format = s.Format
	t.Nullable = s.Nullable
	if len(s.Types) != 1 {
		return t
	}
	t.Name = primitiveName(s.Types[0], s.Format)
	return t
}

func primitiveName(typ, format string) string {
	switch typ {
	case "string":
		switch format {
		case "date-time", "date":
			return TypeTime
		case "byte", "binary":
			return TypeBytes
		}
		return TypeString
	case "integer":
		if format == "int32" {
			return TypeInt32
		}
		return TypeInt64
	case "number":
		if format == "float" {
			return TypeFloat32
		}
		return TypeFloat64
	case "boolean":
		return TypeBool
	}
	return TypeAny
}

// literalBase is the base type inferred from an enum literal.
func literalBase(v any) string {
	switch schemautil.LiteralKind(v) {
	case schemautil.LiteralInteger:
		return TypeInt64
	case schemautil.LiteralNumber:
		return TypeFloat64
	case schemautil.LiteralBoolean:
		return TypeBool
	}
	return TypeString
}
