package parser

import (
	"slices"

	"github.com/erraggy/oastypes/oaserrors"
)

// Schema is a read-only view of one schema object in a parsed document.
//
// Every Schema is created once while parsing and shared: a $ref that points at a schema
// links to the same *Schema that sits at the target's definition site, so pointer equality
// means "same definition". Nothing downstream mutates a Schema.
type Schema struct {
	// Pointer is the canonical JSON pointer of the definition site, prefixed with the
	// document location for schemas that live in external files ("pet.yaml#/Pet").
	Pointer string
	// Name is the component key for entries of components/schemas, empty otherwise.
	Name string

	// Ref is the raw $ref value; Target is the schema it resolves to (nil if unresolved).
	Ref    string
	Target *Schema

	// Types holds the declared types with "null" removed. 3.0 documents have at most one.
	Types  []string
	Format string

	Title       string
	Description string
	Deprecated  bool
	ReadOnly    bool
	WriteOnly   bool
	Default     any

	// Properties keeps the document order of the properties mapping.
	Properties []*Property
	Required   []string

	Items *Schema

	// AdditionalProperties is set when additionalProperties is a schema.
	// AdditionalPropertiesAllowed is set when it is a boolean.
	AdditionalProperties        *Schema
	AdditionalPropertiesAllowed *bool

	// Enum holds the literal values in order; 3.1 const is folded in as a single value.
	Enum []any

	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema

	// Nullable is true for 3.0 "nullable: true" or a 3.1 "null" member of type.
	Nullable bool

	// Line and Column locate the schema when source locations were tracked.
	Line   int
	Column int

	refErr error
}

// Property is a named entry of a schema's properties mapping.
type Property struct {
	Name   string
	Schema *Schema
}

// IsRef reports whether the schema is a $ref node.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// IsComponent reports whether the schema is an entry of components/schemas.
func (s *Schema) IsComponent() bool {
	return s != nil && s.Name != ""
}

// HasComposition reports whether allOf, anyOf or oneOf is present.
func (s *Schema) HasComposition() bool {
	return len(s.AllOf) > 0 || len(s.AnyOf) > 0 || len(s.OneOf) > 0
}

// Composition returns the allOf, anyOf and oneOf branches concatenated in that order.
func (s *Schema) Composition() []*Schema {
	out := make([]*Schema, 0, len(s.AllOf)+len(s.AnyOf)+len(s.OneOf))
	out = append(out, s.AllOf...)
	out = append(out, s.AnyOf...)
	return append(out, s.OneOf...)
}

// HasType reports whether t is among the declared types.
func (s *Schema) HasType(t string) bool {
	return slices.Contains(s.Types, t)
}

// PrimaryType returns the declared type when exactly one is declared, otherwise "".
func (s *Schema) PrimaryType() string {
	if len(s.Types) == 1 {
		return s.Types[0]
	}
	return ""
}

// Property returns the schema of the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// IsRequired reports whether name is listed in required.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// AllowsAdditionalProperties reports whether additionalProperties is a schema or true.
func (s *Schema) AllowsAdditionalProperties() bool {
	if s.AdditionalProperties != nil {
		return true
	}
	return s.AdditionalPropertiesAllowed != nil && *s.AdditionalPropertiesAllowed
}

// Deref follows a chain of $ref links to the first schema that is not a reference.
// A schema that is not a reference is returned as is.
func (s *Schema) Deref() (*Schema, error) {
	seen := make(map[*Schema]bool)
	cur := s
	for cur.IsRef() {
		if seen[cur] {
			return nil, &oaserrors.ReferenceError{Ref: s.Ref, IsCircular: true, Message: "reference chain never reaches a schema"}
		}
		seen[cur] = true
		if cur.Target == nil {
			if cur.refErr != nil {
				return nil, cur.refErr
			}
			return nil, &oaserrors.ReferenceError{Ref: cur.Ref, Message: "unresolved"}
		}
		cur = cur.Target
	}
	return cur, nil
}
