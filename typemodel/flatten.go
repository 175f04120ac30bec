package typemodel

import (
	"slices"

	"github.com/erraggy/oastypes/internal/schemautil"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/parser"
)

// Flatten merges the composition branches of s into a new object schema. The result keeps
// the pointer, name, title, description and deprecation of s; s itself is not modified.
//
// Branches are merged allOf first, then anyOf, then oneOf, and the properties of s are
// applied last. Referenced branches are followed and nested compositions flattened in
// place. A property defined twice takes the later schema and keeps its first position.
// Required is the ordered union. Branches that only allow null make the result nullable.
//
// A branch that reaches one of its own ancestors through composition is reported as a
// *oaserrors.ResolutionError.
func Flatten(s *parser.Schema) (*parser.Schema, error) {
	out := &parser.Schema{
		Pointer:     s.Pointer,
		Name:        s.Name,
		Title:       s.Title,
		Description: s.Description,
		Deprecated:  s.Deprecated,
		Nullable:    s.Nullable,
		Types:       []string{"object"},
		Line:        s.Line,
		Column:      s.Column,
	}
	f := &flattener{
		out:    out,
		active: make(map[*parser.Schema]bool),
		index:  make(map[string]int),
	}
	if err := f.merge(s); err != nil {
		return nil, err
	}
	return out, nil
}

type flattener struct {
	out    *parser.Schema
	active map[*parser.Schema]bool
	index  map[string]int
}

func (f *flattener) merge(s *parser.Schema) error {
	if f.active[s] {
		return &oaserrors.ResolutionError{
			Pointer: s.Pointer,
			Line:    s.Line,
			Column:  s.Column,
			Message: "composition cycle: schema is its own ancestor",
		}
	}
	f.active[s] = true
	defer delete(f.active, s)

	for _, branch := range s.Composition() {
		if isNullOnly(branch) {
			f.out.Nullable = true
			continue
		}
		target, err := branch.Deref()
		if err != nil {
			return &oaserrors.ResolutionError{
				Pointer: branch.Pointer,
				Line:    branch.Line,
				Column:  branch.Column,
				Message: "cannot resolve composition branch " + branch.Ref,
				Cause:   err,
			}
		}
		if err := f.merge(target); err != nil {
			return err
		}
	}

	for _, p := range s.Properties {
		if i, ok := f.index[p.Name]; ok {
			f.out.Properties[i] = p
			continue
		}
		f.index[p.Name] = len(f.out.Properties)
		f.out.Properties = append(f.out.Properties, p)
	}
	for _, name := range s.Required {
		if !slices.Contains(f.out.Required, name) {
			f.out.Required = append(f.out.Required, name)
		}
	}
	if f.out.AdditionalProperties == nil && s.AdditionalProperties != nil {
		f.out.AdditionalProperties = s.AdditionalProperties
	}
	return nil
}

// isNullOnly reports whether s only admits null, as in {"type": "null"}.
func isNullOnly(s *parser.Schema) bool {
	return s.Nullable && schemautil.IsUntyped(s)
}

// significantBranches drops null-only and metadata-only branches. nullable reports
// whether a null-only branch was present.
func significantBranches(s *parser.Schema) (branches []*parser.Schema, nullable bool) {
	for _, b := range s.Composition() {
		switch {
		case isNullOnly(b):
			nullable = true
		case schemautil.IsUntyped(b):
		default:
			branches = append(branches, b)
		}
	}
	return branches, nullable
}
