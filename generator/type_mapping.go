// This file maps resolved types to Go type expressions, including the pointer rules for
// optional and nullable uses.

package generator

import (
	"fmt"
	"strconv"

	"github.com/erraggy/oastypes/typemodel"
)

// goType renders t without a top-level pointer. Nullable list elements and map values
// that can be pointers are rendered as pointers.
func (p *plan) goType(t typemodel.Type) string {
	switch t.Kind {
	case typemodel.KindList:
		return "[]" + p.elemType(t.Elem)
	case typemodel.KindMap:
		return "map[string]" + p.elemType(t.Elem)
	}
	if t.Name == "" {
		return typemodel.TypeAny
	}
	return t.Name
}

func (p *plan) elemType(e *typemodel.Type) string {
	if e == nil {
		return typemodel.TypeAny
	}
	return p.useType(*e, false)
}

// useType renders t at a use site. Optional or nullable uses become pointers unless the
// type already has a nil value.
func (p *plan) useType(t typemodel.Type, optional bool) string {
	s := p.goType(t)
	if (optional || t.Nullable) && p.pointerable(t, nil) {
		return "*" + s
	}
	return s
}

// pointerable reports whether uses of t need a pointer to express absence: scalars,
// structs and enums do; slices, maps, []byte and any do not. Aliases take the answer of
// their target.
func (p *plan) pointerable(t typemodel.Type, seen map[string]bool) bool {
	switch t.Kind {
	case typemodel.KindList, typemodel.KindMap:
		return false
	case typemodel.KindPrimitive:
		return t.Name != typemodel.TypeAny && t.Name != typemodel.TypeBytes && t.Name != ""
	}
	d := p.byName[t.Name]
	if d == nil || d.Kind != typemodel.DeclAlias {
		return true
	}
	if d.Target == nil || seen[d.Name] {
		return false
	}
	if seen == nil {
		seen = make(map[string]bool)
	}
	seen[d.Name] = true
	return p.pointerable(*d.Target, seen)
}

// valueTarget returns the object a by-value use of t embeds, following aliases, or "".
func (p *plan) valueTarget(t typemodel.Type) string {
	seen := make(map[string]bool)
	for t.Kind == typemodel.KindNamed && !seen[t.Name] {
		seen[t.Name] = true
		d := p.byName[t.Name]
		switch {
		case d == nil:
			return ""
		case d.Kind == typemodel.DeclObject:
			return d.Name
		case d.Kind == typemodel.DeclAlias && d.Target != nil:
			t = *d.Target
		default:
			return ""
		}
	}
	return ""
}

// enumLiteral renders an enum value as a Go constant expression.
func enumLiteral(v any) string {
	switch x := v.(type) {
	case string:
		return strconv.Quote(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
