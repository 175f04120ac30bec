package schemautil

import (
	"fmt"
	"hash/fnv"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oastypes/parser"
)

// Hasher computes structural identities for inline schemas.
//
// The walk covers type, format, properties (sorted by name), required, items,
// additionalProperties, enum values and composition branches. Metadata (title,
// description, deprecated, readOnly, writeOnly, default) is ignored, as is the nullable
// flag of the root node, which belongs to the use site. References and nested component
// schemas contribute their canonical pointer and are not followed, so the hash of a node
// never depends on what its references resolve to.
//
// Hash collisions are possible; Equal compares the full fingerprint.
type Hasher struct {
	visiting map[*parser.Schema]bool
}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{visiting: make(map[*parser.Schema]bool)}
}

// Hash returns the FNV-1a hash of the schema's fingerprint.
func (h *Hasher) Hash(schema *parser.Schema) uint64 {
	sum := fnv.New64a()
	h.walk(sum, schema, true)
	return sum.Sum64()
}

// Fingerprint returns the canonical text the hash is computed from.
func (h *Hasher) Fingerprint(schema *parser.Schema) string {
	var b strings.Builder
	h.walk(&b, schema, true)
	return b.String()
}

// Equal reports whether two schemas are structurally identical.
func (h *Hasher) Equal(a, b *parser.Schema) bool {
	if a == b {
		return true
	}
	return h.Fingerprint(a) == h.Fingerprint(b)
}

func (h *Hasher) walk(w io.Writer, schema *parser.Schema, root bool) {
	clear(h.visiting)
	h.writeSchema(w, schema, root)
}

func write(w io.Writer, parts ...string) {
	for _, p := range parts {
		_, _ = io.WriteString(w, p)
	}
}

// quoteAll renders user-controlled tokens so that separators inside them cannot
// merge or split entries.
func quoteAll(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = strconv.Quote(t)
	}
	return strings.Join(quoted, ",")
}

func (h *Hasher) writeSchema(w io.Writer, s *parser.Schema, root bool) {
	if s == nil {
		write(w, "nil;")
		return
	}
	if s.IsRef() {
		target := s.Ref
		if s.Target != nil {
			target = s.Target.Pointer
		}
		write(w, "$ref:", strconv.Quote(target), ";")
		if !root && s.Nullable {
			write(w, "nullable;")
		}
		return
	}
	if !root && s.IsComponent() {
		write(w, "component:", strconv.Quote(s.Pointer), ";")
		return
	}
	if h.visiting[s] {
		write(w, "circular;")
		return
	}
	h.visiting[s] = true
	defer delete(h.visiting, s)

	write(w, "{")
	types := slices.Clone(s.Types)
	slices.Sort(types)
	write(w, "type:", quoteAll(types), ";")
	if s.Format != "" {
		write(w, "format:", strconv.Quote(s.Format), ";")
	}
	if !root && s.Nullable {
		write(w, "nullable;")
	}
	if len(s.Enum) > 0 {
		write(w, "enum:")
		for _, v := range s.Enum {
			write(w, fmt.Sprintf("%T=%s,", v, strconv.Quote(fmt.Sprint(v))))
		}
		write(w, ";")
	}
	if len(s.Required) > 0 {
		required := slices.Clone(s.Required)
		slices.Sort(required)
		write(w, "required:", quoteAll(required), ";")
	}
	if len(s.Properties) > 0 {
		props := slices.Clone(s.Properties)
		slices.SortFunc(props, func(a, b *parser.Property) int { return strings.Compare(a.Name, b.Name) })
		write(w, "properties:")
		for _, p := range props {
			write(w, strconv.Quote(p.Name), "=")
			h.writeSchema(w, p.Schema, false)
		}
		write(w, ";")
	}
	if s.Items != nil {
		write(w, "items:")
		h.writeSchema(w, s.Items, false)
	}
	switch {
	case s.AdditionalProperties != nil:
		write(w, "additionalProperties:")
		h.writeSchema(w, s.AdditionalProperties, false)
	case s.AdditionalPropertiesAllowed != nil:
		write(w, fmt.Sprintf("additionalProperties:%t;", *s.AdditionalPropertiesAllowed))
	}
	h.writeBranches(w, "allOf", s.AllOf)
	h.writeBranches(w, "anyOf", s.AnyOf)
	h.writeBranches(w, "oneOf", s.OneOf)
	write(w, "}")
}

func (h *Hasher) writeBranches(w io.Writer, key string, branches []*parser.Schema) {
	if len(branches) == 0 {
		return
	}
	write(w, key, ":[")
	for _, b := range branches {
		h.writeSchema(w, b, false)
	}
	write(w, "];")
}
