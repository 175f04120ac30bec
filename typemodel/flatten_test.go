package typemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastypes/parser"
)

func propNames(s *parser.Schema) []string {
	var out []string
	for _, p := range s.Properties {
		out = append(out, p.Name)
	}
	return out
}

func TestFlatten_OrderAndOverrides(t *testing.T) {
	str := &parser.Schema{Types: []string{"string"}}
	num := &parser.Schema{Types: []string{"number"}}
	boolean := &parser.Schema{Types: []string{"boolean"}}

	s := &parser.Schema{
		Pointer:     "#/components/schemas/Mix",
		Name:        "Mix",
		Description: "mixed",
		OneOf: []*parser.Schema{{Types: []string{"object"}, Properties: []*parser.Property{
			{Name: "c", Schema: boolean},
		}}},
		AllOf: []*parser.Schema{{Types: []string{"object"}, Required: []string{"a"}, Properties: []*parser.Property{
			{Name: "a", Schema: str},
			{Name: "b", Schema: str},
		}}},
		AnyOf: []*parser.Schema{{Types: []string{"object"}, Required: []string{"b", "a"}, Properties: []*parser.Property{
			{Name: "b", Schema: num},
		}}},
		Properties: []*parser.Property{{Name: "a", Schema: boolean}},
	}

	flat, err := Flatten(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, propNames(flat))
	assert.Same(t, boolean, flat.Property("a"), "own properties are applied last")
	assert.Same(t, num, flat.Property("b"), "anyOf follows allOf")
	assert.Equal(t, []string{"a", "b"}, flat.Required)
	assert.Equal(t, "Mix", flat.Name)
	assert.Equal(t, "#/components/schemas/Mix", flat.Pointer)
	assert.Equal(t, "mixed", flat.Description)

	assert.Empty(t, s.Required, "input is not modified")
	assert.Len(t, s.Properties, 1)
}

func TestFlatten_NestedAndRefs(t *testing.T) {
	base := &parser.Schema{Pointer: "#/components/schemas/Base", Name: "Base", Types: []string{"object"},
		Properties: []*parser.Property{{Name: "id", Schema: &parser.Schema{Types: []string{"string"}}}}}
	mid := &parser.Schema{
		AllOf: []*parser.Schema{{Ref: "#/components/schemas/Base", Target: base}},
		Properties: []*parser.Property{{Name: "mid", Schema: &parser.Schema{Types: []string{"string"}}}},
	}
	s := &parser.Schema{AllOf: []*parser.Schema{mid, {Nullable: true}}}

	flat, err := Flatten(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "mid"}, propNames(flat))
	assert.True(t, flat.Nullable)
}

func TestFlatten_UnresolvedBranch(t *testing.T) {
	s := &parser.Schema{AllOf: []*parser.Schema{{Pointer: "#/x/allOf/0", Ref: "#/missing"}}}
	_, err := Flatten(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#/missing")
}
