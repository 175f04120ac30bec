package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oastypes/typemodel"
)

func mappingPlan() *plan {
	str := typemodel.Primitive(typemodel.TypeString)
	list := typemodel.ListOf(str)
	pet := typemodel.NamedType("Pet")
	p := &plan{byName: map[string]*typemodel.Named{
		"Pet":      {Name: "Pet", Kind: typemodel.DeclObject},
		"Status":   {Name: "Status", Kind: typemodel.DeclEnum},
		"Names":    {Name: "Names", Kind: typemodel.DeclAlias, Target: &list},
		"Label":    {Name: "Label", Kind: typemodel.DeclAlias, Target: &str},
		"PetAlias": {Name: "PetAlias", Kind: typemodel.DeclAlias, Target: &pet},
	}}
	return p
}

func TestUseType(t *testing.T) {
	p := mappingPlan()
	str := typemodel.Primitive(typemodel.TypeString)

	tests := []struct {
		name     string
		typ      typemodel.Type
		optional bool
		want     string
	}{
		{"required scalar", str, false, "string"},
		{"optional scalar", str, true, "*string"},
		{"nullable scalar", str.WithNullable(true), false, "*string"},
		{"time", typemodel.Primitive(typemodel.TypeTime), true, "*time.Time"},
		{"bytes never pointer", typemodel.Primitive(typemodel.TypeBytes), true, "[]byte"},
		{"any never pointer", typemodel.Any(), true, "any"},
		{"empty primitive", typemodel.Type{}, false, "any"},
		{"list never pointer", typemodel.ListOf(str), true, "[]string"},
		{"map never pointer", typemodel.MapOf(str), true, "map[string]string"},
		{"nullable element", typemodel.ListOf(str.WithNullable(true)), false, "[]*string"},
		{"nullable map value", typemodel.MapOf(typemodel.NamedType("Pet").WithNullable(true)), false, "map[string]*Pet"},
		{"nested list", typemodel.ListOf(typemodel.ListOf(typemodel.Any())), false, "[][]any"},
		{"optional object", typemodel.NamedType("Pet"), true, "*Pet"},
		{"optional enum", typemodel.NamedType("Status"), true, "*Status"},
		{"alias of list", typemodel.NamedType("Names"), true, "Names"},
		{"alias of scalar", typemodel.NamedType("Label"), true, "*Label"},
		{"alias of object", typemodel.NamedType("PetAlias"), true, "*PetAlias"},
		{"unknown named", typemodel.NamedType("Elsewhere"), true, "*Elsewhere"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.useType(tt.typ, tt.optional))
		})
	}
}

func TestValueTarget(t *testing.T) {
	p := mappingPlan()

	assert.Equal(t, "Pet", p.valueTarget(typemodel.NamedType("Pet")))
	assert.Equal(t, "Pet", p.valueTarget(typemodel.NamedType("PetAlias")))
	assert.Empty(t, p.valueTarget(typemodel.NamedType("Status")))
	assert.Empty(t, p.valueTarget(typemodel.NamedType("Names")))
	assert.Empty(t, p.valueTarget(typemodel.ListOf(typemodel.NamedType("Pet"))))
}

func TestSelfReferential(t *testing.T) {
	loop := typemodel.ListOf(typemodel.NamedType("Loop"))
	viaB := typemodel.MapOf(typemodel.NamedType("B"))
	viaA := typemodel.NamedType("A")
	pet := typemodel.NamedType("Pet")
	p := &plan{byName: map[string]*typemodel.Named{
		"Loop":  {Name: "Loop", Kind: typemodel.DeclAlias, Target: &loop},
		"A":     {Name: "A", Kind: typemodel.DeclAlias, Target: &viaB},
		"B":     {Name: "B", Kind: typemodel.DeclAlias, Target: &viaA},
		"Pet":   {Name: "Pet", Kind: typemodel.DeclObject},
		"Plain": {Name: "Plain", Kind: typemodel.DeclAlias, Target: &pet},
	}}

	assert.True(t, p.selfReferential(p.byName["Loop"]))
	assert.True(t, p.selfReferential(p.byName["A"]))
	assert.True(t, p.selfReferential(p.byName["B"]))
	assert.False(t, p.selfReferential(p.byName["Plain"]))
}

func TestEnumLiteral(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{"available", `"available"`},
		{`say "hi"`, `"say \"hi\""`},
		{int64(-3), "-3"},
		{1.5, "1.5"},
		{float64(2), "2"},
		{true, "true"},
		{uint8(7), "7"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, enumLiteral(tt.value))
	}
}
