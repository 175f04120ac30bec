package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointer(t *testing.T) {
	p := NewPointer("").Append("paths").Append("/pets/{id}").Append("get")
	assert.Equal(t, "#/paths/~1pets~1{id}/get", p.String())
	assert.Equal(t, "/paths/~1pets~1{id}/get", p.Fragment())

	items := NewPointer("pet.yaml").Append("allOf").AppendIndex(1)
	assert.Equal(t, "pet.yaml#/allOf/1", items.String())
	assert.Equal(t, "pet.yaml", items.Location())

	assert.Equal(t, "#", NewPointer("").String())
}

func TestEscapeToken(t *testing.T) {
	assert.Equal(t, "a~0b~1c", EscapeToken("a~b/c"))
	assert.Equal(t, "a~b/c", UnescapeToken("a~0b~1c"))
	// "~01" must decode to "~1", not "/"
	assert.Equal(t, "~1", UnescapeToken("~01"))
}

func TestSplitRef(t *testing.T) {
	tests := []struct {
		ref, loc, frag string
	}{
		{ref: "#/components/schemas/Pet", loc: "", frag: "/components/schemas/Pet"},
		{ref: "pet.yaml#/Pet", loc: "pet.yaml", frag: "/Pet"},
		{ref: "pet.yaml", loc: "pet.yaml", frag: ""},
		{ref: "https://example.com/a.json#/x", loc: "https://example.com/a.json", frag: "/x"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			loc, frag := SplitRef(tt.ref)
			assert.Equal(t, tt.loc, loc)
			assert.Equal(t, tt.frag, frag)
		})
	}
}

func TestParseFragment(t *testing.T) {
	tokens, err := ParseFragment("/components/schemas/Pet%20Owner")
	require.NoError(t, err)
	assert.Equal(t, []string{"components", "schemas", "Pet Owner"}, tokens)

	tokens, err = ParseFragment("/paths/~1pets/get")
	require.NoError(t, err)
	assert.Equal(t, []string{"paths", "/pets", "get"}, tokens)

	tokens, err = ParseFragment("")
	require.NoError(t, err)
	assert.Nil(t, tokens)

	_, err = ParseFragment("components/schemas")
	require.Error(t, err)

	_, err = ParseFragment("/bad%zz")
	require.Error(t, err)
}

func TestIsHTTPRef(t *testing.T) {
	assert.True(t, IsHTTPRef("https://example.com/a.yaml"))
	assert.True(t, IsHTTPRef("http://example.com/a.yaml"))
	assert.False(t, IsHTTPRef("./a.yaml"))
	assert.False(t, IsHTTPRef("http://"))
}

func TestPathParams(t *testing.T) {
	assert.Equal(t, []string{"userId", "petId"}, PathParams("/users/{userId}/pets/{petId}"))
	assert.Nil(t, PathParams("/pets"))
}
