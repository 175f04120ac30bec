package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "snake", input: "user_profile", want: []string{"user", "profile"}},
		{name: "camel", input: "userProfile", want: []string{"user", "Profile"}},
		{name: "acronym run", input: "HTTPServer", want: []string{"HTTP", "Server"}},
		{name: "trailing acronym", input: "userID", want: []string{"user", "ID"}},
		{name: "digits stay attached", input: "api_v2_client", want: []string{"api", "v2", "client"}},
		{name: "path", input: "/api/v1/users", want: []string{"api", "v1", "users"}},
		{name: "diacritics folded", input: "café_crème", want: []string{"cafe", "creme"}},
		{name: "only separators", input: "-_./", want: nil},
		{name: "non-latin letters kept", input: "名前_id", want: []string{"名前", "id"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.input))
		})
	}
}

func TestToTypeIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: "Type"},
		{name: "simple", input: "pet", want: "Pet"},
		{name: "snake_case", input: "pet_status", want: "PetStatus"},
		{name: "kebab-case", input: "pet-owner", want: "PetOwner"},
		{name: "dotted", input: "com.example.Pet", want: "ComExamplePet"},
		{name: "already PascalCase", input: "PetOwner", want: "PetOwner"},
		{name: "camelCase", input: "petOwner", want: "PetOwner"},
		{name: "acronym kept in mixed case", input: "HTTPServer", want: "HTTPServer"},
		{name: "single acronym", input: "API", want: "API"},
		{name: "screaming snake", input: "USER_ROLE", want: "UserRole"},
		{name: "spaces", input: "List Pets Response", want: "ListPetsResponse"},
		{name: "leading digit", input: "404", want: "T404"},
		{name: "diacritics", input: "café", want: "Cafe"},
		{name: "keyword is exported", input: "type", want: "Type"},
		{name: "only symbols", input: "$$$", want: "Type"},
		{name: "versioned", input: "api_v2_client", want: "ApiV2Client"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToTypeIdentifier(tt.input))
		})
	}
}

func TestToFieldIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "Field"},
		{name: "snake", input: "first_name", want: "FirstName"},
		{name: "id suffix", input: "userID", want: "UserID"},
		{name: "leading digit", input: "1", want: "Field1"},
		{name: "at sign", input: "@type", want: "Type"},
		{name: "non-latin letters", input: "名前", want: "Field名前"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFieldIdentifier(tt.input))
		})
	}
}

func TestToConstantIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single caps word kept", input: "OK", want: "OK"},
		{name: "fail", input: "FAIL", want: "FAIL"},
		{name: "kebab", input: "in-progress", want: "InProgress"},
		{name: "screaming", input: "IN_PROGRESS", want: "InProgress"},
		{name: "lower", input: "available", want: "Available"},
		{name: "number", input: "1", want: "Value1"},
		{name: "negative number", input: "-1", want: "Minus1"},
		{name: "decimal", input: "1.5", want: "Value1Point5"},
		{name: "integer next to decimal", input: "15", want: "Value15"},
		{name: "negative decimal", input: "-0.25", want: "Minus0Point25"},
		{name: "dotted text", input: "v1.beta", want: "V1Beta"},
		{name: "empty", input: "", want: "Empty"},
		{name: "boolean", input: "true", want: "True"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToConstantIdentifier(tt.input))
		})
	}
}

func TestToParamIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "param"},
		{name: "simple", input: "limit", want: "limit"},
		{name: "snake", input: "page_size", want: "pageSize"},
		{name: "header", input: "X-Request-ID", want: "xRequestID"},
		{name: "keyword", input: "type", want: "type_"},
		{name: "range keyword", input: "range", want: "range_"},
		{name: "leading acronym lowered", input: "ID", want: "id"},
		{name: "leading digit", input: "2", want: "param2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToParamIdentifier(tt.input))
		})
	}
}

func TestToMethodIdentifier(t *testing.T) {
	tests := []struct {
		name        string
		operationID string
		method      string
		path        string
		want        string
	}{
		{name: "operation id", operationID: "listPets", method: "get", path: "/pets", want: "ListPets"},
		{name: "snake operation id", operationID: "list_pets", method: "get", path: "/pets", want: "ListPets"},
		{name: "from path", method: "get", path: "/pets/{petId}", want: "GetPetsByPetId"},
		{name: "root path", method: "POST", path: "/", want: "Post"},
		{name: "blank operation id", operationID: "  ", method: "delete", path: "/pets", want: "DeletePets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMethodIdentifier(tt.operationID, tt.method, tt.path))
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "pet_store", ToSnakeCase("PetStore"))
	assert.Equal(t, "http_server", ToSnakeCase("HTTPServer"))
	assert.Equal(t, "default", ToSnakeCase("default"))
	assert.Equal(t, "", ToSnakeCase(""))
}

func TestDisambiguate(t *testing.T) {
	taken := map[string]bool{"Pet": true, "Pet2": true}
	isTaken := func(s string) bool { return taken[s] }

	assert.Equal(t, "Owner", Disambiguate("Owner", isTaken))
	assert.Equal(t, "Pet3", Disambiguate("Pet", isTaken))
}

func TestIdentifiersAreValidGo(t *testing.T) {
	inputs := []string{"", "123", "$ref", "x-y-z", "日本語", "café", "type", "  spaced  out  "}
	for _, in := range inputs {
		for _, id := range []string{ToTypeIdentifier(in), ToFieldIdentifier(in), ToConstantIdentifier(in)} {
			assert.NotEmpty(t, id)
			assert.False(t, strings.ContainsAny(id, " -.$/"), "identifier %q from %q", id, in)
		}
		assert.False(t, IsKeyword(ToParamIdentifier(in)), "param from %q", in)
	}
}
