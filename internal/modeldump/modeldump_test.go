package modeldump

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/erraggy/oastypes/analyzer"
	"github.com/erraggy/oastypes/internal/testutil"
)

func petstoreModel(t *testing.T) *Model {
	t.Helper()
	res, err := analyzer.New().AnalyzeParsed(testutil.Parse(t, testutil.PetstoreYAML))
	require.NoError(t, err)
	return FromResult(res)
}

func typeNames(m *Model) []string {
	var names []string
	for _, n := range m.Types {
		names = append(names, n.Name)
	}
	return names
}

func TestFromResult(t *testing.T) {
	m := petstoreModel(t)

	assert.Equal(t, "3.0.3", m.Version)
	assert.Equal(t, "Petstore", m.Title)
	assert.Equal(t, "1.0.0", m.APIVersion)
	assert.Equal(t, []string{"https://{region}.petstore.example.com/v1"}, m.Servers)
	if diff := cmp.Diff([]string{"Pet", "PetStatus", "NewPet"}, typeNames(m)); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, m.Groups, 3)
}

func TestKeepTypes(t *testing.T) {
	m := petstoreModel(t)
	m.KeepTypes()
	assert.Len(t, m.Types, 3)

	m.KeepTypes("PetStatus", "Nope")
	assert.Equal(t, []string{"PetStatus"}, typeNames(m))
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, petstoreModel(t), FormatJSON))

	var decoded struct {
		Title string `json:"title"`
		Types []struct {
			Name   string `json:"name"`
			Kind   string `json:"kind"`
			Fields []struct {
				WireName string `json:"wireName"`
				Type     struct {
					Kind string `json:"kind"`
					Name string `json:"name"`
				} `json:"type"`
			} `json:"fields"`
		} `json:"types"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "Petstore", decoded.Title)
	require.NotEmpty(t, decoded.Types)
	assert.Equal(t, "Pet", decoded.Types[0].Name)
	assert.Equal(t, "object", decoded.Types[0].Kind)
	assert.Equal(t, "id", decoded.Types[0].Fields[0].WireName)
	assert.Equal(t, "primitive", decoded.Types[0].Fields[0].Type.Kind)
	assert.Equal(t, "int64", decoded.Types[0].Fields[0].Type.Name)
	assert.Equal(t, "enum", decoded.Types[1].Kind)
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, petstoreModel(t), FormatYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Petstore", decoded["title"])

	types, ok := decoded["types"].([]any)
	require.True(t, ok)
	status := types[1].(map[string]any)
	assert.Equal(t, "PetStatus", status["name"])
	assert.Equal(t, "enum", status["kind"])
	values := status["values"].([]any)
	assert.Equal(t, "available", values[0].(map[string]any)["value"])
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	assert.Error(t, Encode(&bytes.Buffer{}, &Model{}, Format("xml")))
}
