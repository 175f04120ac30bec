package commands

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/erraggy/oastypes/internal/testutil"
)

type inspectedModel struct {
	Version string `json:"version" yaml:"version"`
	Title   string `json:"title" yaml:"title"`
	Types   []struct {
		Name string `json:"name" yaml:"name"`
	} `json:"types" yaml:"types"`
	Groups []struct {
		Name string `json:"name" yaml:"name"`
	} `json:"groups" yaml:"groups"`
}

func (m inspectedModel) typeNames() []string {
	names := make([]string, len(m.Types))
	for i, ty := range m.Types {
		names[i] = ty.Name
	}
	return names
}

func TestHandleInspect_JSON(t *testing.T) {
	out := captureOutput(t)
	spec := testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreYAML)

	require.NoError(t, HandleInspect([]string{"--format", "json", spec}))

	var m inspectedModel
	require.NoError(t, json.Unmarshal(out.Bytes(), &m))
	assert.Equal(t, "3.0.3", m.Version)
	assert.Equal(t, "Petstore", m.Title)
	assert.Equal(t, []string{"Pet", "PetStatus", "NewPet"}, m.typeNames())
	assert.Len(t, m.Groups, 3)
}

func TestHandleInspect_YAMLFiltered(t *testing.T) {
	out := captureOutput(t)
	feedStdin(t, testutil.PetstoreYAML)

	require.NoError(t, HandleInspect([]string{"-l", "store", "-t", "NewPet", "-"}))

	var m inspectedModel
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &m))
	assert.Equal(t, []string{"NewPet"}, m.typeNames())
	require.Len(t, m.Groups, 1)
	assert.Equal(t, "store", m.Groups[0].Name)
}

func TestHandleInspect_Errors(t *testing.T) {
	captureOutput(t)
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no args", []string{}, "exactly one"},
		{"bad format", []string{"--format", "xml", "spec.yaml"}, "format must be json or yaml"},
		{"missing file", []string{"/tmp/oastypes-missing/spec.yaml"}, "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleInspect(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHandleInspect_Help(t *testing.T) {
	assert.NoError(t, HandleInspect([]string{"-h"}))
}
