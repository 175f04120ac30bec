package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Petstore(t *testing.T) {
	pr := Parse(t, PetstoreYAML)

	require.NotNil(t, pr.Document)
	assert.Equal(t, "3.0.3", pr.Version)
	assert.Equal(t, "Petstore", pr.Document.Info.Title)
	assert.Len(t, pr.Document.Paths, 3)
	assert.NotNil(t, pr.Document.Components.Schema("PetStatus"))
	assert.Empty(t, pr.Warnings)
}

func TestWriteTempFiles(t *testing.T) {
	doc := map[string]any{"openapi": "3.0.3", "info": map[string]any{"title": "T", "version": "1"}}

	tests := []struct {
		name string
		path string
	}{
		{"yaml", WriteTempYAML(t, doc)},
		{"json", WriteTempJSON(t, doc)},
		{"raw", WriteTempFile(t, "doc.yaml", PetstoreYAML)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := os.ReadFile(tt.path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "openapi")
		})
	}
}
