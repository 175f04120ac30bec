package preflight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastypes/internal/testutil"
	"github.com/erraggy/oastypes/oaserrors"
)

func TestCheckData_Valid(t *testing.T) {
	c := &Checker{}
	report, err := c.CheckData(context.Background(), []byte(testutil.PetstoreYAML))
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", report.Version)
	assert.Equal(t, "Petstore", report.Title)
	assert.Equal(t, 4, report.Operations)
	assert.Equal(t, 3, report.Schemas)
}

func TestCheckData_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"empty", "", oaserrors.ErrParse},
		{"not a document", "{{{", oaserrors.ErrParse},
		{
			"missing info",
			"openapi: 3.0.3\npaths: {}\n",
			oaserrors.ErrValidation,
		},
		{
			"response without description",
			`openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /x:
    get:
      responses:
        "200": {}
`,
			oaserrors.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Checker{}).CheckData(context.Background(), []byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCheckSource_File(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreYAML)

	report, err := (&Checker{}).CheckSource(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Petstore", report.Title)

	_, err = (&Checker{}).CheckSource(context.Background(), path+".missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrParse)
}
