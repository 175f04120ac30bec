package options

import (
	"errors"
	"testing"

	"github.com/erraggy/oastypes/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSingleInputSource(t *testing.T) {
	err := ValidateSingleInputSource("parser", "WithFilePath or WithBytes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	assert.Contains(t, err.Error(), "WithFilePath or WithBytes")

	err = ValidateSingleInputSource("parser", "x", true, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one")

	assert.NoError(t, ValidateSingleInputSource("parser", "x", false, true))
}

func TestNonNegative(t *testing.T) {
	assert.NoError(t, NonNegative("depth", 0))
	assert.NoError(t, NonNegative("size", int64(10)))
	err := NonNegative("depth", -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}
