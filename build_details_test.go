package oastypes

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	result := Version()
	assert.NotEmpty(t, result)
	assert.True(t, result == "dev" || strings.HasPrefix(result, "v"),
		"Version() should be 'dev' or start with 'v', got: %s", result)
}

func TestGoVersion(t *testing.T) {
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestUserAgent(t *testing.T) {
	result := UserAgent()
	assert.Equal(t, "oastypes/"+Version(), result)
	assert.NotContains(t, result, " ")
	assert.NotContains(t, result, "\n")
}

func TestGeneratorInfo(t *testing.T) {
	assert.Equal(t, "oastypes (version "+Version()+")", GeneratorInfo())
}

func TestBuildInfo(t *testing.T) {
	result := BuildInfo()
	for _, label := range []string{"Version:", "Commit:", "Build Time:", "Go Version:"} {
		assert.Contains(t, result, label)
	}
	assert.Contains(t, result, Commit())
	assert.Contains(t, result, BuildTime())
}
