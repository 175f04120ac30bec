package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearOASTYPESEnv clears all OASTYPES_* env vars to isolate tests from the ambient environment.
func clearOASTYPESEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASTYPES_CACHE_ENABLED", "OASTYPES_CACHE_MAX_SIZE",
		"OASTYPES_CACHE_FILE_TTL", "OASTYPES_CACHE_URL_TTL",
		"OASTYPES_CACHE_CONTENT_TTL", "OASTYPES_CACHE_SWEEP_INTERVAL",
		"OASTYPES_LIST_LIMIT", "OASTYPES_MAX_LIMIT",
		"OASTYPES_MAX_INLINE_SIZE", "OASTYPES_ALLOW_PRIVATE_IPS",
		"OASTYPES_HTTP_REFS", "OASTYPES_DEFAULT_PACKAGE",
		"OASTYPES_GENERATE_STRICT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOASTYPESEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)
	assert.False(t, c.ResolveHTTPRefs)
	assert.Equal(t, "api", c.DefaultPackage)
	assert.False(t, c.GenerateStrict)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOASTYPESEnv(t)
	t.Setenv("OASTYPES_CACHE_ENABLED", "false")
	t.Setenv("OASTYPES_CACHE_MAX_SIZE", "50")
	t.Setenv("OASTYPES_CACHE_FILE_TTL", "30m")
	t.Setenv("OASTYPES_CACHE_URL_TTL", "2m")
	t.Setenv("OASTYPES_CACHE_CONTENT_TTL", "10m")
	t.Setenv("OASTYPES_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("OASTYPES_LIST_LIMIT", "200")
	t.Setenv("OASTYPES_MAX_LIMIT", "500")
	t.Setenv("OASTYPES_MAX_INLINE_SIZE", "5242880")
	t.Setenv("OASTYPES_ALLOW_PRIVATE_IPS", "true")
	t.Setenv("OASTYPES_HTTP_REFS", "1")
	t.Setenv("OASTYPES_DEFAULT_PACKAGE", "petstore")
	t.Setenv("OASTYPES_GENERATE_STRICT", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 2*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 200, c.ListLimit)
	assert.Equal(t, 500, c.MaxLimit)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.True(t, c.AllowPrivateIPs)
	assert.True(t, c.ResolveHTTPRefs)
	assert.Equal(t, "petstore", c.DefaultPackage)
	assert.True(t, c.GenerateStrict)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearOASTYPESEnv(t)
	t.Setenv("OASTYPES_CACHE_MAX_SIZE", "banana")
	t.Setenv("OASTYPES_CACHE_FILE_TTL", "not-a-duration")
	t.Setenv("OASTYPES_CACHE_URL_TTL", "-1m")
	t.Setenv("OASTYPES_CACHE_ENABLED", "maybe")
	t.Setenv("OASTYPES_LIST_LIMIT", "-5")
	t.Setenv("OASTYPES_MAX_INLINE_SIZE", "abc")
	t.Setenv("OASTYPES_MAX_LIMIT", "0")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, 1000, c.MaxLimit)
}

func TestLoadConfig_InvalidPackage(t *testing.T) {
	for _, name := range []string{"Petstore", "type", "pet-store", "1api"} {
		t.Run(name, func(t *testing.T) {
			clearOASTYPESEnv(t)
			t.Setenv("OASTYPES_DEFAULT_PACKAGE", name)
			assert.Equal(t, "api", loadConfig().DefaultPackage)
		})
	}
}

func TestLoadConfig_PartialOverrides(t *testing.T) {
	clearOASTYPESEnv(t)
	t.Setenv("OASTYPES_LIST_LIMIT", "42")
	t.Setenv("OASTYPES_CACHE_URL_TTL", "10m")

	c := loadConfig()

	assert.Equal(t, 42, c.ListLimit)
	assert.Equal(t, 10*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.True(t, c.CacheEnabled)
}
