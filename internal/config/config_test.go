package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlemanifest/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	c, err := config.LoadConfig()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "bundlemanifest", c.AppName)
	assert.Equal(t, "3000", c.GetPort())
	assert.Equal(t, config.Development, c.Environment)
	assert.True(t, c.IsDevelopment())
	assert.Equal(t, "dist/bundles.json", c.ManifestPath)
	assert.Equal(t, "/", c.ServerRoot)
	assert.Equal(t, wd, c.ProjectRoot)
	assert.Equal(t, 256, c.PushCacheSize)
	assert.Equal(t, "debug", c.GetLogLevel())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("BUNDLEMANIFEST_ENV", config.Production)
	t.Setenv("BUNDLEMANIFEST_MANIFEST", "build/bundles.yaml")
	t.Setenv("BUNDLEMANIFEST_SERVER_ROOT", "/app")
	t.Setenv("BUNDLEMANIFEST_ROOT", "/srv/site")
	t.Setenv("BUNDLEMANIFEST_PUSH_CACHE_SIZE", "16")
	t.Setenv("BUNDLEMANIFEST_LOG_LEVEL", "warn")

	c, err := config.LoadConfig()
	require.NoError(t, err)

	assert.True(t, c.IsProduction())
	assert.Equal(t, "build/bundles.yaml", c.ManifestPath)
	assert.Equal(t, "/app", c.ServerRoot)
	assert.Equal(t, "/srv/site", c.ProjectRoot)
	assert.Equal(t, 16, c.PushCacheSize)
	assert.Equal(t, config.LogLevelWarn, c.LogLevel)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "environment", key: "BUNDLEMANIFEST_ENV", value: "staging"},
		{name: "log level", key: "BUNDLEMANIFEST_LOG_LEVEL", value: "trace"},
		{name: "push cache size", key: "BUNDLEMANIFEST_PUSH_CACHE_SIZE", value: "-1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestGetConfigIsCached(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	first := config.GetConfig()
	second := config.GetConfig()
	assert.Same(t, first, second)

	config.Reset()
	assert.NotSame(t, first, config.GetConfig())
}
