package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlemanifest/internal/config"
	"bundlemanifest/internal/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("bogus"))
}

func TestNewWritesJSONToStdout(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Options{Level: "info", JSON: true, Stdout: &buf})
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("route resolved", slog.String("route", "index"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "route resolved", record["msg"])
	assert.Equal(t, "index", record["route"])
}

func TestNewWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, closer, err := logging.New(logging.Options{
		Level:     "debug",
		Directory: dir,
		FileName:  "test.log",
		MaxSizeMB: 1,
		Console:   true,
		Stdout:    &console,
	})
	require.NoError(t, err)

	logger.Warn("manifest missing")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "manifest missing")
	assert.Contains(t, console.String(), "manifest missing")
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		AppName:         "bundlemanifest",
		Environment:     config.Production,
		LogLevel:        config.LogLevelWarn,
		LogsDirectory:   "logs",
		LogsMaxSizeInMb: 20,
	}

	opts := logging.OptionsFromConfig(cfg)
	assert.True(t, opts.JSON)
	assert.True(t, opts.Console)
	assert.Equal(t, "warn", opts.Level)
	assert.Equal(t, "bundlemanifest-production.log", opts.FileName)
	assert.Equal(t, 20, opts.MaxSizeMB)
}
