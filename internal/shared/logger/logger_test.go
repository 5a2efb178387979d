package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedconfig "github.com/kinetix-inc/kinetix/internal/shared/config"
)

func TestInit_AppliesLevelFromConfig(t *testing.T) {
	cfg := &sharedconfig.LoggerConfig{
		Level:      "warn",
		Format:     "json",
		OutputPath: "stdout",
	}

	require.NoError(t, Init(cfg))
	require.NotNil(t, Logger)

	assert.False(t, Logger.Enabled(nil, slog.LevelInfo))
	assert.True(t, Logger.Enabled(nil, slog.LevelWarn))
}

func TestInit_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &sharedconfig.LoggerConfig{
		Level:      "info",
		Format:     "json",
		OutputPath: path,
	}

	require.NoError(t, Init(cfg))
	Logger.Info("service started", "port", 8080)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "service started", entry["msg"])
	assert.Equal(t, float64(8080), entry["port"])
}

func TestSetLevel(t *testing.T) {
	cfg := &sharedconfig.LoggerConfig{Level: "info", Format: "json", OutputPath: "stdout"}
	require.NoError(t, Init(cfg))

	SetLevel(slog.LevelDebug)
	assert.True(t, Logger.Enabled(nil, slog.LevelDebug))

	SetLevel(slog.LevelError)
	assert.False(t, Logger.Enabled(nil, slog.LevelWarn))
}
