package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildJSON(t *testing.T) {
	t.Setenv("LOG_TYPE", "json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE_ENABLED", "false")
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var out bytes.Buffer
	log := build(&out)
	log.Debug().Uint32("ledger_index", 42).Msg("Ledger summarized")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "explorer", entry["service"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, float64(42), entry["ledger_index"])
	assert.Equal(t, "Ledger summarized", entry["message"])
}

func TestBuildDefaultsToInfo(t *testing.T) {
	t.Setenv("LOG_TYPE", "json")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE_ENABLED", "false")

	var out bytes.Buffer
	log := build(&out)
	log.Debug().Msg("hidden")
	assert.Empty(t, out.String())

	log.Info().Msg("shown")
	assert.Contains(t, out.String(), "shown")
}

func TestRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "explorer.log")
	w, err := rotatingFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, w.Filename)
	assert.True(t, w.Compress)

	t.Chdir(t.TempDir())
	w, err = rotatingFile("")
	require.NoError(t, err)
	assert.Equal(t, defaultLogFile, w.Filename)
}

func TestBuildFallsBackToConsoleWhenLogDirFails(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	t.Setenv("LOG_TYPE", "json")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", filepath.Join(blocker, "logs", "explorer.log"))

	var out bytes.Buffer
	log := build(&out)
	assert.Contains(t, out.String(), "Failed to create log directory")

	out.Reset()
	log.Info().Msg("still logging")
	assert.Contains(t, out.String(), "still logging")
}
