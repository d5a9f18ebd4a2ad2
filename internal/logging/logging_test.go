package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/wealthwise/internal/logging"
)

func TestSetup_JSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, logging.Setup(&buf, "warn", "json"))

	slog.Info("hidden")
	slog.Warn("Using default collection", "collection", "goals")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Using default collection", entry["msg"])
	assert.Equal(t, "goals", entry["collection"])
}

func TestSetup_Invalid(t *testing.T) {
	var buf bytes.Buffer

	assert.Error(t, logging.Setup(&buf, "loud", "text"))
	assert.Error(t, logging.Setup(&buf, "info", "xml"))
}

func TestParseLevel(t *testing.T) {
	lvl, err := logging.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}
