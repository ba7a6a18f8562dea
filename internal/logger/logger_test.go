package logger

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewSlogWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogWriter(SlogConfig{Level: "info", Format: "json"}, &buf)

	log.Debug("hidden")
	log.Info("movie created", "movie_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "movie created", entry["msg"])
	assert.EqualValues(t, 7, entry["movie_id"])

	_, err := time.Parse(time.RFC3339, entry["time"].(string))
	assert.NoError(t, err)
}

func TestNewSlogWriterText(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogWriter(SlogConfig{Level: "warn", Format: "text"}, &buf)

	log.Info("skipped")
	log.Warn("genre not found", "genre_id", 3)

	assert.NotContains(t, buf.String(), "skipped")
	assert.Contains(t, buf.String(), "genre_id=3")
}
