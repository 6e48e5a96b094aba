package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" ERROR "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNew_NonTerminalWritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(New(&buf, "info"), "render")

	logger.Debug("hidden")
	logger.Info("hello", "output", 3)

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "hello", out["msg"])
	assert.Equal(t, "render", out["component"])
	assert.Equal(t, float64(3), out["output"])
}

func TestDiscard_DropsErrors(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
