package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in, slog.LevelWarn))
		})
	}
}

func TestErrorErr_AddsErrorField(t *testing.T) {
	var buf bytes.Buffer
	prev := SetDefault(NewWithWriter(&buf, true, slog.LevelInfo))
	t.Cleanup(func() { SetDefault(prev) })

	ErrorErr(errors.New("boom"), "flatten failed", "input", "api.yaml")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "flatten failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "api.yaml", entry["input"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	prev := SetDefault(NewWithWriter(&buf, false, slog.LevelInfo))
	t.Cleanup(func() { SetDefault(prev) })

	Debug("hidden")
	Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContext(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))

	custom := With("request_id", "abc")
	ctx := WithContext(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
}
