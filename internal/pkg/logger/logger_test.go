package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, slog.LevelWarn)

	log.Info("price saved", "id", 1)
	log.Warn("cache set failed", "key", "btc_price:cache:1")

	out := buf.String()
	assert.NotContains(t, out, "price saved")
	assert.Contains(t, out, "cache set failed")
	assert.Contains(t, out, "key=btc_price:cache:1")
	assert.Contains(t, out, "Z level=WARN")
}
