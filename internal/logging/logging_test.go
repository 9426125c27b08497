package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zap.DebugLevel},
		{"WARN", zap.WarnLevel},
		{"error", zap.ErrorLevel},
		{"info", zap.InfoLevel},
		{"verbose", zap.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "text"} {
		t.Run(format, func(t *testing.T) {
			logger, err := New("warn", format)
			require.NoError(t, err)
			assert.False(t, logger.Core().Enabled(zap.InfoLevel))
			assert.True(t, logger.Core().Enabled(zap.WarnLevel))
		})
	}
}

func TestNewSlog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := NewSlog(core)

	logger.Debug("hidden")
	logger.Info("session started", "session", "ABCD", "clients", 2)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "session started", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "ABCD", fields["session"])
	assert.EqualValues(t, 2, fields["clients"])

	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
