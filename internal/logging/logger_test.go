package logging

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger(t *testing.T) {
	err := InitLogger()
	require.NoError(t, err)
	assert.NotNil(t, Logger)
	assert.NotNil(t, Logger.logger)
}

func TestInitLogger_WithLogLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Unsetenv("LOG_LEVEL")

	err := InitLogger()
	require.NoError(t, err)
	assert.True(t, Logger.logger.Core().Enabled(zapcore.DebugLevel))
}

func TestInitLogger_WithInvalidLogLevel(t *testing.T) {
	// Invalid level falls back to the production default
	os.Setenv("LOG_LEVEL", "invalid")
	defer os.Unsetenv("LOG_LEVEL")

	err := InitLogger()
	require.NoError(t, err)
	assert.False(t, Logger.logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Logger.logger.Core().Enabled(zapcore.InfoLevel))
}

func TestSafeLogger_WritesEntries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewSafeLogger(zap.New(core))

	logger.Debug("debug message")
	logger.Info("info message", zap.String("key", "value"))
	logger.Warn("warn message")
	logger.Error("error message", zap.Int("count", 42))

	require.Equal(t, 4, logs.Len())
	entries := logs.All()
	assert.Equal(t, "info message", entries[1].Message)
	assert.Equal(t, "value", entries[1].ContextMap()["key"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestSafeLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewSafeLogger(zap.New(core)).With(zap.String("kind", "id"))

	logger.Info("checked")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "id", logs.All()[0].ContextMap()["kind"])
}

func TestSafeLogger_NilLogger(t *testing.T) {
	logger := &SafeLogger{logger: nil}

	// All methods should be safe to call with nil logger
	logger.Info("test")
	logger.Warn("test")
	logger.Debug("test")
	logger.Error("test")
	assert.NotNil(t, logger.With(zap.String("k", "v")))
	assert.NoError(t, logger.Sync())

	var nilLogger *SafeLogger
	nilLogger.Info("test")
}
