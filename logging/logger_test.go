package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfigFor(t *testing.T) {
	dev := ConfigFor("development", "error")
	assert.True(t, dev.IsDevelopment)
	assert.Equal(t, "console", dev.Encoding)
	assert.Equal(t, "debug", dev.Level, "development always logs at debug")

	prod := ConfigFor("production", "warn")
	assert.False(t, prod.IsDevelopment)
	assert.Equal(t, "json", prod.Encoding)
	assert.Equal(t, "warn", prod.Level)
	assert.False(t, prod.DisableStacktrace)

	test := ConfigFor("test", "error")
	assert.True(t, test.DisableStacktrace)
	assert.Equal(t, "json", test.Encoding)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	logger, err := New("warn", "production")
	require.NoError(t, err)
	defer logger.Sync() //nolint:errcheck

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	devLogger, err := New("error", "development")
	require.NoError(t, err)
	assert.True(t, devLogger.Core().Enabled(zapcore.DebugLevel))
}
