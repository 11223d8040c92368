package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		cfg := &LoggerConfig{Level: in}
		assert.Equal(t, want, cfg.ToZapLevel(), in)
	}
}

func TestDefaultConfigReadsEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "Console")

	cfg := DefaultConfig()

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.OutputFile)
}

func TestNamedKeepsConfig(t *testing.T) {
	l := NewNop().Named("child").With()
	assert.NotNil(t, l.Logger)
	assert.Equal(t, "info", l.config.Level)
}
