package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap so packages depend on one concrete logging type.
type Logger struct {
	*zap.Logger
	config *LoggerConfig
}

var (
	globalLogger *Logger
	once         sync.Once
)

// NewLogger builds the process-wide logger from the environment.
// Subsequent calls return the same instance.
func NewLogger() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()

		var zapConfig zap.Config
		if cfg.Level == "debug" {
			zapConfig = zap.NewDevelopmentConfig()
		} else {
			zapConfig = zap.NewProductionConfig()
			zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		}
		zapConfig.Level = zap.NewAtomicLevelAt(cfg.ToZapLevel())

		if cfg.OutputFile != "stdout" && cfg.OutputFile != "stderr" {
			logDir := filepath.Dir(cfg.OutputFile)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to create log directory '%s', using stdout: %v\n", logDir, err)
				zapConfig.OutputPaths = []string{"stdout"}
			} else {
				zapConfig.OutputPaths = []string{cfg.OutputFile, "stdout"}
			}
		} else {
			zapConfig.OutputPaths = []string{cfg.OutputFile}
		}
		zapConfig.ErrorOutputPaths = []string{"stderr"}

		if cfg.Format == "console" || cfg.Format == "text" {
			zapConfig.Encoding = "console"
			zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			zapConfig.Encoding = "json"
		}

		zl, err := zapConfig.Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing zap logger: %v. Falling back to production defaults.\n", err)
			zl, _ = zap.NewProduction()
		}

		globalLogger = &Logger{Logger: zl, config: cfg}
		globalLogger.Info("Logger initialized",
			zap.String("level", cfg.Level),
			zap.String("format", cfg.Format),
			zap.Strings("output_paths", zapConfig.OutputPaths))
	})
	return globalLogger
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), config: &LoggerConfig{Level: "info", Format: "json"}}
}

// Named adds a new path segment to the logger's name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), config: l.config}
}

// With adds structured context to the logger.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...), config: l.config}
}
