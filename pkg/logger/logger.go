package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Logger is a printf-style logger backed by a zap SugaredLogger.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New returns a development logger. It never fails: if zap cannot be built a no-op logger is used.
func New() *Logger {
	l, err := NewWithMode("development")
	if err != nil {
		return &Logger{sugar: zap.NewNop().Sugar()}
	}
	return l
}

// NewWithMode builds a logger for "production" (JSON) or any other mode (console).
func NewWithMode(mode string) (*Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &Logger{sugar: zapLogger.Sugar()}, nil
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}

func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}
