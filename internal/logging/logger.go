package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is stamped on every log line.
const ServiceName = "synthforms"

var (
	// Logger is the global logger instance. It discards everything until InitLogger runs.
	Logger = Nop()
)

// SafeLogger wraps a zap logger so that a nil receiver or nil inner logger never panics.
type SafeLogger struct {
	logger *zap.Logger
}

// New wraps l. A nil l yields a logger that discards everything.
func New(l *zap.Logger) *SafeLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &SafeLogger{logger: l}
}

// Nop returns a logger that discards everything.
func Nop() *SafeLogger {
	return &SafeLogger{logger: zap.NewNop()}
}

// InitLogger initializes the global logger
func InitLogger() error {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(logLevel)); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	zl, err := config.Build(
		zap.AddCallerSkip(1),
		zap.Fields(
			zap.String("service", ServiceName),
			zap.String("version", "v1"),
		),
	)
	if err != nil {
		return err
	}

	Logger = New(zl)
	return nil
}

func (l *SafeLogger) Info(msg string, fields ...zap.Field) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info(msg, fields...)
}

func (l *SafeLogger) Warn(msg string, fields ...zap.Field) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Warn(msg, fields...)
}

func (l *SafeLogger) Debug(msg string, fields ...zap.Field) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug(msg, fields...)
}

func (l *SafeLogger) Error(msg string, fields ...zap.Field) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Error(msg, fields...)
}

// With returns a child logger carrying fields. Nil loggers are returned unchanged.
func (l *SafeLogger) With(fields ...zap.Field) *SafeLogger {
	if l == nil || l.logger == nil {
		return l
	}
	return &SafeLogger{logger: l.logger.With(fields...)}
}

// Sync flushes buffered entries.
func (l *SafeLogger) Sync() error {
	if l == nil || l.logger == nil {
		return nil
	}
	return l.logger.Sync()
}
