package utils

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type requestIDKey struct{}

var (
	loggerMu sync.RWMutex
	logger   = zap.NewNop()
)

// NewLogger builds the process logger. Development mode follows gin's debug mode.
func NewLogger(level string, development bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// SetLogger replaces the shared logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// L returns the shared logger.
func L() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LogEvent writes a standardized line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(ctx context.Context, module, action, message string, fields ...zap.Field) {
	fields = append(fields,
		zap.String("module", strings.ToLower(module)),
		zap.String("action", action),
		zap.String("request_id", RequestIDFrom(ctx)),
	)
	L().Info(message, fields...)
}

// LogWarn is LogEvent at warn level, used for best-effort side effects that failed.
func LogWarn(ctx context.Context, module, action, message string, err error) {
	L().Warn(message,
		zap.String("module", strings.ToLower(module)),
		zap.String("action", action),
		zap.String("request_id", RequestIDFrom(ctx)),
		zap.Error(err),
	)
}
