// Package logger is the process-wide levelled logger. The level can be flipped at
// runtime (config reload) without rebuilding the underlying zap core.
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  = newLogger(level)
	sugar = base.WithOptions(zap.AddCallerSkip(1)).Sugar()
)

func newLogger(lvl zap.AtomicLevel) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Init sets the starting level. Unknown names fall back to info.
func Init(lvl string) {
	SetLevel(lvl)
}

// SetLevel changes the active level in place
func SetLevel(lvl string) {
	level.SetLevel(parseLevel(lvl))
}

// GetLevel returns the active level name
func GetLevel() string {
	return level.Level().String()
}

// Replace swaps the underlying logger. Tests use it with zaptest/observer cores.
func Replace(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// L returns the structured logger for callers that want typed fields
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func s() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debugf(format string, args ...interface{}) { s().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { s().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { s().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { s().Errorf(format, args...) }

// Sync flushes buffered entries; call before exit
func Sync() {
	_ = L().Sync()
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
