package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init initializes the logger with the specified verbose level
func Init(verbose bool) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}

	Set(l)
}

// Set replaces the package logger and the zap globals
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()

	logger = l
	zap.ReplaceGlobals(l)
}

// Get returns the package logger
func Get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return logger
}

// Close flushes buffered log entries
func Close() {
	_ = Get().Sync()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Get().Sugar().Debugw(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Get().Sugar().Infow(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Get().Sugar().Warnw(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Get().Sugar().Errorw(msg, args...)
}
