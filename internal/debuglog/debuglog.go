// ABOUTME: File-backed diagnostic logger for the TUI and commands
// ABOUTME: Writes structured zap output without touching the terminal display

package debuglog

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	logger *zap.SugaredLogger
	file   *os.File
)

// Init opens debug.log inside configDir and routes all diagnostics
// there. If configDir is empty, logging is disabled. The terminal is
// never written to; the TUI owns the screen.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		logger = nil
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(f),
		zapcore.DebugLevel,
	)

	file = f
	logger = zap.New(core).Sugar()
	return nil
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		logger.Sync()
		logger = nil
	}
	if file != nil {
		file.Close()
		file = nil
	}
}

// Log writes a formatted message to the debug log.
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return
	}
	logger.Infof(format, args...)
}

// Error logs an error with context. Nil errors are ignored.
func Error(context string, err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return
	}
	logger.Errorw(context, "error", err)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		return
	}
	logger.Warnf(format, args...)
}
