// Package logging provides the process-wide structured logger. Output goes to
// a log file because the terminal is owned by the chat UI.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.Mutex
	logger  = zap.NewNop()
	logFile *os.File
)

// Init directs the logger at logPath, creating parent directories as needed.
// An empty path disables logging.
func Init(logPath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	if strings.TrimSpace(logPath) == "" {
		logger = zap.NewNop()
		return nil
	}
	if dir := filepath.Dir(logPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	logFile = file

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), level)
	logger = zap.New(core)
	return nil
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	_ = logger.Sync()
	logger = zap.NewNop()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// L returns the current logger.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// LogEvent records an informational event.
func LogEvent(format string, args ...any) {
	L().Info(fmt.Sprintf(format, args...))
}

// LogDebug records a debug event; it is dropped unless debug logging is on.
func LogDebug(format string, args ...any) {
	l := L()
	if !l.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	l.Debug(fmt.Sprintf(format, args...))
}

// LogError records an error together with a short description of the failed operation.
func LogError(op string, err error) {
	L().Error(op, zap.Error(err))
}

// LogRequest records traffic between promptlab and a completion transport.
func LogRequest(direction, provider, model string, payload any) {
	L().Debug("llm traffic", requestFields(direction, provider, model, payload)...)
}

func requestFields(direction, provider, model string, payload any) []zap.Field {
	dir := strings.ToUpper(strings.TrimSpace(direction))
	providerValue := strings.TrimSpace(provider)
	if providerValue == "" {
		providerValue = "unknown"
	}
	modelValue := strings.TrimSpace(model)
	if modelValue == "" {
		modelValue = "unknown"
	}
	return []zap.Field{
		zap.String("direction", dir),
		zap.String("provider", providerValue),
		zap.String("model", modelValue),
		zap.String("payload", formatPayload(payload)),
	}
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
