package iohook

import (
	"fmt"

	"go.uber.org/zap"
)

// LogLevel mirrors libuiohook's logger_t level argument.
type LogLevel uint8

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerFunc is the log sink signature installed via SetLoggerProc. It
// mirrors hook_set_logger_proc's flat C callback so embedders can route
// diagnostics into whatever logging stack they already run.
type LoggerFunc func(level LogLevel, format string, args ...any)

var activeLogger LoggerFunc = zapLogger

// SetLoggerProc installs proc as the process-wide log sink. Passing nil
// restores the default zap-backed logger.
func SetLoggerProc(proc LoggerFunc) {
	if proc == nil {
		activeLogger = zapLogger
		return
	}
	activeLogger = proc
}

func logf(level LogLevel, format string, args ...any) {
	if activeLogger == nil {
		return
	}
	activeLogger(level, format, args...)
}

// zapLogger is the default LoggerFunc, backed by a production zap
// logger. It is replaced wholesale by SetLoggerProc, never wrapped, so
// once an embedder installs its own sink no record goes through zap;
// zapBase itself is still built at package initialization.
var zapBase = mustNewZap()

func mustNewZap() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		// zap.NewProduction only fails on encoder config errors; the
		// default config never does, but fall back rather than panic.
		l = zap.NewNop()
	}
	return l
}

func zapLogger(level LogLevel, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	switch level {
	case LogDebug:
		zapBase.Debug(msg)
	case LogInfo:
		zapBase.Info(msg)
	case LogWarn:
		zapBase.Warn(msg)
	case LogError:
		zapBase.Error(msg)
	default:
		zapBase.Info(msg)
	}
}
