package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type LoggerHandler struct {
	mu       sync.RWMutex
	out      io.Writer
	useColor bool
	logger   zerolog.Logger
}

func NewLoggerHandler(level string) *LoggerHandler {
	l := &LoggerHandler{
		out:      os.Stdout,
		useColor: shouldUseColor(),
	}
	l.rebuild(parseLogLevel(level))
	return l
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func shouldUseColor() bool {
	if strings.EqualFold(os.Getenv("NO_COLOR"), "1") || strings.EqualFold(os.Getenv("NO_COLOR"), "true") {
		return false
	}
	if strings.EqualFold(os.Getenv("LOG_COLOR"), "0") || strings.EqualFold(os.Getenv("LOG_COLOR"), "false") {
		return false
	}
	return true
}

// rebuild must be called with mu held (or before the handler is shared).
func (l *LoggerHandler) rebuild(level zerolog.Level) {
	cw := zerolog.ConsoleWriter{
		Out:        l.out,
		NoColor:    !l.useColor,
		TimeFormat: time.RFC3339,
	}
	l.logger = zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

func (l *LoggerHandler) SetLevel(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = l.logger.Level(parseLogLevel(level))
}

func (l *LoggerHandler) SetUseColor(useColor bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.useColor = useColor
	l.rebuild(l.logger.GetLevel())
}

// SetOutput redirects the handler, mostly for tests.
func (l *LoggerHandler) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
	l.rebuild(l.logger.GetLevel())
}

func (l *LoggerHandler) Debugf(format string, args ...interface{}) {
	l.logf(zerolog.DebugLevel, format, args...)
}

func (l *LoggerHandler) Infof(format string, args ...interface{}) {
	l.logf(zerolog.InfoLevel, format, args...)
}

func (l *LoggerHandler) Warnf(format string, args ...interface{}) {
	l.logf(zerolog.WarnLevel, format, args...)
}

func (l *LoggerHandler) Errorf(format string, args ...interface{}) {
	l.logf(zerolog.ErrorLevel, format, args...)
}

func (l *LoggerHandler) logf(level zerolog.Level, format string, args ...interface{}) {
	l.mu.RLock()
	logger := l.logger
	l.mu.RUnlock()

	ev := logger.WithLevel(level)
	if ev == nil {
		return
	}
	ev.Str("src", callerFileName()).Msg(fmt.Sprintf(format, args...))
}

func callerFileName() string {
	const thisFile = "logger_handler.go"

	pcs := make([]uintptr, 16)
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return "unknown:0"
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		base := filepath.Base(frame.File)
		if base != thisFile {
			ext := filepath.Ext(base)
			return strings.TrimSuffix(base, ext)
		}
		if !more {
			break
		}
	}

	return "unknown"
}

var defaultLogger = NewLoggerHandler(os.Getenv("LOG_LEVEL"))

func SetLogLevel(level string) {
	defaultLogger.SetLevel(level)
}

func SetLogColor(useColor bool) {
	defaultLogger.SetUseColor(useColor)
}

func SetLogOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

func Debugf(format string, args ...interface{}) {
	defaultLogger.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	defaultLogger.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	defaultLogger.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	defaultLogger.Errorf(format, args...)
}
