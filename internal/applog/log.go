package applog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type LogLevel uint8

const (
	LogLevelDebug LogLevel = iota + 1
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

var logLevelNames = []string{"", "DEBUG", "INFO", "WARN", "ERROR", "OFF"}

func (l LogLevel) String() string {
	if int(l) >= len(logLevelNames) {
		return ""
	}

	return logLevelNames[l]
}

func ParseLevel(s string) (LogLevel, error) {
	for i, name := range logLevelNames {
		if name != "" && strings.EqualFold(name, s) {
			return LogLevel(i), nil
		}
	}

	return 0, fmt.Errorf("unknown log level %q", s)
}

type Logger struct {
	pkg string
}

type LogHandler interface {
	Log(LogLevel, time.Time, string, string, ...any)
}

// WriterLogHandler prints log lines to Out, which must not be the stream the
// shutdown announcements are written to.
type WriterLogHandler struct {
	Out   io.Writer
	Level LogLevel

	mutex sync.Mutex
}

func (h *WriterLogHandler) Log(level LogLevel, when time.Time, pkg string, msg string, args ...any) {
	if level < h.Level || h.Level == LogLevelOff {
		return
	}

	line := fmt.Sprintf("%s [%s] %s %s\n", when.Format(time.RFC3339), level, pkg, fmt.Sprintf(msg, args...))

	h.mutex.Lock()
	defer h.mutex.Unlock()

	_, _ = io.WriteString(h.Out, line)
}

var logHandler LogHandler = &WriterLogHandler{Out: os.Stderr, Level: LogLevelWarn}
var logMutex sync.RWMutex

func SetLogHandler(h LogHandler) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logHandler = h
}

func New(pkg string) *Logger {
	return &Logger{pkg: pkg}
}

func Log(level LogLevel, when time.Time, pkg string, msg string, args ...any) {
	logMutex.RLock()
	defer logMutex.RUnlock()

	logHandler.Log(level, when, pkg, msg, args...)
}

func (l *Logger) Debugf(msg string, args ...any) {
	Log(LogLevelDebug, time.Now(), l.pkg, msg, args...)
}

func (l *Logger) Infof(msg string, args ...any) {
	Log(LogLevelInfo, time.Now(), l.pkg, msg, args...)
}

func (l *Logger) Warnf(msg string, args ...any) {
	Log(LogLevelWarn, time.Now(), l.pkg, msg, args...)
}
