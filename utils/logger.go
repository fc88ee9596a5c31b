package utils

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger provides leveled logging throughout the application.
// Messages carry a "[component]" prefix by convention.
type Logger struct {
	l *log.Logger
}

// NewLoggerWithWriter creates a Logger writing to w at the named level
// (debug, info, warn, error). Unknown levels fall back to info.
func NewLoggerWithWriter(w io.Writer, level string) *Logger {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	return &Logger{
		l: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "2006-01-02 15:04:05",
			Level:           lvl,
		}),
	}
}

func (l *Logger) Info(format string, args ...any) {
	l.l.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.l.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.l.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.l.Debugf(format, args...)
}
