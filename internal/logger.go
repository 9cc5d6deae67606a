package internal

import (
	"io"
	"log"
	"os"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// maxLineWarnings caps per-line warnings emitted during a single scan.
const maxLineWarnings = 15

var (
	logLevel = LogLevelInfo
	logger   = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	logLevel = level
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// SetLogOutput redirects log output, returning the previous writer.
func SetLogOutput(w io.Writer) io.Writer {
	prev := logger.Writer()
	logger.SetOutput(w)
	return prev
}

func logf(level LogLevel, tag, format string, args ...any) {
	if logLevel >= level {
		logger.Printf("["+tag+"] "+format, args...)
	}
}

// LogError logs an error message
func LogError(format string, args ...any) {
	logf(LogLevelError, "ERROR", format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...any) {
	logf(LogLevelWarn, "WARN", format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	logf(LogLevelInfo, "INFO", format, args...)
}

// LogDebug logs a debug message
func LogDebug(format string, args ...any) {
	logf(LogLevelDebug, "DEBUG", format, args...)
}

// lineWarner emits at most maxLineWarnings warnings and counts the rest.
type lineWarner struct {
	emitted    int
	suppressed int
}

func (w *lineWarner) warn(format string, args ...any) {
	if w.emitted >= maxLineWarnings {
		w.suppressed++
		return
	}
	w.emitted++
	LogWarn(format, args...)
}

func (w *lineWarner) finish() {
	if w.suppressed > 0 {
		LogWarn("%d further line warning(s) suppressed", w.suppressed)
	}
}
