package common

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Severity represents log message severity levels
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the logging contract for the simulation core. Components log
// state transitions at debug level; signal-level results stay on the
// output structs, never in the log.
type Logger interface {
	// Logf logs a formatted message with the specified severity
	Logf(severity Severity, format string, args ...interface{})

	// Debugf logs a formatted debug message
	Debugf(format string, args ...interface{})

	// Infof logs a formatted info message
	Infof(format string, args ...interface{})

	// Warningf logs a formatted warning message
	Warningf(format string, args ...interface{})

	// Error logs an error
	Error(err error)
}

// StdLogger implements the Logger interface using Go's standard logger
type StdLogger struct {
	out      *log.Logger
	err      *log.Logger
	minLevel Severity
}

// NewStdLogger creates a new standard logger writing to stdout/stderr
func NewStdLogger(minLevel Severity) *StdLogger {
	return NewStdLoggerWithWriter(os.Stdout, os.Stderr, minLevel)
}

// NewStdLoggerWithWriter creates a new standard logger with custom writers
func NewStdLoggerWithWriter(stdout, stderr io.Writer, minLevel Severity) *StdLogger {
	return &StdLogger{
		out:      log.New(stdout, "", log.Ltime),
		err:      log.New(stderr, "", log.Ltime),
		minLevel: minLevel,
	}
}

// Logf logs a formatted message with the specified severity
func (l *StdLogger) Logf(severity Severity, format string, args ...interface{}) {
	if severity < l.minLevel {
		return
	}
	msg := fmt.Sprintf("%s: %s", severity, fmt.Sprintf(format, args...))
	if severity >= SeverityError {
		l.err.Output(2, msg)
		return
	}
	l.out.Output(2, msg)
}

// Debugf logs a formatted debug message
func (l *StdLogger) Debugf(format string, args ...interface{}) {
	l.Logf(SeverityDebug, format, args...)
}

// Infof logs a formatted info message
func (l *StdLogger) Infof(format string, args ...interface{}) {
	l.Logf(SeverityInfo, format, args...)
}

// Warningf logs a formatted warning message
func (l *StdLogger) Warningf(format string, args ...interface{}) {
	l.Logf(SeverityWarning, format, args...)
}

// Error logs an error
func (l *StdLogger) Error(err error) {
	if err != nil {
		l.Logf(SeverityError, "%s", err.Error())
	}
}

// NoOpLogger is a logger that doesn't log anything
type NoOpLogger struct{}

// NewNoOpLogger creates a new no-op logger
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Logf does nothing
func (l *NoOpLogger) Logf(severity Severity, format string, args ...interface{}) {}

// Debugf does nothing
func (l *NoOpLogger) Debugf(format string, args ...interface{}) {}

// Infof does nothing
func (l *NoOpLogger) Infof(format string, args ...interface{}) {}

// Warningf does nothing
func (l *NoOpLogger) Warningf(format string, args ...interface{}) {}

// Error does nothing
func (l *NoOpLogger) Error(err error) {}
