// Package logging contains the structured logger used by the planner service, its configuration
// loading and the command line tools.
package logging

import (
	"io"
	"os"
)

// globalLogger serves code that runs before a logger can be passed in, such as package init.
var globalLogger = NewWriterLogger("gridplan", os.Stderr)

// Global returns the process wide logger. It writes Info+ logs to stderr.
func Global() Logger {
	return globalLogger
}

// NewWriterLogger returns a new logger that outputs Info+ logs to the given writer in UTC. The
// command line tools use this to send logs to the app's error writer.
func NewWriterLogger(name string, w io.Writer) Logger {
	return &impl{name: name, level: NewAtomicLevelAt(INFO), inUTC: true, appenders: []Appender{NewWriterAppender(w)}}
}

// NewBlankLogger returns a new logger that outputs Debug+ logs in UTC, but without any
// pre-existing appenders/outputs.
func NewBlankLogger(name string) Logger {
	return &impl{name: name, level: NewAtomicLevelAt(DEBUG), inUTC: true}
}
