// Package logger provides leveled logging for the auth pages server.
//
// Info and Debug go to stdout, errors to stderr. Debug output is discarded
// unless the level is "debug".
package logger

import (
	"io"
	"log"
	"os"
)

var (
	// InfoLogger handles informational messages.
	InfoLogger *log.Logger
	// ErrorLogger handles error messages.
	ErrorLogger *log.Logger
	// DebugLogger handles debug messages.
	DebugLogger *log.Logger
)

// Initialize sets up the loggers for the given level.
func Initialize(level string, development bool) error {
	return InitializeWriters(level, development, os.Stdout, os.Stderr)
}

// InitializeWriters is Initialize with explicit output and error writers.
func InitializeWriters(level string, development bool, out, errOut io.Writer) error {
	flags := log.Ldate | log.Ltime
	if development {
		flags |= log.Lshortfile
	}

	InfoLogger = log.New(out, "INFO: ", flags)
	ErrorLogger = log.New(errOut, "ERROR: ", flags)

	if level == "debug" {
		DebugLogger = log.New(out, "DEBUG: ", flags)
	} else {
		DebugLogger = log.New(io.Discard, "", 0)
	}

	return nil
}

// Info logs informational messages.
func Info(message string, args ...any) {
	if InfoLogger != nil {
		InfoLogger.Printf(message, args...)
	}
}

// Error logs error messages.
func Error(message string, args ...any) {
	if ErrorLogger != nil {
		ErrorLogger.Printf(message, args...)
	}
}

// Debug logs debug messages. No-op unless initialized with level "debug".
func Debug(message string, args ...any) {
	if DebugLogger != nil {
		DebugLogger.Printf(message, args...)
	}
}

// Fatal logs fatal messages and terminates the program.
func Fatal(message string, args ...any) {
	if ErrorLogger != nil {
		ErrorLogger.Printf(message, args...)
	}
	os.Exit(1)
}

// Sync flushes any buffered log entries (no-op for standard logger).
func Sync() {
	// No-op for standard log package
}
