// Package logger provides leveled logging for the footprint tool.
// Debug and info messages are printed to stderr only in verbose mode
// (--verbose); warnings and errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr; a nil writer restores the default. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

func printf(always bool, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if always || verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	printf(false, "[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	printf(false, "[INFO] ", format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	printf(true, "[WARN] ", format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	printf(true, "[ERROR] ", format, args...)
}

// Run is a logger whose lines carry a run identifier.
type Run struct {
	prefix string
}

// ForRun returns a logger tagged with the first eight characters of id.
func ForRun(id string) Run {
	if len(id) > 8 {
		id = id[:8]
	}
	return Run{prefix: "run " + id + ": "}
}

// Debug prints a run message if verbose mode is enabled.
func (r Run) Debug(format string, args ...any) {
	printf(false, "[DEBUG] "+r.prefix, format, args...)
}

// Info prints a run message if verbose mode is enabled.
func (r Run) Info(format string, args ...any) {
	printf(false, "[INFO] "+r.prefix, format, args...)
}

// Warn prints a run warning.
func (r Run) Warn(format string, args ...any) {
	printf(true, "[WARN] "+r.prefix, format, args...)
}

// Error prints a run error.
func (r Run) Error(format string, args ...any) {
	printf(true, "[ERROR] "+r.prefix, format, args...)
}
