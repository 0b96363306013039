// Package logger provides leveled logging for the roparl pipeline.
// Info, Warn and Error messages are always printed so that batch runs
// leave a usable trail; Debug messages are printed only when verbose
// mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
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
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational message.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[WARN] "+format+"\n", args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[ERROR] "+format+"\n", args...)
}
