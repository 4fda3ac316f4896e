// Package colors provides color output utilities.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[1;33m"
	Blue   = "\033[0;34m"
	Cyan   = "\033[0;36m"
	Reset  = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	mu           sync.RWMutex
	debugEnabled bool
	quiet        bool
	logger       Logger
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("ROOMPREFS_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetQuiet suppresses info and success output. Errors and warnings are
// always printed.
func SetQuiet(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil writers restore the process
// stdout/stderr. The settings panel uses this to keep stray output from
// tearing the alternate screen.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout = out
	stderr = errOut
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelSuccess
	levelWarning
	levelError
)

func emit(lvl level, w func() io.Writer, format string, msgs []string) {
	msg := strings.Join(msgs, " ")

	mu.RLock()
	l := logger
	isQuiet := quiet
	isDebug := debugEnabled
	mu.RUnlock()

	if lvl == levelDebug && !isDebug {
		return
	}
	if l != nil {
		switch lvl {
		case levelDebug:
			l.Debug(msg)
		case levelInfo:
			l.Info(msg)
		case levelSuccess:
			l.Info(msg, "type", "success")
		case levelWarning:
			l.Warn(msg)
		case levelError:
			l.Error(msg)
		}
	}
	if isQuiet && (lvl == levelInfo || lvl == levelSuccess) {
		return
	}
	if _, err := fmt.Fprintf(w(), format, msg); err != nil {
		// Last resort: the configured writer is broken, try the real stderr.
		fmt.Fprintf(os.Stderr, "failed to print message: %v\n", err)
	}
}

func currentStdout() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return stdout
}

func currentStderr() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return stderr
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	emit(levelError, currentStderr, Red+"Error:"+Reset+" %s"+Reset+"\n", msgs)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	emit(levelSuccess, currentStdout, Green+checkmark+Reset+" %s"+Reset+"\n", msgs)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	emit(levelWarning, currentStderr, Yellow+"Warning:"+Reset+" %s"+Reset+"\n", msgs)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	emit(levelInfo, currentStdout, Blue+"%s"+Reset+"\n", msgs)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	emit(levelDebug, currentStderr, Cyan+"Debug:"+Reset+" %s"+Reset+"\n", msgs)
}
