// Package errors routes user-facing messages to the CLI or the settings panel.
package errors

import (
	stderrors "errors"
	"sync"
)

// ErrorHandler receives user-facing messages by severity.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the colored terminal writer used by CLIHandler.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages through a ColorOutput.
type CLIHandler struct {
	colors     ColorOutput
	mu         sync.Mutex
	inHandling bool
}

// NewCLIHandler returns a CLIHandler writing to colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

// Error prints msg. A reentrant call made while an error is being printed
// skips the bookkeeping and writes straight through.
func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.inHandling {
		h.mu.Unlock()
		h.colors.Error(msg)
		return
	}
	h.inHandling = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inHandling = false
		h.mu.Unlock()
	}()

	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.colors.Success(msg)
}

// Warner marks errors that should be reported as warnings rather than
// failures, for example a stored value that fell back to its default.
type Warner interface {
	Warning() bool
}

// Report sends err to h. Nil errors are ignored; errors implementing Warner
// with Warning() == true are reported as warnings.
func Report(h ErrorHandler, err error) {
	if err == nil || h == nil {
		return
	}
	var w Warner
	if stderrors.As(err, &w) && w.Warning() {
		h.Warning(err.Error())
		return
	}
	h.Error(err.Error())
}
