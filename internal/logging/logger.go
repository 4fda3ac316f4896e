// Package logging writes the structured log of a roomprefs run: one JSON
// file per invocation, every entry tagged with the process and run id.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/roomprefs/internal/colors"
)

// Logger is the structured logging interface used across roomprefs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a child logger that adds args to every entry.
	With(args ...any) Logger
	// Shutdown closes the log file.
	Shutdown() error
}

// jsonLogger writes redacted entries through charmbracelet/log. Children
// created by With share the file of their root.
type jsonLogger struct {
	out    *clog.Logger
	redact *redactor
	file   *logFile
}

// logFile is closed once, by whichever logger of the tree shuts down first.
type logFile struct {
	path string
	once sync.Once
	f    *os.File
	err  error
}

func (lf *logFile) close() error {
	lf.once.Do(func() { lf.err = lf.f.Close() })
	return lf.err
}

// Init opens a new log file for this run. A disabled config yields a
// logger that drops everything.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	dir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine log directory: %w", err)
	}
	if err := rotate(dir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}

	path := filepath.Join(dir, logFileName(cfg, time.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := newLogger(f, cfg)
	l.file = &logFile{path: path, f: f}
	return l, nil
}

// logFileName is roomprefs_<timestamp>_PID<pid>_<command>.log.
func logFileName(cfg Config, now time.Time) string {
	return fmt.Sprintf("%s%s_PID%d_%s.log",
		logFilePrefix,
		now.Format("20060102_150405"),
		cfg.PID,
		strings.ReplaceAll(cfg.Command, " ", "_"))
}

func newLogger(w io.Writer, cfg Config) *jsonLogger {
	out := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(cfg.Level),
		Formatter:       clog.JSONFormatter,
	})
	base := []any{"pid", cfg.PID, "command", cfg.Command}
	if cfg.RunID != "" {
		base = append(base, "run", cfg.RunID)
	}
	return &jsonLogger{out: out.With(base...), redact: newRedactor()}
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *jsonLogger) Debug(msg string, args ...any) { l.out.Debug(msg, l.redact.redact(args)...) }
func (l *jsonLogger) Info(msg string, args ...any)  { l.out.Info(msg, l.redact.redact(args)...) }
func (l *jsonLogger) Warn(msg string, args ...any)  { l.out.Warn(msg, l.redact.redact(args)...) }
func (l *jsonLogger) Error(msg string, args ...any) { l.out.Error(msg, l.redact.redact(args)...) }

// With redacts the added fields once, when the child is created.
func (l *jsonLogger) With(args ...any) Logger {
	return &jsonLogger{
		out:    l.out.With(l.redact.redact(args)...),
		redact: l.redact,
		file:   l.file,
	}
}

func (l *jsonLogger) Shutdown() error {
	if l.file == nil {
		return nil
	}
	return l.file.close()
}

func (l *jsonLogger) path() string {
	if l.file == nil {
		return ""
	}
	return l.file.path
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (n noopLogger) With(...any) Logger { return n }
func (noopLogger) Shutdown() error      { return nil }

// global is the logger of the current run, set once by InitGlobal.
var global struct {
	once   sync.Once
	mu     sync.RWMutex
	logger Logger
}

// InitGlobal opens the run's log file from the loaded configuration and
// mirrors console output into it. Only the first call has an effect.
func InitGlobal(runID string) error {
	var err error
	global.once.Do(func() {
		cfg := FromGlobalConfig()
		cfg.RunID = runID
		var l Logger
		l, err = Init(cfg)
		if err != nil {
			return
		}
		global.mu.Lock()
		global.logger = l
		global.mu.Unlock()

		colors.SetLogger(l)
		if path := CurrentLogFile(); path != "" {
			colors.Debug("Logging to file:", path)
		}
	})
	return err
}

// GetGlobal returns the run's logger, or one that drops everything before
// InitGlobal.
func GetGlobal() Logger {
	global.mu.RLock()
	defer global.mu.RUnlock()
	if global.logger == nil {
		return noopLogger{}
	}
	return global.logger
}

// ShutdownGlobal closes the run's log file.
func ShutdownGlobal() error {
	return GetGlobal().Shutdown()
}

// CurrentLogFile returns the path of the run's log file, or "" when file
// logging is off.
func CurrentLogFile() string {
	if l, ok := GetGlobal().(*jsonLogger); ok {
		return l.path()
	}
	return ""
}
