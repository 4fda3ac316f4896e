package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/roomprefs/internal/config"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()

	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("HOME", tmp)
	config.Load()
	return tmp
}

func readLastLogLine(t *testing.T) string {
	t.Helper()

	logDir := filepath.Join(config.Get("state_dir", ""), "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	data, err := os.ReadFile(filepath.Join(logDir, entries[len(entries)-1].Name()))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	return lines[len(lines)-1]
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("ROOMPREFS_LOGGING_ENABLED", "true")
	t.Setenv("ROOMPREFS_LOGGING_LEVEL", "warn")
	t.Setenv("ROOMPREFS_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, "warn", cfg.Level)
	require.Equal(t, 5, cfg.MaxFiles)
	require.Equal(t, filepath.Base(os.Args[0]), cfg.Command)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestLogLevelMapping(t *testing.T) {
	setupTest(t)

	t.Setenv("ROOMPREFS_DEBUG", "true")
	t.Setenv("ROOMPREFS_QUIET", "true")
	t.Setenv("ROOMPREFS_LOGGING_LEVEL", "info")
	config.Load()
	require.Equal(t, "debug", FromGlobalConfig().Level, "debug wins over quiet")

	t.Setenv("ROOMPREFS_DEBUG", "false")
	config.Load()
	require.Equal(t, "error", FromGlobalConfig().Level)

	t.Setenv("ROOMPREFS_QUIET", "false")
	t.Setenv("ROOMPREFS_LOGGING_LEVEL", "warn")
	config.Load()
	require.Equal(t, "warn", FromGlobalConfig().Level)
}

func TestLogDir(t *testing.T) {
	tmp := setupTest(t)

	stateDir := config.Get("state_dir", "")
	require.True(t, strings.HasPrefix(stateDir, tmp))

	logDir, err := LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(stateDir, "logs"), logDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestInitDisabled(t *testing.T) {
	logger, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, noopLogger{}, logger)
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
	require.NoError(t, logger.Shutdown())
}

func TestInitEnabledCreatesFile(t *testing.T) {
	setupTest(t)
	t.Setenv("ROOMPREFS_LOGGING_ENABLED", "true")
	config.Load()

	cfg := FromGlobalConfig()
	cfg.Command = "testcmd"
	logger, err := Init(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()

	logDir := filepath.Join(config.Get("state_dir", ""), "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	fname := entries[0].Name()
	require.True(t, strings.HasPrefix(fname, logFilePrefix))
	require.Contains(t, fname, fmt.Sprintf("_PID%d_", os.Getpid()))
	require.True(t, strings.HasSuffix(fname, "_testcmd.log"))
	info, err := os.Stat(filepath.Join(logDir, fname))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoggingWritesJSON(t *testing.T) {
	setupTest(t)
	t.Setenv("ROOMPREFS_LOGGING_ENABLED", "true")
	config.Load()

	cfg := FromGlobalConfig()
	cfg.RunID = "run-1"
	logger, err := Init(cfg)
	require.NoError(t, err)

	logger.Info("setting changed", "setting", "user/theme", "count", 42)
	require.NoError(t, logger.Shutdown())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(readLastLogLine(t)), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "setting changed", entry["msg"])
	require.Equal(t, float64(os.Getpid()), entry["pid"])
	require.Equal(t, "run-1", entry["run"])
	require.Equal(t, "user/theme", entry["setting"])
	require.Equal(t, float64(42), entry["count"])
}

func TestLoggerRedactsSensitiveArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, Config{Level: "debug", PID: 1, Command: "test"})

	logger.Info("login", "access_token", "syt_abc", "password", "hunter2", "normal", "ok")

	line := buf.String()
	require.Contains(t, line, `"access_token":"[REDACTED]"`)
	require.Contains(t, line, `"password":"[REDACTED]"`)
	require.Contains(t, line, `"normal":"ok"`)
	require.NotContains(t, line, "syt_abc")
}

func TestRedactionEdgeCases(t *testing.T) {
	r := newRedactor()

	require.Equal(t, []any{"PaSsWoRd", RedactedValue}, r.redact([]any{"PaSsWoRd", "secret"}))
	require.Equal(t, []any{"api-token", RedactedValue}, r.redact([]any{"api-token", "xyz"}))
	require.Equal(t, []any{"auth/access_token", RedactedValue}, r.redact([]any{"auth/access_token", "xyz"}))

	require.Equal(t, []any{"apitoken", "xyz"}, r.redact([]any{"apitoken", "xyz"}))
	require.Equal(t, []any{"secretary", "value"}, r.redact([]any{"secretary", "value"}))
	require.Equal(t, []any{"key", "user/theme"}, r.redact([]any{"key", "user/theme"}), "setting keys stay readable")

	input := []any{"password", "hidden", "name", "john", "token", "abc", "age", 30}
	require.Equal(t, []any{"password", RedactedValue, "name", "john", "token", RedactedValue, "age", 30}, r.redact(input))
	require.Equal(t, []any{"password", "hidden", "name", "john", "token", "abc", "age", 30}, input, "input untouched")

	require.Equal(t, []any{"password", RedactedValue, "extra"}, r.redact([]any{"password", "hidden", "extra"}))
	require.Empty(t, r.redact([]any{}))
}

func createLogFiles(t *testing.T, dir string, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%s20250101_12000%d_PID999_test.log", logFilePrefix, i))
		require.NoError(t, os.WriteFile(path, nil, 0600))
		oldTime := time.Now().Add(-time.Duration(i+1) * time.Hour)
		require.NoError(t, os.Chtimes(path, oldTime, oldTime))
	}
}

func TestRotation(t *testing.T) {
	setupTest(t)
	t.Setenv("ROOMPREFS_LOGGING_ENABLED", "true")
	t.Setenv("ROOMPREFS_LOGGING_MAX_FILES", "2")
	config.Load()

	logDir, err := LogDir()
	require.NoError(t, err)
	createLogFiles(t, logDir, 3)
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "unrelated.txt"), nil, 0600))

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	require.NoError(t, logger.Shutdown())

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 3, "one old log, the new log and the unrelated file")
	_, err = os.Stat(filepath.Join(logDir, logFilePrefix+"20250101_120000_PID999_test.log"))
	require.NoError(t, err, "newest old log is kept")
	_, err = os.Stat(filepath.Join(logDir, logFilePrefix+"20250101_120002_PID999_test.log"))
	require.True(t, os.IsNotExist(err))
}

func TestRotationKeepsFilesBelowLimit(t *testing.T) {
	dir := t.TempDir()
	createLogFiles(t, dir, 5)

	require.NoError(t, rotate(dir, 10))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 5)
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, Config{Level: "info"})

	child := logger.With("profile", "work")
	child.Info("with context")
	logger.Info("without context")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], `"profile":"work"`)
	require.NotContains(t, lines[1], `"profile"`)
}

func TestGlobalLoggerDefaultsToNoop(t *testing.T) {
	require.IsType(t, noopLogger{}, GetGlobal())
	GetGlobal().With("component", "test").Info("no global logger yet")
	require.Empty(t, CurrentLogFile())
	require.NoError(t, ShutdownGlobal())
}

func TestWithRedactsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, Config{Level: "info"})

	logger.With("access_token", "syt_abc", "profile", "work").Info("session opened")

	line := buf.String()
	require.Contains(t, line, `"access_token":"[REDACTED]"`)
	require.Contains(t, line, `"profile":"work"`)
	require.NotContains(t, line, "syt_abc")
}

func TestChildShutdownClosesSharedFileOnce(t *testing.T) {
	setupTest(t)
	t.Setenv("ROOMPREFS_LOGGING_ENABLED", "true")
	config.Load()

	logger, err := Init(FromGlobalConfig())
	require.NoError(t, err)
	child := logger.With("component", "panel")
	child.Warn("setting rejected", "key", "user/font_size")

	require.NoError(t, child.Shutdown())
	require.NoError(t, logger.Shutdown(), "second close is a no-op")
	require.Contains(t, readLastLogLine(t), `"component":"panel"`)
}

func TestLogFileName(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 30, 5, 0, time.UTC)
	name := logFileName(Config{PID: 42, Command: "roomprefs set"}, at)
	require.Equal(t, "roomprefs_20261019_083005_PID42_roomprefs_set.log", name)
}

func TestLevelParsing(t *testing.T) {
	require.Equal(t, clog.DebugLevel, parseLevel("debug"))
	require.Equal(t, clog.InfoLevel, parseLevel("info"))
	require.Equal(t, clog.WarnLevel, parseLevel("warn"))
	require.Equal(t, clog.WarnLevel, parseLevel("warning"))
	require.Equal(t, clog.ErrorLevel, parseLevel("error"))
	require.Equal(t, clog.InfoLevel, parseLevel("unknown"))
}
