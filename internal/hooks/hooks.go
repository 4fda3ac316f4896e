// Package hooks runs user scripts around settings changes.
package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/roomprefs/internal/colors"
	"github.com/cristianoliveira/roomprefs/internal/config"
	"github.com/cristianoliveira/roomprefs/internal/logging"
	"github.com/cristianoliveira/roomprefs/internal/settings"
)

// Hook points.
const (
	PreSet  = "pre-set"
	PostSet = "post-set"
)

// Points lists the hook points in the order they run around a change.
var Points = []string{PreSet, PostSet}

// Failure modes.
const (
	FailureIgnore = "ignore"
	FailureWarn   = "warn"
	FailureAbort  = "abort"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultAsyncTimeout = 30 * time.Second
	defaultMaxAsync     = 10
	// outputWaitDelay bounds how long a killed script's children may keep
	// its output pipe open.
	outputWaitDelay = time.Second
)

// Options configures a Runner.
type Options struct {
	Dir         string
	Enabled     bool
	FailureMode string
	// Timeout bounds each synchronous script. pre-set scripts run while
	// the store holds its write lock.
	Timeout      time.Duration
	Async        bool
	AsyncTimeout time.Duration
	MaxAsync     int
	// Disabled lists hook points that never run.
	Disabled []string
	// Output receives script output. Defaults to os.Stderr.
	Output io.Writer
}

// OptionsFromConfig builds Options from the loaded configuration.
// Per-point switches use keys like hooks_enabled_pre_set.
func OptionsFromConfig() Options {
	opts := Options{
		Dir:          config.Get("hooks_dir", ""),
		Enabled:      config.GetBool("hooks_enabled", true),
		FailureMode:  config.Get("hooks_failure_mode", FailureWarn),
		Timeout:      time.Duration(config.GetInt("hooks_timeout", 10)) * time.Second,
		Async:        config.GetBool("hooks_async", false),
		AsyncTimeout: time.Duration(config.GetInt("hooks_async_timeout", 30)) * time.Second,
		MaxAsync:     config.GetInt("max_hooks", defaultMaxAsync),
	}
	for _, point := range Points {
		if !config.GetBool(pointConfigKey(point), true) {
			opts.Disabled = append(opts.Disabled, point)
		}
	}
	return opts
}

func pointConfigKey(point string) string {
	return "hooks_enabled_" + strings.ReplaceAll(point, "-", "_")
}

// Runner executes the scripts found in <Dir>/<hook point>/ in name order.
// It implements settings.Hook.
type Runner struct {
	opts   Options
	logger logging.Logger

	mu           sync.Mutex
	pendingCount int
	pending      sync.WaitGroup
}

var _ settings.Hook = (*Runner)(nil)

// New creates a Runner. Zero values in opts take their defaults.
func New(opts Options) *Runner {
	switch opts.FailureMode {
	case FailureIgnore, FailureWarn, FailureAbort:
	default:
		opts.FailureMode = FailureWarn
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.AsyncTimeout <= 0 {
		opts.AsyncTimeout = defaultAsyncTimeout
	}
	if opts.MaxAsync <= 0 {
		opts.MaxAsync = defaultMaxAsync
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return &Runner{
		opts:   opts,
		logger: logging.GetGlobal().With("component", "hooks"),
	}
}

// SetOutput redirects script output for scripts started from now on. A nil
// writer restores os.Stderr.
func (r *Runner) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	r.mu.Lock()
	r.opts.Output = w
	r.mu.Unlock()
}

func (r *Runner) output() io.Writer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts.Output
}

// Init creates the hooks directory and one subdirectory per hook point.
func (r *Runner) Init() error {
	if r.opts.Dir == "" {
		return fmt.Errorf("hooks directory is not configured")
	}
	for _, point := range Points {
		dir := filepath.Join(r.opts.Dir, point)
		if err := os.MkdirAll(dir, config.FileModeDir); err != nil {
			colors.Error(fmt.Sprintf("failed to create hooks directory %s: %v", dir, err))
			return fmt.Errorf("failed to create hooks directory %s: %w", dir, err)
		}
	}
	return nil
}

// BeforeSet runs pre-set hooks synchronously. In abort mode a failing
// script vetoes the change.
func (r *Runner) BeforeSet(c settings.Change) error {
	return r.run(PreSet, false, changeEnv(c)...)
}

// AfterSet runs post-set hooks, asynchronously when configured.
func (r *Runner) AfterSet(c settings.Change) error {
	return r.run(PostSet, r.opts.Async, changeEnv(c)...)
}

// Run executes the hooks of hookPoint with extra KEY=VALUE variables.
func (r *Runner) Run(hookPoint string, envVars ...string) error {
	return r.run(hookPoint, r.opts.Async, envVars...)
}

func changeEnv(c settings.Change) []string {
	env := []string{
		"ROOMPREFS_PROFILE=" + c.Profile,
		"ROOMPREFS_KEY=" + c.Key,
	}
	f, ok := settings.Lookup(c.Key)
	if !ok {
		return append(env,
			"ROOMPREFS_VALUE="+fmt.Sprint(c.New),
			"ROOMPREFS_OLD_VALUE="+fmt.Sprint(c.Old))
	}
	return append(env,
		"ROOMPREFS_VALUE="+settings.Format(f, c.New),
		"ROOMPREFS_OLD_VALUE="+settings.Format(f, c.Old))
}

func (r *Runner) enabled(hookPoint string) bool {
	if !r.opts.Enabled {
		return false
	}
	for _, p := range r.opts.Disabled {
		if p == hookPoint {
			return false
		}
	}
	return true
}

type script struct {
	path string
	name string
}

func (r *Runner) scripts(hookPoint string) []script {
	dir := filepath.Join(r.opts.Dir, hookPoint)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []script
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}
		out = append(out, script{path: path, name: e.Name()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Dir returns the hooks directory.
func (r *Runner) Dir() string { return r.opts.Dir }

// Scripts returns the names of the scripts of hookPoint in run order.
func (r *Runner) Scripts(hookPoint string) []string {
	var names []string
	for _, s := range r.scripts(hookPoint) {
		names = append(names, s.name)
	}
	return names
}

func (r *Runner) environment(hookPoint string, envVars []string) []string {
	env := os.Environ()
	env = append(env,
		"HOOK_POINT="+hookPoint,
		"HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
		"ROOMPREFS_HOOKS_FAILURE_MODE="+r.opts.FailureMode,
	)
	if exe, err := os.Executable(); err == nil {
		env = append(env, "ROOMPREFS_BINARY="+exe)
	}
	for _, v := range envVars {
		if strings.Contains(v, "=") {
			env = append(env, v)
		}
	}
	return env
}

func (r *Runner) run(hookPoint string, async bool, envVars ...string) error {
	if !r.enabled(hookPoint) || r.opts.Dir == "" {
		return nil
	}
	scripts := r.scripts(hookPoint)
	if len(scripts) == 0 {
		return nil
	}

	env := r.environment(hookPoint, envVars)
	colors.Debug(fmt.Sprintf("Running %s hooks (%d script(s))", hookPoint, len(scripts)))

	for _, s := range scripts {
		if async {
			r.startAsync(hookPoint, s, env)
			continue
		}
		if err := r.runSync(hookPoint, s, env); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runSync(hookPoint string, s script, env []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
	defer cancel()
	start := time.Now()
	cmd := exec.CommandContext(ctx, s.path)
	cmd.Env = env
	cmd.WaitDelay = outputWaitDelay
	output, err := cmd.CombinedOutput()
	duration := time.Since(start)
	if len(output) > 0 {
		_, _ = r.output().Write(output)
	}
	if ctx.Err() == context.DeadlineExceeded {
		err = fmt.Errorf("timed out after %s: %w", r.opts.Timeout, err)
	}

	if err == nil {
		r.logger.Debug("hook completed", "hook_point", hookPoint, "script", s.name, "duration", duration)
		return nil
	}

	r.logger.Warn("hook failed", "hook_point", hookPoint, "script", s.name, "error", err)
	switch r.opts.FailureMode {
	case FailureAbort:
		return fmt.Errorf("hook %s failed: %w, output: %s", s.name, err, strings.TrimSpace(string(output)))
	case FailureWarn:
		colors.Warning(fmt.Sprintf("hook %s failed: %v", s.name, err))
	}
	return nil
}

func (r *Runner) startAsync(hookPoint string, s script, env []string) {
	r.mu.Lock()
	if r.pendingCount >= r.opts.MaxAsync {
		r.mu.Unlock()
		colors.Warning(fmt.Sprintf("Too many async hooks pending (max: %d), skipping %s", r.opts.MaxAsync, s.name))
		return
	}
	r.pendingCount++
	r.pending.Add(1)
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), r.opts.AsyncTimeout)
	cmd := exec.CommandContext(ctx, s.path)
	cmd.Env = env
	cmd.WaitDelay = outputWaitDelay
	out := r.output()
	cmd.Stdout = out
	cmd.Stderr = out

	done := func() {
		cancel()
		r.mu.Lock()
		r.pendingCount--
		r.mu.Unlock()
		r.pending.Done()
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		if r.opts.FailureMode != FailureIgnore {
			colors.Warning(fmt.Sprintf("async hook %s failed to start: %v", s.name, err))
		}
		done()
		return
	}

	go func() {
		defer done()
		err := cmd.Wait()
		duration := time.Since(start)
		if ctx.Err() == context.DeadlineExceeded {
			colors.Warning(fmt.Sprintf("async hook %s timed out after %.2fs", s.name, duration.Seconds()))
		}
		if err != nil {
			r.logger.Warn("async hook failed", "hook_point", hookPoint, "script", s.name, "error", err)
			if r.opts.FailureMode != FailureIgnore {
				colors.Warning(fmt.Sprintf("async hook %s failed: %v (duration: %.2fs)", s.name, err, duration.Seconds()))
			}
			return
		}
		r.logger.Debug("async hook completed", "hook_point", hookPoint, "script", s.name, "duration", duration)
	}()
}

// Pending returns the number of async hooks still running.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pendingCount
}

// Shutdown waits for every async hook to finish.
func (r *Runner) Shutdown() {
	r.pending.Wait()
}
