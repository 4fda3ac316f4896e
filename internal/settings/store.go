// Package settings holds the user's chat client preferences for one profile
// and persists every change through a storage backend.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/cristianoliveira/roomprefs/internal/logging"
	"github.com/cristianoliveira/roomprefs/internal/storage"
)

const defaultTimeout = 5 * time.Second

// Change describes one observed value change.
type Change struct {
	Key     string
	Old     any
	New     any
	Profile string
}

// Hook is consulted around every persisted change. BeforeSet may veto the
// change by returning an error; AfterSet runs once the value is stored.
type Hook interface {
	BeforeSet(c Change) error
	AfterSet(c Change) error
}

// FallbackError reports a stored value that could not be decoded and was
// replaced by the field default.
type FallbackError struct {
	Key string
	Raw string
	Err error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("ignoring stored value for %s, using default: %v", e.Key, e.Err)
}

func (e *FallbackError) Unwrap() error { return e.Err }

// Warning marks the error as non-fatal.
func (e *FallbackError) Warning() bool { return true }

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlatformTheme replaces the probe deciding whether the platform
// provides a theme. A non-empty result makes "system" the default theme.
func WithPlatformTheme(probe func() string) Option {
	return func(s *Store) {
		if probe != nil {
			s.platformTheme = probe
		}
	}
}

// WithIdenticonAvailable reports whether identicons can be rendered.
func WithIdenticonAvailable(available func() bool) Option {
	return func(s *Store) {
		if available != nil {
			s.identicon = available
		}
	}
}

// WithEmojiDefaultLabel sets the text EmojiFont returns for the bundled font.
func WithEmojiDefaultLabel(label string) Option {
	return func(s *Store) {
		if label != "" {
			s.emojiDefault = label
		}
	}
}

// WithHook installs a change hook.
func WithHook(h Hook) Option {
	return func(s *Store) { s.hook = h }
}

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Store is the in-memory cache of one profile's settings backed by a
// storage.Backend. Every setter writes through before it returns.
type Store struct {
	backend storage.Backend
	profile string

	// writeMu serializes writers; mu guards values.
	writeMu sync.Mutex
	mu      sync.RWMutex
	values  map[string]any

	subsMu  sync.Mutex
	subs    map[string]map[int]func(Change)
	allSubs map[int]func(Change)
	nextSub int

	logger        logging.Logger
	platformTheme func() string
	identicon     func() bool
	emojiDefault  string
	defaultTheme  string
	hook          Hook
	timeout       time.Duration
	warnings      []error
}

// New creates a Store for profile and loads it from backend.
// An empty profile selects storage.DefaultProfile.
func New(backend storage.Backend, profile string, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("settings: backend is required")
	}
	resolved, err := storage.ResolveProfile(profile)
	if err != nil {
		return nil, err
	}

	s := &Store{
		backend:       backend,
		profile:       resolved,
		values:        make(map[string]any, len(fieldList)),
		subs:          make(map[string]map[int]func(Change)),
		allSubs:       make(map[int]func(Change)),
		logger:        logging.GetGlobal(),
		platformTheme: envPlatformTheme,
		identicon:     func() bool { return true },
		emojiDefault:  EmojiFontDefault,
		timeout:       defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "settings", "profile", resolved)

	s.defaultTheme = ThemeLight
	if s.platformTheme() != "" {
		s.defaultTheme = ThemeSystem
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func envPlatformTheme() string {
	if v := os.Getenv("QT_QPA_PLATFORMTHEME"); v != "" {
		return v
	}
	return os.Getenv("ROOMPREFS_PLATFORM_THEME")
}

func (s *Store) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// load reads every known key of the profile, falling back to defaults for
// absent or malformed values.
func (s *Store) load() error {
	ctx, cancel := s.opContext()
	defer cancel()

	raw, err := s.backend.Load(ctx, s.profile)
	if err != nil {
		return fmt.Errorf("load profile %s: %w", s.profile, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range fieldList {
		s.values[f.Key] = clone(f.Default)
		text, ok := raw[f.Key]
		if !ok {
			continue
		}
		v, err := Decode(f, text)
		if err != nil {
			fallback := &FallbackError{Key: f.Key, Raw: text, Err: err}
			s.warnings = append(s.warnings, fallback)
			s.logger.Warn("malformed stored value, using default", "setting", f.Key, "error", err)
			continue
		}
		s.values[f.Key] = v
	}
	s.values[KeyProfile] = s.profile
	s.logger.Debug("settings loaded", "stored_keys", len(raw))
	return nil
}

// Profile returns the active namespace.
func (s *Store) Profile() string {
	return s.profile
}

// LoadWarnings returns a FallbackError for every stored value that was
// replaced by its default during load.
func (s *Store) LoadWarnings() []error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]error(nil), s.warnings...)
}

// Get returns the cached value of key. Derived fields are computed.
func (s *Store) Get(key string) (any, error) {
	if key == KeyHasNotifications {
		return s.HasNotifications(), nil
	}
	if _, ok := registry[key]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return s.value(key), nil
}

func (s *Store) value(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.values[key])
}

// Set validates value, writes it to the backend, updates the cache and
// notifies observers. Setting the current value is a no-op.
func (s *Store) Set(key string, value any) error {
	if key == KeyHasNotifications {
		return fmt.Errorf("%w: %s", ErrReadOnly, key)
	}
	f, ok := registry[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	v, err := normalize(f, value)
	if err != nil {
		return err
	}
	return s.set(f, v)
}

// SetString parses text according to the field kind and sets it.
func (s *Store) SetString(key, text string) error {
	if key == KeyHasNotifications {
		return fmt.Errorf("%w: %s", ErrReadOnly, key)
	}
	f, ok := registry[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	v, err := ParseText(f, text)
	if err != nil {
		return err
	}
	return s.set(f, v)
}

func (s *Store) set(f Field, v any) error {
	if f.Key == KeyProfile && v.(string) != s.profile {
		return fmt.Errorf("%w: active profile is %s", ErrProfileImmutable, s.profile)
	}

	change, derived, err := s.write(f, v)
	if err != nil || change == nil {
		return err
	}
	s.deliver(*change, derived)
	s.logger.Info("setting changed", "setting", f.Key, "value", Format(f, v))
	s.afterSet(*change)
	return nil
}

// afterSet runs the post-set hook. Its failure never undoes the change.
func (s *Store) afterSet(change Change) {
	if s.hook == nil {
		return
	}
	if err := s.hook.AfterSet(change); err != nil {
		s.logger.Warn("post-set hook failed", "setting", change.Key, "error", err)
	}
}

// write persists v and updates the cache under writeMu. A nil change means
// the value was already current.
func (s *Store) write(f Field, v any) (*Change, *Change, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	old := s.value(f.Key)
	if equal(old, v) {
		return nil, nil, nil
	}
	change := Change{Key: f.Key, Old: old, New: clone(v), Profile: s.profile}

	if s.hook != nil {
		if err := s.hook.BeforeSet(change); err != nil {
			return nil, nil, fmt.Errorf("set %s: %w", f.Key, err)
		}
	}

	encoded, err := Encode(f, v)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := s.opContext()
	defer cancel()
	if err := s.backend.Store(ctx, s.profile, f.Key, encoded); err != nil {
		s.logger.Error("failed to persist setting", "setting", f.Key, "error", err)
		return nil, nil, fmt.Errorf("set %s: %w", f.Key, err)
	}

	return &change, s.commit(change), nil
}

// commit updates the cache and returns the derived change, if any.
func (s *Store) commit(change Change) *Change {
	hadNotifications := s.HasNotifications()
	s.mu.Lock()
	s.values[change.Key] = clone(change.New)
	s.mu.Unlock()
	hasNotifications := s.HasNotifications()

	if hadNotifications == hasNotifications {
		return nil
	}
	return &Change{Key: KeyHasNotifications, Old: hadNotifications, New: hasNotifications, Profile: s.profile}
}

// deliver runs observers once no lock is held, so they may read or write
// the store.
func (s *Store) deliver(change Change, derived *Change) {
	s.notify(change)
	if derived != nil {
		s.notify(*derived)
	}
}

// Reset deletes the stored value of key and restores its default.
func (s *Store) Reset(key string) error {
	if key == KeyHasNotifications {
		return fmt.Errorf("%w: %s", ErrReadOnly, key)
	}
	f, ok := registry[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	change, derived, err := s.reset(f)
	if err != nil || change == nil {
		return err
	}
	s.deliver(*change, derived)
	s.logger.Info("setting reset", "setting", key)
	s.afterSet(*change)
	return nil
}

// reset deletes the stored value. When that changes the effective value
// the pre-set hook runs first and may veto it, as for Set.
func (s *Store) reset(f Field) (*Change, *Change, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var change *Change
	if f.Key != KeyProfile {
		old := s.value(f.Key)
		if def := clone(f.Default); !equal(old, def) {
			change = &Change{Key: f.Key, Old: old, New: def, Profile: s.profile}
		}
	}
	if change != nil && s.hook != nil {
		if err := s.hook.BeforeSet(*change); err != nil {
			return nil, nil, fmt.Errorf("reset %s: %w", f.Key, err)
		}
	}

	ctx, cancel := s.opContext()
	defer cancel()
	if err := s.backend.Delete(ctx, s.profile, f.Key); err != nil {
		return nil, nil, fmt.Errorf("reset %s: %w", f.Key, err)
	}
	if change == nil {
		return nil, nil, nil
	}
	return change, s.commit(*change), nil
}

// ResetAll resets every stored field. It keeps going after a failure and
// returns all errors joined.
func (s *Store) ResetAll() error {
	var errs []error
	for _, f := range fieldList {
		if err := s.Reset(f.Key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers fn for changes of key and returns a function that
// removes the subscription.
func (s *Store) Subscribe(key string, fn func(Change)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func(Change))
	}
	s.subs[key][id] = fn

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs[key], id)
	}
}

// SubscribeAll registers fn for every change, derived fields included.
func (s *Store) SubscribeAll(fn func(Change)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.allSubs[id] = fn

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.allSubs, id)
	}
}

func (s *Store) notify(c Change) {
	s.subsMu.Lock()
	ids := make([]int, 0, len(s.subs[c.Key])+len(s.allSubs))
	fns := make(map[int]func(Change), cap(ids))
	for id, fn := range s.subs[c.Key] {
		ids = append(ids, id)
		fns[id] = fn
	}
	for id, fn := range s.allSubs {
		ids = append(ids, id)
		fns[id] = fn
	}
	s.subsMu.Unlock()

	// registration order
	sort.Ints(ids)
	for _, id := range ids {
		fns[id](c)
	}
}
