// Package panel implements the terminal settings panel. Every control is
// bound to one settings key; edits are written through the store and the
// panel follows changes made elsewhere.
package panel

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/roomprefs/internal/errors"
	"github.com/cristianoliveira/roomprefs/internal/logging"
	"github.com/cristianoliveira/roomprefs/internal/settings"
	"github.com/cristianoliveira/roomprefs/internal/tui/controls"
	"github.com/cristianoliveira/roomprefs/internal/tui/render"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, blank line, status line and help footer
	chromeLines = 4
)

// Option configures a Model.
type Option func(*Model)

// WithDeviceProvider sets where device and font choices come from.
func WithDeviceProvider(p DeviceProvider) Option {
	return func(m *Model) {
		if p != nil {
			m.devices = p
		}
	}
}

// WithBackendName shows the storage backend in the header.
func WithBackendName(name string) Option {
	return func(m *Model) { m.backend = name }
}

// WithOnMoveBack registers a callback run when the user leaves the panel.
func WithOnMoveBack(fn func()) Option {
	return func(m *Model) { m.onMoveBack = fn }
}

// WithOnTrayOptionChanged registers a callback for tray changes made in
// the panel.
func WithOnTrayOptionChanged(fn func(bool)) Option {
	return func(m *Model) { m.onTray = fn }
}

// WithOnThemeChanged registers a callback receiving the theme in effect.
func WithOnThemeChanged(fn func(string)) Option {
	return func(m *Model) { m.onTheme = fn }
}

// WithOnDecryptSidebarChanged registers a callback for sidebar decryption
// changes made in the panel.
func WithOnDecryptSidebarChanged(fn func(bool)) Option {
	return func(m *Model) { m.onDecrypt = fn }
}

// row is one line of the panel: a section heading when control is nil.
type row struct {
	section int
	control controls.Control
}

// Model is the bubbletea model of the settings panel.
type Model struct {
	store   *settings.Store
	devices DeviceProvider
	backend string
	logger  logging.Logger

	sections   []*section
	byKey      map[string]controls.Control
	rows       []row
	cursor     int
	labelWidth int

	width    int
	height   int
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	status    *errors.TUIHandler
	statusMsg errors.Message
	hasStatus bool

	pendingMu   sync.Mutex
	pending     map[string]struct{}
	changed     chan struct{}
	unsubscribe func()

	onMoveBack func()
	onTray     func(bool)
	onTheme    func(string)
	onDecrypt  func(bool)
}

// New builds the panel for store and loads every control from it.
func New(store *settings.Store, opts ...Option) *Model {
	m := &Model{
		store:   store,
		devices: DefaultDevices(),
		logger:  logging.GetGlobal().With("component", "panel"),
		byKey:   make(map[string]controls.Control),
		width:   defaultWidth,
		height:  defaultHeight,
		help:    help.New(),
		keys:    defaultKeyMap(),
		pending: make(map[string]struct{}),
		changed: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.status = errors.NewTUIHandler(func(msg errors.Message) {
		m.statusMsg = msg
		m.hasStatus = true
	})

	m.sections = m.buildSections()
	var labels []string
	for _, s := range m.sections {
		for _, c := range s.controls {
			m.byKey[c.Key()] = c
			labels = append(labels, c.Label())
		}
	}
	m.labelWidth = render.LabelWidth(labels)
	m.loadAll()
	m.rebuildRows()

	m.viewport = viewport.New(m.width, m.bodyHeight())
	m.unsubscribe = store.SubscribeAll(m.onStoreChange)
	m.syncViewport()
	return m
}

// Close stops following store changes.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init starts waiting for store changes.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

// onStoreChange runs on the writer's goroutine.
func (m *Model) onStoreChange(c settings.Change) {
	m.pendingMu.Lock()
	m.pending[c.Key] = struct{}{}
	m.pendingMu.Unlock()
	select {
	case m.changed <- struct{}{}:
	default:
	}
}

func (m *Model) waitForChange() tea.Cmd {
	changed := m.changed
	return func() tea.Msg {
		<-changed
		return storeChangedMsg{}
	}
}

// applyPending reloads the controls whose keys changed since the last
// update.
func (m *Model) applyPending() {
	m.pendingMu.Lock()
	keys := m.pending
	m.pending = make(map[string]struct{})
	m.pendingMu.Unlock()
	if len(keys) == 0 {
		return
	}

	for key := range keys {
		if c, ok := m.byKey[key]; ok {
			if e, isEditor := c.(controls.Editor); isEditor && e.Editing() {
				// Cancel restores the reloaded text.
				c.Load(m.read(key))
				continue
			}
			m.load(c)
		}
	}
	if _, ok := keys[settings.KeyCamera]; ok {
		m.refreshDeviceOptions()
	} else if _, ok := keys[settings.KeyCameraResolution]; ok {
		m.refreshDeviceOptions()
	}
	m.updateEnablement()
}

// read returns the value a control shows for key.
func (m *Model) read(key string) any {
	if key == settings.KeyTheme {
		return m.store.Theme()
	}
	v, err := m.store.Get(key)
	if err != nil {
		m.logger.Warn("unable to read setting", "key", key, "error", err)
		return nil
	}
	return v
}

func (m *Model) load(c controls.Control) {
	c.Load(m.read(c.Key()))
}

func (m *Model) loadAll() {
	m.refreshDeviceOptions()
	for _, s := range m.sections {
		for _, c := range s.controls {
			m.load(c)
		}
	}
	m.updateEnablement()
}

// refreshDeviceOptions chains camera, resolution and frame rate choices.
func (m *Model) refreshDeviceOptions() {
	camera := m.store.Camera()
	resolution := m.store.CameraResolution()
	if combo, ok := m.byKey[settings.KeyCameraResolution].(*controls.Combo); ok {
		combo.SetOptions(deviceOptions(m.devices.Resolutions(camera)))
		combo.Load(resolution)
	}
	if combo, ok := m.byKey[settings.KeyCameraFrameRate].(*controls.Combo); ok {
		combo.SetOptions(deviceOptions(m.devices.FrameRates(camera, resolution)))
		combo.Load(m.store.CameraFrameRate())
	}
}

func (m *Model) updateEnablement() {
	if c, ok := m.byKey[settings.KeyStartInTray]; ok {
		c.SetEnabled(m.store.Tray())
	}
	if c, ok := m.byKey[settings.KeyPrivacyScreenTimeout]; ok {
		c.SetEnabled(m.store.PrivacyScreen())
	}
	if c, ok := m.byKey[settings.KeyCameraResolution]; ok {
		c.SetEnabled(m.store.Camera() != "")
	}
	if c, ok := m.byKey[settings.KeyCameraFrameRate]; ok {
		c.SetEnabled(m.store.Camera() != "" && m.store.CameraResolution() != "")
	}
}

func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	for i, s := range m.sections {
		m.rows = append(m.rows, row{section: i})
		if s.collapsed {
			continue
		}
		for _, c := range s.controls {
			m.rows = append(m.rows, row{section: i, control: c})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the control under the cursor, or nil on a heading.
func (m *Model) Selected() controls.Control {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].control
}

// Control returns the control bound to key.
func (m *Model) Control(key string) (controls.Control, bool) {
	c, ok := m.byKey[key]
	return c, ok
}

// Status returns the latest status line message.
func (m *Model) Status() (errors.Message, bool) {
	return m.statusMsg, m.hasStatus
}

// commit writes the control's value to the store. On failure the error is
// shown and the control shows the stored value again.
func (m *Model) commit(c controls.Control) tea.Cmd {
	key := c.Key()
	var err error
	if _, isEditor := c.(controls.Editor); isEditor {
		text, _ := c.Value().(string)
		err = m.store.SetString(key, text)
	} else {
		err = m.store.Set(key, c.Value())
	}
	m.load(c)
	if err != nil {
		m.logger.Warn("setting rejected", "key", key, "error", err)
		m.status.Error(fmt.Sprintf("%s: %v", c.Label(), err))
		return nil
	}
	m.hasStatus = false
	return m.afterChange(key)
}

// afterChange refreshes dependent controls and reports the change.
func (m *Model) afterChange(key string) tea.Cmd {
	switch key {
	case settings.KeyCamera, settings.KeyCameraResolution:
		m.refreshDeviceOptions()
	}
	m.updateEnablement()
	return m.changeEvent(key)
}

// changeEvent reports changes other views react to.
func (m *Model) changeEvent(key string) tea.Cmd {
	switch key {
	case settings.KeyTray:
		enabled := m.store.Tray()
		if m.onTray != nil {
			m.onTray(enabled)
		}
		return func() tea.Msg { return TrayOptionChangedMsg{Enabled: enabled} }
	case settings.KeyTheme:
		theme := m.store.Theme()
		if m.onTheme != nil {
			m.onTheme(theme)
		}
		return func() tea.Msg { return ThemeChangedMsg{Theme: theme} }
	case settings.KeyDecryptSidebar:
		enabled := m.store.DecryptSidebar()
		if m.onDecrypt != nil {
			m.onDecrypt(enabled)
		}
		return func() tea.Msg { return DecryptSidebarChangedMsg{Enabled: enabled} }
	}
	return nil
}

func (m *Model) moveBack() tea.Cmd {
	if m.onMoveBack != nil {
		m.onMoveBack()
	}
	return func() tea.Msg { return MoveBackMsg{} }
}

func (m *Model) bodyHeight() int {
	h := m.height - chromeLines
	if h < 1 {
		return 1
	}
	return h
}
