package panel

// MoveBackMsg asks the parent view to close the panel.
type MoveBackMsg struct{}

// TrayOptionChangedMsg reports a new value of the tray setting.
type TrayOptionChangedMsg struct {
	Enabled bool
}

// ThemeChangedMsg reports the theme now in effect.
type ThemeChangedMsg struct {
	Theme string
}

// DecryptSidebarChangedMsg reports a new value of the sidebar decryption
// setting.
type DecryptSidebarChangedMsg struct {
	Enabled bool
}

// storeChangedMsg wakes the panel after a change made outside it.
type storeChangedMsg struct{}
