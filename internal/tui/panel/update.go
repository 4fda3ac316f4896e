package panel

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/roomprefs/internal/tui/controls"
)

// Update handles messages and updates the panel state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.applyPending()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = m.bodyHeight()
	case storeChangedMsg:
		cmd = m.waitForChange()
	case tea.KeyMsg:
		if editor := m.activeEditor(); editor != nil {
			cmd = m.handleEditKey(editor, msg)
		} else {
			cmd = m.handleKey(msg)
		}
	default:
		if editor := m.activeEditor(); editor != nil {
			cmd = editor.Update(msg)
		}
	}

	m.syncViewport()
	return m, cmd
}

func (m *Model) activeEditor() controls.Editor {
	if e, ok := m.Selected().(controls.Editor); ok && e.Editing() {
		return e
	}
	return nil
}

func (m *Model) handleEditKey(editor controls.Editor, msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		editor.Commit()
		return m.commit(m.Selected())
	case tea.KeyEsc:
		editor.Cancel()
		return nil
	case tea.KeyCtrlC:
		return tea.Quit
	}
	return editor.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m.moveBack()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.bodyHeight()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.rows) - 1
	case key.Matches(msg, m.keys.Activate):
		return m.activate()
	case key.Matches(msg, m.keys.Left):
		return m.step(false)
	case key.Matches(msg, m.keys.Right):
		return m.step(true)
	case key.Matches(msg, m.keys.Reset):
		return m.resetSelected()
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.rows) {
		return
	}
	m.cursor = next
}

// usable reports whether c accepts edits, showing why not otherwise.
func (m *Model) usable(c controls.Control) bool {
	if !c.Enabled() {
		m.status.Warning(fmt.Sprintf("%s is unavailable", c.Label()))
		return false
	}
	return true
}

func (m *Model) activate() tea.Cmd {
	c := m.Selected()
	if c == nil {
		m.toggleSection(m.rows[m.cursor].section)
		return nil
	}
	if !m.usable(c) {
		return nil
	}
	switch typed := c.(type) {
	case controls.Toggler:
		typed.Toggle()
		return m.commit(c)
	case controls.Editor:
		return typed.Focus()
	case controls.Stepper:
		typed.Next()
		return m.commit(c)
	}
	m.status.Info(fmt.Sprintf("%s is read-only", c.Label()))
	return nil
}

// step cycles combos and spins. On a heading it collapses or expands the
// section.
func (m *Model) step(forward bool) tea.Cmd {
	c := m.Selected()
	if c == nil {
		s := m.sections[m.rows[m.cursor].section]
		if s.collapsed == forward {
			m.toggleSection(m.rows[m.cursor].section)
		}
		return nil
	}
	stepper, ok := c.(controls.Stepper)
	if !ok || !m.usable(c) {
		return nil
	}
	if forward {
		stepper.Next()
	} else {
		stepper.Prev()
	}
	return m.commit(c)
}

func (m *Model) toggleSection(index int) {
	m.sections[index].collapsed = !m.sections[index].collapsed
	m.rebuildRows()
	for i, r := range m.rows {
		if r.control == nil && r.section == index {
			m.cursor = i
			return
		}
	}
}

func (m *Model) resetSelected() tea.Cmd {
	c := m.Selected()
	if c == nil {
		return nil
	}
	if _, readOnly := c.(*controls.Label); readOnly {
		m.status.Info(fmt.Sprintf("%s is read-only", c.Label()))
		return nil
	}
	if err := m.store.Reset(c.Key()); err != nil {
		m.status.Error(fmt.Sprintf("%s: %v", c.Label(), err))
		return nil
	}
	m.load(c)
	m.status.Success(fmt.Sprintf("%s reset to default", c.Label()))
	return m.afterChange(c.Key())
}
