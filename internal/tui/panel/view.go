package panel

import (
	"strings"

	"github.com/cristianoliveira/roomprefs/internal/tui/controls"
	"github.com/cristianoliveira/roomprefs/internal/tui/render"
)

// View renders the panel.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(render.Header(render.HeaderState{
		Profile: m.store.Profile(),
		Backend: m.backend,
		Width:   m.width,
	}))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.hasStatus {
		b.WriteString(render.Status(m.statusMsg, m.width))
	}
	b.WriteString("\n")
	b.WriteString(render.Help(m.help.View(m.keys)))
	return b.String()
}

// syncViewport redraws the rows and scrolls the cursor into view.
func (m *Model) syncViewport() {
	lines := make([]string, 0, len(m.rows))
	for i, r := range m.rows {
		lines = append(lines, m.renderRow(r, i == m.cursor))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) renderRow(r row, selected bool) string {
	if r.control == nil {
		s := m.sections[r.section]
		return render.Section(render.SectionState{
			Title:    s.title,
			Count:    len(s.controls),
			Expanded: !s.collapsed,
			Selected: selected,
			Width:    m.width,
		})
	}
	editing := false
	if e, ok := r.control.(controls.Editor); ok {
		editing = e.Editing()
	}
	return render.Row(render.RowState{
		Label:      r.control.Label(),
		Value:      r.control.Display(),
		LabelWidth: m.labelWidth,
		Width:      m.width,
		Selected:   selected,
		Disabled:   !r.control.Enabled(),
		Editing:    editing,
	})
}
