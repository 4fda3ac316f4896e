package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/roomprefs/internal/colors"
)

const (
	sectionCollapsedSymbol = "▸"
	sectionExpandedSymbol  = "▾"
)

// SectionState defines the inputs needed to render a section heading.
type SectionState struct {
	Title    string
	Count    int
	Expanded bool
	Selected bool
	Width    int
	Styles   *SectionStyles
}

// SectionStyles defines styles for section headings.
type SectionStyles struct {
	Base     lipgloss.Style
	Selected lipgloss.Style
}

// Section renders a section heading with its control count.
func Section(state SectionState) string {
	styles := state.Styles
	if styles == nil {
		defaultStyles := defaultSectionStyles()
		styles = &defaultStyles
	}

	symbol := sectionCollapsedSymbol
	if state.Expanded {
		symbol = sectionExpandedSymbol
	}
	label := truncate(fmt.Sprintf("%s %s (%d)", symbol, state.Title, state.Count), state.Width)

	if state.Selected {
		return styles.Selected.Render(label)
	}
	return styles.Base.Render(label)
}

func defaultSectionStyles() SectionStyles {
	base := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	selected := lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color(ansiColorNumber(colors.Blue))).
		Foreground(lipgloss.Color("0"))
	return SectionStyles{
		Base:     base,
		Selected: selected,
	}
}
