// Package render draws the settings panel with lipgloss.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/roomprefs/internal/colors"
	"github.com/cristianoliveira/roomprefs/internal/errors"
)

const (
	minLabelWidth   = 12
	maxLabelWidth   = 48
	labelValueGap   = 2
	cursorMarker    = "›"
	rowIndent       = 2
	dimColor        = "241"
	ellipsis        = "…"
	defaultRowWidth = 80
)

// RowState defines the inputs needed to render a control row.
type RowState struct {
	Label      string
	Value      string
	LabelWidth int
	Width      int
	Selected   bool
	Disabled   bool
	Editing    bool
}

// HeaderState defines the inputs needed to render the panel header.
type HeaderState struct {
	Profile string
	Backend string
	Width   int
}

// Header renders the panel title line.
func Header(state HeaderState) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(dimColor))

	title := titleStyle.Render("Settings")
	var meta []string
	if state.Profile != "" {
		meta = append(meta, "profile: "+state.Profile)
	}
	if state.Backend != "" {
		meta = append(meta, "backend: "+state.Backend)
	}
	if len(meta) == 0 {
		return title
	}
	return title + "  " + metaStyle.Render(truncate(strings.Join(meta, "  "), state.Width-10))
}

// LabelWidth returns the label column width fitting every label.
func LabelWidth(labels []string) int {
	width := minLabelWidth
	for _, l := range labels {
		if n := utf8.RuneCountInString(l); n > width {
			width = n
		}
	}
	if width > maxLabelWidth {
		width = maxLabelWidth
	}
	return width
}

// Row renders a single control row.
func Row(state RowState) string {
	width := state.Width
	if width <= 0 {
		width = defaultRowWidth
	}
	labelWidth := state.LabelWidth
	if labelWidth <= 0 {
		labelWidth = LabelWidth([]string{state.Label})
	}

	marker := " "
	if state.Selected {
		marker = cursorMarker
	}
	label := padRight(truncate(state.Label, labelWidth), labelWidth)
	valueWidth := width - rowIndent - labelWidth - labelValueGap
	value := state.Value
	if !state.Editing {
		value = truncate(value, valueWidth)
	}

	row := fmt.Sprintf("%s %s%s%s", marker, label, strings.Repeat(" ", labelValueGap), value)

	style := lipgloss.NewStyle()
	switch {
	case state.Disabled:
		style = style.Foreground(lipgloss.Color(dimColor))
	case state.Editing:
		style = style.Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow)))
	}
	if state.Selected && !state.Editing {
		style = style.Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	}
	return style.Render(row)
}

// Status renders the status line for the latest handler message.
func Status(msg errors.Message, width int) string {
	if msg.Text == "" {
		return ""
	}
	prefix, color := statusPrefix(msg.Type)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(color)))
	return style.Render(truncate(prefix+msg.Text, width))
}

func statusPrefix(t errors.MessageType) (string, string) {
	switch t {
	case errors.MessageTypeError:
		return "Error: ", colors.Red
	case errors.MessageTypeWarning:
		return "Warning: ", colors.Yellow
	case errors.MessageTypeSuccess:
		return "✓ ", colors.Green
	default:
		return "", colors.Cyan
	}
}

// Help renders the key help footer.
func Help(text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(dimColor)).Render(text)
}

func padRight(value string, width int) string {
	n := utf8.RuneCountInString(value)
	if n >= width {
		return value
	}
	return value + strings.Repeat(" ", width-n)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if utf8.RuneCountInString(value) <= width {
		return value
	}
	if width == 1 {
		return ellipsis
	}
	return string([]rune(value)[:width-1]) + ellipsis
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
