package render

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/cristianoliveira/roomprefs/internal/errors"
	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber("\033[0;34m"))
	assert.Equal(t, "33", ansiColorNumber("\033[1;33m"))
	assert.Equal(t, "", ansiColorNumber("x"))
	assert.Equal(t, "", ansiColorNumber("\033[0m"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 0))
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "…", truncate("hello", 1))
	assert.Equal(t, "ñandú", truncate("ñandú", 5))
}

func TestLabelWidth(t *testing.T) {
	assert.Equal(t, minLabelWidth, LabelWidth([]string{"Tray"}))
	assert.Equal(t, 26, LabelWidth([]string{"Tray", "Send messages as Markdown!"}))
	assert.Equal(t, maxLabelWidth, LabelWidth([]string{strings.Repeat("x", 100)}))
}

func TestRowLayout(t *testing.T) {
	row := plain(Row(RowState{Label: "Theme", Value: "dark", LabelWidth: 14, Width: 40}))
	assert.Equal(t, "  Theme           dark", row)

	selected := plain(Row(RowState{Label: "Theme", Value: "dark", LabelWidth: 14, Width: 40, Selected: true}))
	assert.True(t, strings.HasPrefix(selected, cursorMarker+" Theme"))
}

func TestRowTruncatesLongValues(t *testing.T) {
	row := plain(Row(RowState{Label: "Hidden tags", Value: strings.Repeat("tag,", 30), LabelWidth: 12, Width: 40}))
	assert.LessOrEqual(t, utf8.RuneCountInString(row), 40)
	assert.True(t, strings.HasSuffix(row, ellipsis))
}

func TestRowDefaults(t *testing.T) {
	row := plain(Row(RowState{Label: "Tray", Value: "[x]"}))
	assert.Contains(t, row, "Tray")
	assert.Contains(t, row, "[x]")
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "Settings", plain(Header(HeaderState{})))
	h := plain(Header(HeaderState{Profile: "work", Backend: "sqlite", Width: 80}))
	assert.Equal(t, "Settings  profile: work  backend: sqlite", h)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "", Status(errors.Message{}, 80))
	assert.Equal(t, "Error: disk full", plain(Status(errors.Message{Text: "disk full", Type: errors.MessageTypeError}, 80)))
	assert.Equal(t, "Warning: careful", plain(Status(errors.Message{Text: "careful", Type: errors.MessageTypeWarning}, 80)))
	assert.Equal(t, "✓ saved", plain(Status(errors.Message{Text: "saved", Type: errors.MessageTypeSuccess}, 80)))
	assert.Equal(t, "note", plain(Status(errors.Message{Text: "note", Type: errors.MessageTypeInfo}, 80)))
}

func TestSection(t *testing.T) {
	assert.Equal(t, "▾ General (8)", plain(Section(SectionState{Title: "General", Count: 8, Expanded: true})))
	assert.Equal(t, "▸ Calls (10)", plain(Section(SectionState{Title: "Calls", Count: 10})))
	assert.Equal(t, "▾ Enc…", plain(Section(SectionState{Title: "Encryption", Count: 3, Expanded: true, Width: 6})))
}
