// Package controls implements the editable widgets of the settings panel.
// A control only holds display state; the panel writes its Value to the
// settings store and loads the stored value back.
package controls

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Control is one row of the settings panel bound to a settings key.
type Control interface {
	Key() string
	Label() string
	// Value returns what the panel writes to the store.
	Value() any
	// Load shows the store's current value.
	Load(v any)
	// Display renders the current value as text.
	Display() string
	Enabled() bool
	SetEnabled(on bool)
}

// Toggler is a control flipped by a single key press.
type Toggler interface {
	Toggle()
}

// Stepper is a control cycled through discrete values.
type Stepper interface {
	Next()
	Prev()
}

// Editor is a control edited as free text.
type Editor interface {
	Focus() tea.Cmd
	Editing() bool
	Update(msg tea.Msg) tea.Cmd
	// Commit ends editing and keeps the typed text.
	Commit()
	// Cancel ends editing and restores the previous text.
	Cancel()
}

type base struct {
	key      string
	label    string
	disabled bool
}

func (b *base) Key() string        { return b.key }
func (b *base) Label() string      { return b.label }
func (b *base) Enabled() bool      { return !b.disabled }
func (b *base) SetEnabled(on bool) { b.disabled = !on }

// Toggle is a boolean switch.
type Toggle struct {
	base
	on bool
}

// NewToggle creates a Toggle.
func NewToggle(key, label string) *Toggle {
	return &Toggle{base: base{key: key, label: label}}
}

func (t *Toggle) Value() any { return t.on }

func (t *Toggle) Load(v any) {
	t.on, _ = v.(bool)
}

func (t *Toggle) Display() string {
	if t.on {
		return "[x]"
	}
	return "[ ]"
}

// On reports the current state.
func (t *Toggle) On() bool { return t.on }

func (t *Toggle) Toggle() { t.on = !t.on }

// Option is one entry of a Combo.
type Option struct {
	Value any
	Label string
}

// StringOptions turns plain strings into options labelled by themselves.
func StringOptions(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}

// Combo picks one value from a fixed list. Next and Prev wrap around.
type Combo struct {
	base
	options []Option
	index   int
}

// NewCombo creates a Combo selecting the first option.
func NewCombo(key, label string, options []Option) *Combo {
	return &Combo{base: base{key: key, label: label}, options: append([]Option(nil), options...)}
}

func (c *Combo) Value() any {
	if len(c.options) == 0 {
		return nil
	}
	return c.options[c.index].Value
}

// Load selects v, adding it as an option when the list does not have it
// so values set elsewhere are still shown.
func (c *Combo) Load(v any) {
	for i, o := range c.options {
		if reflect.DeepEqual(o.Value, v) {
			c.index = i
			return
		}
	}
	c.options = append(c.options, Option{Value: v, Label: fmt.Sprint(v)})
	c.index = len(c.options) - 1
}

func (c *Combo) Display() string {
	if len(c.options) == 0 {
		return ""
	}
	label := c.options[c.index].Label
	if label == "" {
		return "(none)"
	}
	return label
}

// Options returns a copy of the option list.
func (c *Combo) Options() []Option {
	return append([]Option(nil), c.options...)
}

// SetOptions replaces the option list, keeping the current value selected.
func (c *Combo) SetOptions(options []Option) {
	current := c.Value()
	c.options = append([]Option(nil), options...)
	c.index = 0
	if current != nil {
		c.Load(current)
	}
}

func (c *Combo) Next() {
	if len(c.options) > 0 {
		c.index = (c.index + 1) % len(c.options)
	}
}

func (c *Combo) Prev() {
	if len(c.options) > 0 {
		c.index = (c.index - 1 + len(c.options)) % len(c.options)
	}
}

// FloatCombo picks from sorted numeric presets. Next and Prev stop at the
// ends.
type FloatCombo struct {
	base
	presets []float64
	index   int
}

// NewFloatCombo creates a FloatCombo selecting the smallest preset.
func NewFloatCombo(key, label string, presets []float64) *FloatCombo {
	p := append([]float64(nil), presets...)
	sort.Float64s(p)
	return &FloatCombo{base: base{key: key, label: label}, presets: p}
}

func (f *FloatCombo) Value() any {
	if len(f.presets) == 0 {
		return 0.0
	}
	return f.presets[f.index]
}

// Load selects v, inserting it among the presets when missing.
func (f *FloatCombo) Load(v any) {
	x, ok := v.(float64)
	if !ok || math.IsNaN(x) {
		return
	}
	i := sort.SearchFloat64s(f.presets, x)
	if i == len(f.presets) || f.presets[i] != x {
		f.presets = append(f.presets, 0)
		copy(f.presets[i+1:], f.presets[i:])
		f.presets[i] = x
	}
	f.index = i
}

func (f *FloatCombo) Display() string {
	return strconv.FormatFloat(f.Value().(float64), 'f', -1, 64)
}

func (f *FloatCombo) Next() {
	if f.index < len(f.presets)-1 {
		f.index++
	}
}

func (f *FloatCombo) Prev() {
	if f.index > 0 {
		f.index--
	}
}

// Spin is an integer in [min, max] changed by step.
type Spin struct {
	base
	value    int
	min, max int
	step     int
	special  string
	suffix   string
}

// NewSpin creates a Spin holding min.
func NewSpin(key, label string, min, max, step int) *Spin {
	if step <= 0 {
		step = 1
	}
	return &Spin{base: base{key: key, label: label}, value: min, min: min, max: max, step: step}
}

// WithSpecial shows text instead of the number when the value is min.
func (s *Spin) WithSpecial(text string) *Spin {
	s.special = text
	return s
}

// WithSuffix appends a unit to the displayed number.
func (s *Spin) WithSuffix(suffix string) *Spin {
	s.suffix = suffix
	return s
}

func (s *Spin) Value() any { return s.value }

func (s *Spin) Load(v any) {
	if n, ok := v.(int); ok {
		s.value = s.clamp(n)
	}
}

func (s *Spin) Display() string {
	if s.special != "" && s.value == s.min {
		return s.special
	}
	return strconv.Itoa(s.value) + s.suffix
}

// Bounds returns the accepted range.
func (s *Spin) Bounds() (int, int) { return s.min, s.max }

func (s *Spin) Next() { s.value = s.clamp(s.value + s.step) }
func (s *Spin) Prev() { s.value = s.clamp(s.value - s.step) }

func (s *Spin) clamp(n int) int {
	if n < s.min {
		return s.min
	}
	if n > s.max {
		return s.max
	}
	return n
}

// Text is a free-form string edited with a text input.
type Text struct {
	base
	input   textinput.Model
	text    string
	editing bool
	masked  bool
}

// NewText creates an empty Text control.
func NewText(key, label, placeholder string) *Text {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	input.CharLimit = 512
	return &Text{base: base{key: key, label: label}, input: input}
}

// Masked hides the value while not editing and echoes bullets while editing.
func (t *Text) Masked() *Text {
	t.masked = true
	t.input.EchoMode = textinput.EchoPassword
	return t
}

func (t *Text) Value() any { return t.text }

// Load shows v. Lists are joined with commas, or written as JSON when a
// comma list would not parse back to the same items. Loading while
// editing only updates the text restored by Cancel.
func (t *Text) Load(v any) {
	switch typed := v.(type) {
	case string:
		t.text = typed
	case []string:
		t.text = listText(typed)
	case nil:
		t.text = ""
	default:
		t.text = fmt.Sprint(typed)
	}
	if !t.editing {
		t.input.SetValue(t.text)
	}
}

func listText(items []string) string {
	for _, item := range items {
		if item == "" || strings.TrimSpace(item) != item ||
			strings.Contains(item, ",") || strings.HasPrefix(item, "[") {
			if data, err := json.Marshal(items); err == nil {
				return string(data)
			}
			break
		}
	}
	return strings.Join(items, ", ")
}

func (t *Text) Display() string {
	if t.editing {
		return t.input.View()
	}
	if t.masked && t.text != "" {
		return "********"
	}
	if t.text == "" {
		return "(empty)"
	}
	return t.text
}

func (t *Text) Focus() tea.Cmd {
	t.editing = true
	t.input.SetValue(t.text)
	t.input.CursorEnd()
	return t.input.Focus()
}

func (t *Text) Editing() bool { return t.editing }

func (t *Text) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *Text) Commit() {
	t.text = t.input.Value()
	t.editing = false
	t.input.Blur()
}

func (t *Text) Cancel() {
	t.editing = false
	t.input.Blur()
	t.input.SetValue(t.text)
}

// Label is a read-only value.
type Label struct {
	base
	text string
}

// NewLabel creates a Label.
func NewLabel(key, label string) *Label {
	return &Label{base: base{key: key, label: label}}
}

func (l *Label) Value() any { return l.text }

func (l *Label) Load(v any) {
	if v == nil {
		l.text = ""
		return
	}
	l.text = fmt.Sprint(v)
}

func (l *Label) Display() string {
	if l.text == "" {
		return "-"
	}
	return l.text
}
