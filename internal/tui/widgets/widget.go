// Package widgets holds the sell form's input widgets. Each widget owns a
// few fields and reports its value to the form through one change message.
package widgets

import (
	"strings"

	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Widget is a focusable group of form fields.
type Widget interface {
	// FieldCount is the number of focus stops the widget has.
	FieldCount() int
	// Focus focuses one field. Only one field is focused at a time.
	Focus(field int) tea.Cmd
	// Blur removes focus from every field.
	Blur()
	// Update handles input for the focused field. The returned command
	// reports the widget's new value when it changed.
	Update(msg tea.Msg) tea.Cmd
	View() string
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// editHosted applies msg to an input holding a hosted URL. A hosted URL is
// never edited in place: typed runes start a new path, any other change
// clears it.
func editHosted(ti textinput.Model, msg tea.Msg) (textinput.Model, tea.Cmd) {
	before := ti.Value()
	updated, cmd := ti.Update(msg)
	if updated.Value() == before {
		return updated, cmd
	}

	updated.SetValue("")
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes {
		updated.SetValue(string(k.Runes))
	}
	return updated, cmd
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 50
	return ti
}

func label(text string, focused bool) string {
	if focused {
		return common.SelectedStyle.Render(text)
	}
	return common.UnselectedStyle.Render(text)
}

func inputBox(view string, focused bool) string {
	if focused {
		return common.FocusedInputStyle.Render(view)
	}
	return common.InputStyle.Render(view)
}

// choice is a left/right selector over a fixed option list.
type choice struct {
	options []string
	index   int
}

func newChoice(options []string) choice {
	return choice{options: options, index: -1}
}

func (c *choice) value() string {
	if c.index < 0 || c.index >= len(c.options) {
		return ""
	}
	return c.options[c.index]
}

func (c *choice) set(v string) {
	c.index = -1
	for i, o := range c.options {
		if o == v {
			c.index = i
			return
		}
	}
}

// handle moves the selection on left/right and reports whether it changed.
func (c *choice) handle(msg tea.Msg) bool {
	k, ok := msg.(tea.KeyMsg)
	if !ok || len(c.options) == 0 {
		return false
	}
	switch k.String() {
	case "right", " ":
		c.index = (c.index + 1) % len(c.options)
		return true
	case "left":
		if c.index <= 0 {
			c.index = len(c.options) - 1
		} else {
			c.index--
		}
		return true
	}
	return false
}

func (c *choice) view(focused bool) string {
	v := c.value()
	if v == "" {
		v = common.MutedTextStyle.Render("choose")
	}
	if focused {
		return "◂ " + v + " ▸"
	}
	return "  " + v
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}
