package widgets

import (
	"github.com/Levipasha/retrend/internal/sell"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Details collects the ad title and description.
type Details struct {
	title       textinput.Model
	description textarea.Model
	focus       int
}

// NewDetails creates an empty Details widget.
func NewDetails() *Details {
	ta := textarea.New()
	ta.Placeholder = "Include condition, features and reason for selling"
	ta.CharLimit = 4096
	ta.SetWidth(52)
	ta.SetHeight(4)
	ta.ShowLineNumbers = false

	return &Details{
		title:       newInput("Mention the key features of your item", 70),
		description: ta,
		focus:       -1,
	}
}

func (w *Details) FieldCount() int { return 2 }

func (w *Details) Focus(field int) tea.Cmd {
	w.Blur()
	w.focus = field
	if field == 0 {
		return w.title.Focus()
	}
	return w.description.Focus()
}

func (w *Details) Blur() {
	w.title.Blur()
	w.description.Blur()
	w.focus = -1
}

func (w *Details) Update(msg tea.Msg) tea.Cmd {
	before := w.value()

	var cmd tea.Cmd
	switch w.focus {
	case 0:
		w.title, cmd = w.title.Update(msg)
	case 1:
		w.description, cmd = w.description.Update(msg)
	default:
		return nil
	}

	if after := w.value(); after != before {
		return tea.Batch(cmd, emit(after))
	}
	return cmd
}

func (w *Details) value() sell.DetailsChanged {
	return sell.DetailsChanged{Title: w.title.Value(), Description: w.description.Value()}
}

func (w *Details) View() string {
	return lines(
		label("Ad title *", w.focus == 0),
		inputBox(w.title.View(), w.focus == 0),
		label("Description *", w.focus == 1),
		w.description.View(),
	)
}
