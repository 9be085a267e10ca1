package widgets

import (
	"github.com/Levipasha/retrend/internal/sell"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Price collects the asking price in whole rupees.
type Price struct {
	input   textinput.Model
	focused bool
}

// NewPrice creates an empty Price widget.
func NewPrice() *Price {
	ti := newInput("0", 12)
	ti.Prompt = "₹ "
	return &Price{input: ti}
}

func (w *Price) FieldCount() int { return 1 }

func (w *Price) Focus(int) tea.Cmd {
	w.focused = true
	return w.input.Focus()
}

func (w *Price) Blur() {
	w.focused = false
	w.input.Blur()
}

func (w *Price) Update(msg tea.Msg) tea.Cmd {
	if !w.focused {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && (k.Type == tea.KeyRunes || k.Type == tea.KeySpace) && !digitsOnly(k.Runes) {
		return nil
	}

	before := w.input.Value()
	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	if after := w.input.Value(); after != before {
		return tea.Batch(cmd, emit(sell.PriceChanged{Price: after}))
	}
	return cmd
}

func digitsOnly(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (w *Price) View() string {
	return lines(
		label("Price *", w.focused),
		inputBox(w.input.View(), w.focused),
	)
}
