package widgets

import (
	"strings"

	"github.com/Levipasha/retrend/internal/sell"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var modeOptions = []string{string(sell.ModeAddress), string(sell.ModeLocation)}

// Address collects either a street address or a locality, with a toggle
// choosing which one the ad uses.
type Address struct {
	mode     choice
	address  textinput.Model
	location textinput.Model
	focus    int
}

// NewAddress creates an Address widget with the location field prefilled.
// A prefilled location is the one the ad uses until the mode is switched.
func NewAddress(location string) *Address {
	mode := newChoice(modeOptions)
	if strings.TrimSpace(location) != "" {
		mode.set(string(sell.ModeLocation))
	} else {
		mode.set(string(sell.ModeAddress))
	}

	loc := newInput("Area, city", 120)
	loc.SetValue(location)

	return &Address{
		mode:     mode,
		address:  newInput("House no, street, area, city", 200),
		location: loc,
		focus:    -1,
	}
}

// Changed returns the widget's current value, for seeding the form.
func (w *Address) Changed() sell.AddressChanged {
	return sell.AddressChanged{
		Mode:     sell.AddressMode(w.mode.value()),
		Address:  w.address.Value(),
		Location: w.location.Value(),
	}
}

func (w *Address) FieldCount() int { return 3 }

func (w *Address) Focus(field int) tea.Cmd {
	w.Blur()
	w.focus = field
	switch field {
	case 1:
		return w.address.Focus()
	case 2:
		return w.location.Focus()
	}
	return nil
}

func (w *Address) Blur() {
	w.address.Blur()
	w.location.Blur()
	w.focus = -1
}

func (w *Address) Update(msg tea.Msg) tea.Cmd {
	before := w.Changed()

	var cmd tea.Cmd
	switch w.focus {
	case 0:
		w.mode.handle(msg)
	case 1:
		w.address, cmd = w.address.Update(msg)
	case 2:
		w.location, cmd = w.location.Update(msg)
	default:
		return nil
	}

	if after := w.Changed(); after != before {
		return tea.Batch(cmd, emit(after))
	}
	return cmd
}

func (w *Address) View() string {
	mode := sell.AddressMode(w.mode.value())
	addrLabel, locLabel := "Address", "Location"
	if mode == sell.ModeAddress {
		addrLabel += " *"
	} else {
		locLabel += " *"
	}
	return lines(
		label("Use", w.focus == 0)+" "+w.mode.view(w.focus == 0),
		label(addrLabel, w.focus == 1),
		inputBox(w.address.View(), w.focus == 1),
		label(locLabel, w.focus == 2),
		inputBox(w.location.View(), w.focus == 2),
	)
}
