package widgets

import (
	"github.com/Levipasha/retrend/internal/catalog"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/sell"
	tea "github.com/charmbracelet/bubbletea"
)

// Vehicle selects brand, model and vehicle type.
type Vehicle struct {
	opts  catalog.VehicleOptions
	brand choice
	model choice
	kind  choice
	focus int
}

// NewVehicle creates a Vehicle widget over opts.
func NewVehicle(opts catalog.VehicleOptions) *Vehicle {
	brands := make([]string, 0, len(opts.Brands))
	for _, b := range opts.Brands {
		brands = append(brands, b.Name)
	}
	return &Vehicle{
		opts:  opts,
		brand: newChoice(brands),
		model: newChoice(nil),
		kind:  newChoice(opts.Types),
		focus: -1,
	}
}

func (w *Vehicle) FieldCount() int { return 3 }

func (w *Vehicle) Focus(field int) tea.Cmd {
	w.focus = field
	return nil
}

func (w *Vehicle) Blur() { w.focus = -1 }

func (w *Vehicle) Update(msg tea.Msg) tea.Cmd {
	changed := false
	switch w.focus {
	case 0:
		if w.brand.handle(msg) {
			w.model = newChoice(w.opts.Models(w.brand.value()))
			changed = true
		}
	case 1:
		changed = w.model.handle(msg)
	case 2:
		changed = w.kind.handle(msg)
	}
	if !changed {
		return nil
	}
	return emit(sell.VehicleChanged{Vehicle: w.value()})
}

func (w *Vehicle) value() models.VehicleData {
	return models.VehicleData{
		Brand:       w.brand.value(),
		Model:       w.model.value(),
		VehicleType: w.kind.value(),
	}
}

func (w *Vehicle) View() string {
	return lines(
		label("Brand *", w.focus == 0)+" "+w.brand.view(w.focus == 0),
		label("Model *", w.focus == 1)+" "+w.model.view(w.focus == 1),
		label("Type *", w.focus == 2)+" "+w.kind.view(w.focus == 2),
	)
}
