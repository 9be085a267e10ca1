package widgets

import (
	"github.com/Levipasha/retrend/internal/catalog"
	"github.com/Levipasha/retrend/internal/sell"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type categoryField struct {
	field  catalog.Field
	choice *choice
	input  textinput.Model
}

func (f *categoryField) value() string {
	if f.choice != nil {
		return f.choice.value()
	}
	return f.input.Value()
}

// CategoryFields collects the extra fields of a non-vehicle category.
type CategoryFields struct {
	fields []*categoryField
	focus  int
}

// NewCategoryFields creates inputs for fields. Fields with options get a
// selector, the rest a text input.
func NewCategoryFields(fields []catalog.Field) *CategoryFields {
	w := &CategoryFields{focus: -1}
	for _, f := range fields {
		cf := &categoryField{field: f}
		if len(f.Options) > 0 {
			c := newChoice(f.Options)
			cf.choice = &c
		} else {
			cf.input = newInput(f.Label, 100)
		}
		w.fields = append(w.fields, cf)
	}
	return w
}

func (w *CategoryFields) FieldCount() int { return len(w.fields) }

func (w *CategoryFields) Focus(field int) tea.Cmd {
	w.Blur()
	if field < 0 || field >= len(w.fields) {
		return nil
	}
	w.focus = field
	if f := w.fields[field]; f.choice == nil {
		return f.input.Focus()
	}
	return nil
}

func (w *CategoryFields) Blur() {
	for _, f := range w.fields {
		if f.choice == nil {
			f.input.Blur()
		}
	}
	w.focus = -1
}

func (w *CategoryFields) Update(msg tea.Msg) tea.Cmd {
	if w.focus < 0 {
		return nil
	}
	f := w.fields[w.focus]

	if f.choice != nil {
		if !f.choice.handle(msg) {
			return nil
		}
		return emit(sell.CategoryDataChanged{Data: w.data()})
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		return tea.Batch(cmd, emit(sell.CategoryDataChanged{Data: w.data()}))
	}
	return cmd
}

// data returns the non-empty field values keyed by field key.
func (w *CategoryFields) data() map[string]string {
	out := make(map[string]string, len(w.fields))
	for _, f := range w.fields {
		if v := f.value(); v != "" {
			out[f.field.Key] = v
		}
	}
	return out
}

func (w *CategoryFields) View() string {
	if len(w.fields) == 0 {
		return "No extra details for this category."
	}
	var rows []string
	for i, f := range w.fields {
		focused := i == w.focus
		if f.choice != nil {
			rows = append(rows, label(f.field.Label, focused)+" "+f.choice.view(focused))
			continue
		}
		rows = append(rows, label(f.field.Label, focused), inputBox(f.input.View(), focused))
	}
	return lines(rows...)
}
