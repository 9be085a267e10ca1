package widgets

import (
	"github.com/Levipasha/retrend/internal/assets"
	"github.com/Levipasha/retrend/internal/sell"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Reviewer collects the seller's display name and profile photo.
type Reviewer struct {
	name        textinput.Model
	photo       textinput.Model
	photoHosted bool
	focus       int
}

// NewReviewer creates a Reviewer widget with the name prefilled.
func NewReviewer(name string) *Reviewer {
	n := newInput("Your name", 30)
	n.SetValue(name)
	return &Reviewer{
		name:  n,
		photo: newInput("Path to a profile photo (optional)", 1024),
		focus: -1,
	}
}

// Changed returns the widget's current value, for seeding the form.
func (w *Reviewer) Changed() sell.ReviewerChanged {
	return sell.ReviewerChanged{Name: w.name.Value(), Photo: expandHome(w.photo.Value())}
}

// SetPhoto replaces the photo ref, e.g. with its hosted URL after upload.
func (w *Reviewer) SetPhoto(ref string) {
	w.photo.SetValue(ref)
	w.photoHosted = assets.IsUploaded(ref)
}

func (w *Reviewer) FieldCount() int { return 2 }

func (w *Reviewer) Focus(field int) tea.Cmd {
	w.Blur()
	w.focus = field
	if field == 0 {
		return w.name.Focus()
	}
	return w.photo.Focus()
}

func (w *Reviewer) Blur() {
	w.name.Blur()
	w.photo.Blur()
	w.focus = -1
}

func (w *Reviewer) Update(msg tea.Msg) tea.Cmd {
	before := w.Changed()

	var cmd tea.Cmd
	switch w.focus {
	case 0:
		w.name, cmd = w.name.Update(msg)
	case 1:
		if w.photoHosted {
			w.photo, cmd = editHosted(w.photo, msg)
		} else {
			w.photo, cmd = w.photo.Update(msg)
		}
	default:
		return nil
	}

	if after := w.Changed(); after != before {
		if after.Photo != before.Photo {
			w.photoHosted = false
		}
		return tea.Batch(cmd, emit(after))
	}
	return cmd
}

func (w *Reviewer) View() string {
	return lines(
		label("Name *", w.focus == 0),
		inputBox(w.name.View(), w.focus == 0),
		label("Profile photo", w.focus == 1),
		inputBox(w.photo.View(), w.focus == 1),
	)
}
