package widgets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Levipasha/retrend/internal/assets"
	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ImageSelectedMsg reports the file chosen for a photo slot.
type ImageSelectedMsg struct {
	Slot int
	Ref  string
}

// Images is the list of photo slots. Slots are added by the form and never
// removed.
type Images struct {
	slots  []textinput.Model
	hosted []bool
	focus  int
}

// NewImages creates an Images widget with no slots.
func NewImages() *Images {
	return &Images{focus: -1}
}

// AddSlot appends an empty slot.
func (w *Images) AddSlot() {
	w.slots = append(w.slots, newInput("Path to photo (jpg, png)", 1024))
	w.hosted = append(w.hosted, false)
}

// SetRef replaces the ref shown in a slot. A hosted URL written here is
// replaced wholesale by the next edit.
func (w *Images) SetRef(slot int, ref string) {
	if slot >= 0 && slot < len(w.slots) {
		w.slots[slot].SetValue(ref)
		w.hosted[slot] = assets.IsUploaded(ref)
	}
}

// Len returns the number of slots.
func (w *Images) Len() int { return len(w.slots) }

func (w *Images) FieldCount() int { return len(w.slots) }

func (w *Images) Focus(field int) tea.Cmd {
	w.Blur()
	if field < 0 || field >= len(w.slots) {
		return nil
	}
	w.focus = field
	return w.slots[field].Focus()
}

func (w *Images) Blur() {
	for i := range w.slots {
		w.slots[i].Blur()
	}
	w.focus = -1
}

func (w *Images) Update(msg tea.Msg) tea.Cmd {
	if w.focus < 0 {
		return nil
	}
	slot := w.focus

	before := w.slots[slot].Value()
	var cmd tea.Cmd
	if w.hosted[slot] {
		w.slots[slot], cmd = editHosted(w.slots[slot], msg)
	} else {
		w.slots[slot], cmd = w.slots[slot].Update(msg)
	}
	if after := w.slots[slot].Value(); after != before {
		w.hosted[slot] = false
		return tea.Batch(cmd, emit(ImageSelectedMsg{Slot: slot, Ref: expandHome(after)}))
	}
	return cmd
}

func (w *Images) View() string {
	if len(w.slots) == 0 {
		return common.MutedTextStyle.Render("No photos yet. Press ctrl+n to add one.")
	}
	var rows []string
	for i, s := range w.slots {
		focused := i == w.focus
		status := ""
		if assets.IsUploaded(s.Value()) {
			status = common.SuccessTextStyle.Render(" ✓ uploaded")
		}
		rows = append(rows, label(fmt.Sprintf("Photo %d", i+1), focused)+status, inputBox(s.View(), focused))
	}
	return lines(rows...)
}

// expandHome turns a leading ~/ into the user's home directory.
func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
