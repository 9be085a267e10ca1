package components

import (
	"time"

	"github.com/Levipasha/retrend/internal/tui/common"
	tea "github.com/charmbracelet/bubbletea"
)

// ToastDuration is how long a toast stays up.
const ToastDuration = 5 * time.Second

// ToastKind selects the toast style.
type ToastKind int

const (
	ToastError ToastKind = iota
	ToastInfo
)

// toastExpiredMsg hides the toast with the given id.
type toastExpiredMsg struct {
	id int
}

// ToastModel is a transient notice shown under a screen.
type ToastModel struct {
	title   string
	message string
	kind    ToastKind
	visible bool
	id      int
}

// Show displays a toast and schedules it to hide after ToastDuration.
func (m ToastModel) Show(kind ToastKind, title, message string) (ToastModel, tea.Cmd) {
	m.id++
	m.kind = kind
	m.title = title
	m.message = message
	m.visible = true

	id := m.id
	return m, tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Dismiss hides the toast.
func (m ToastModel) Dismiss() ToastModel {
	m.visible = false
	return m
}

// Visible reports whether a toast is shown.
func (m ToastModel) Visible() bool { return m.visible }

// Message returns the shown message.
func (m ToastModel) Message() string { return m.message }

// Update hides the toast when its timer fires. A newer toast is not hidden
// by an older one's timer.
func (m ToastModel) Update(msg tea.Msg) (ToastModel, tea.Cmd) {
	if msg, ok := msg.(toastExpiredMsg); ok && msg.id == m.id {
		m.visible = false
	}
	return m, nil
}

// View renders the toast, or "" when hidden.
func (m ToastModel) View() string {
	if !m.visible {
		return ""
	}
	style := common.ToastErrorStyle
	if m.kind == ToastInfo {
		style = common.ToastInfoStyle
	}
	body := m.message
	if m.title != "" {
		body = m.title + "\n" + body
	}
	return style.Render(body)
}
