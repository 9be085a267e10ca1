package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Levipasha/retrend/internal/auth"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const sessionCheckTimeout = 20 * time.Second

// LoginState represents the current state of the login screen
type LoginState int

const (
	LoginStateInput LoginState = iota
	LoginStateValidating
	LoginStateError
)

// Login messages
type (
	// LoginSuccessMsg is sent when the token was accepted and saved
	LoginSuccessMsg struct {
		Session models.Session
	}

	// LoginErrorMsg is sent when validation fails
	LoginErrorMsg struct {
		Err error
	}
)

// SessionChecker asks the backend whether token is a live session.
type SessionChecker func(ctx context.Context, token string) error

// LoginModel is the model for the login screen
type LoginModel struct {
	tokenInput textinput.Model
	nameInput  textinput.Model
	spinner    spinner.Model
	help       help.Model
	keys       common.LoginKeyMap

	check    SessionChecker
	sessions *auth.SessionStore

	focusIndex int
	state      LoginState
	err        error

	width  int
	height int
}

// NewLoginModel creates a new login screen model
func NewLoginModel(check SessionChecker, sessions *auth.SessionStore) LoginModel {
	token := textinput.New()
	token.Placeholder = "paste the token from the website"
	token.CharLimit = 2048
	token.Width = 50
	token.EchoMode = textinput.EchoPassword
	token.EchoCharacter = '•'
	token.Focus()

	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = 30
	name.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(common.ColorPrimary)

	return LoginModel{
		tokenInput: token,
		nameInput:  name,
		spinner:    sp,
		help:       help.New(),
		keys:       common.DefaultLoginKeyMap(),
		check:      check,
		sessions:   sessions,
		state:      LoginStateInput,
	}
}

// Init initializes the login model
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login screen
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.state == LoginStateValidating {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Back):
			return m, navigate(ScreenListings, nil)

		case key.Matches(msg, m.keys.Tab):
			m.focusIndex = (m.focusIndex + 1) % 3 // 2 inputs + submit button
			m.updateFocus()
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.focusIndex--
			if m.focusIndex < 0 {
				m.focusIndex = 2
			}
			m.updateFocus()
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			if m.focusIndex == 2 || m.canSubmit() {
				return m.submit()
			}
			m.focusIndex = (m.focusIndex + 1) % 3
			m.updateFocus()
			return m, nil
		}

	case LoginSuccessMsg:
		m.state = LoginStateInput
		m.err = nil
		m.tokenInput.SetValue("")
		return m, nil

	case LoginErrorMsg:
		m.state = LoginStateError
		m.err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.state == LoginStateValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focusIndex {
	case 0:
		before := m.tokenInput.Value()
		m.tokenInput, cmd = m.tokenInput.Update(msg)
		if m.tokenInput.Value() != before {
			m.prefillName()
		}
	case 1:
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return m, cmd
}

// prefillName copies the name claim of a JWT into an empty name field.
func (m *LoginModel) prefillName() {
	if strings.TrimSpace(m.nameInput.Value()) != "" {
		return
	}
	if claims, ok := auth.ParseToken(strings.TrimSpace(m.tokenInput.Value())); ok && claims.Name != "" {
		m.nameInput.SetValue(claims.Name)
	}
}

// View renders the login screen
func (m LoginModel) View() string {
	var content strings.Builder

	content.WriteString(common.Logo())
	content.WriteString("\n")
	content.WriteString(common.TitleStyle.Render("Welcome to " + common.Brand))
	content.WriteString("\n")
	content.WriteString(common.SubtitleStyle.Render("Sign in to sell and keep a wishlist"))
	content.WriteString("\n\n")

	switch m.state {
	case LoginStateInput, LoginStateError:
		content.WriteString(m.renderForm())
	case LoginStateValidating:
		content.WriteString(fmt.Sprintf("%s Checking your session...", m.spinner.View()))
	}

	content.WriteString("\n\n")
	content.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content.String(),
	)
}

func (m LoginModel) renderForm() string {
	var b strings.Builder

	fields := []struct {
		label string
		input textinput.Model
	}{
		{"Token", m.tokenInput},
		{"Name", m.nameInput},
	}
	for i, f := range fields {
		if m.focusIndex == i {
			b.WriteString(common.SelectedStyle.Render(f.label))
			b.WriteString("\n")
			b.WriteString(common.FocusedInputStyle.Render(f.input.View()))
		} else {
			b.WriteString(common.UnselectedStyle.Render(f.label))
			b.WriteString("\n")
			b.WriteString(common.InputStyle.Render(f.input.View()))
		}
		b.WriteString("\n\n")
	}

	buttonText := "  Login  "
	if m.focusIndex == 2 {
		b.WriteString(common.ButtonStyle.Render(buttonText))
	} else if m.canSubmit() {
		b.WriteString(common.ButtonStyle.Copy().Background(common.ColorBorder).Render(buttonText))
	} else {
		b.WriteString(common.DisabledButtonStyle.Render(buttonText))
	}

	if m.state == LoginStateError && m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(common.ErrorTextStyle.Render("Error: " + m.err.Error()))
	}

	return b.String()
}

func (m *LoginModel) updateFocus() {
	m.tokenInput.Blur()
	m.nameInput.Blur()

	switch m.focusIndex {
	case 0:
		m.tokenInput.Focus()
	case 1:
		m.prefillName()
		m.nameInput.Focus()
	}
}

func (m LoginModel) canSubmit() bool {
	return strings.TrimSpace(m.tokenInput.Value()) != "" &&
		strings.TrimSpace(m.nameInput.Value()) != ""
}

// session builds the session to save from the form and the token claims.
func (m LoginModel) session() models.Session {
	s := models.Session{
		Token: strings.TrimSpace(m.tokenInput.Value()),
		Name:  strings.TrimSpace(m.nameInput.Value()),
	}
	if claims, ok := auth.ParseToken(s.Token); ok {
		s.Email = claims.Email
		s.Picture = claims.Picture
	}
	return s
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	if !m.canSubmit() {
		return m, nil
	}

	s := m.session()
	if auth.TokenExpired(s.Token) {
		m.state = LoginStateError
		m.err = auth.ErrSessionExpired
		return m, nil
	}

	m.state = LoginStateValidating
	m.err = nil

	return m, tea.Batch(
		m.spinner.Tick,
		validateSession(m.check, m.sessions, s),
	)
}

// validateSession checks the token with the backend, then saves it.
func validateSession(check SessionChecker, sessions *auth.SessionStore, s models.Session) tea.Cmd {
	return func() tea.Msg {
		if check != nil {
			ctx, cancel := context.WithTimeout(context.Background(), sessionCheckTimeout)
			defer cancel()

			if err := check(ctx, s.Token); err != nil {
				return LoginErrorMsg{Err: fmt.Errorf("invalid token: %w", err)}
			}
		}

		if sessions != nil {
			if err := sessions.Save(&s); err != nil {
				return LoginErrorMsg{Err: fmt.Errorf("failed to save session: %w", err)}
			}
		}

		return LoginSuccessMsg{Session: s}
	}
}
