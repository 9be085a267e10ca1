package screens

import (
	"strings"

	"github.com/Levipasha/retrend/internal/auth"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/Levipasha/retrend/internal/tui/components"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AccountState represents the current state of the account screen
type AccountState int

const (
	AccountStateReady AccountState = iota
	AccountStateConfirmLogout
)

// accountKeyMap defines key bindings for the account screen
type accountKeyMap struct {
	Logout  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func defaultAccountKeyMap() accountKeyMap {
	return accountKeyMap{
		Logout: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log out"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// AccountModel shows the signed-in profile and where state is kept.
type AccountModel struct {
	help help.Model
	keys accountKeyMap

	session    models.Session
	location   string
	persistent bool
	fromEnv    bool
	expires    string

	state  AccountState
	width  int
	height int
}

// NewAccountModel creates the account screen. persistent reports whether
// state is saved to the system keyring.
func NewAccountModel(session models.Session, location string, persistent bool) AccountModel {
	m := AccountModel{
		help:       help.New(),
		keys:       defaultAccountKeyMap(),
		session:    session,
		location:   location,
		persistent: persistent,
		fromEnv:    auth.GetSessionFromEnv().IsValid(),
		state:      AccountStateReady,
	}
	if claims, ok := auth.ParseToken(session.Token); ok && claims.ExpiresAt != nil {
		m.expires = claims.ExpiresAt.Format("2006-01-02 15:04")
	}
	return m
}

// Init initializes the account model
func (m AccountModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the account screen
func (m AccountModel) Update(msg tea.Msg) (AccountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.state == AccountStateConfirmLogout {
			switch {
			case key.Matches(msg, m.keys.Confirm):
				m.state = AccountStateReady
				return m, func() tea.Msg {
					return components.ActionMsg{Action: components.ActionLogout}
				}
			case key.Matches(msg, m.keys.Cancel):
				m.state = AccountStateReady
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Back):
			return m, navigate(ScreenListings, nil)
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Logout):
			m.state = AccountStateConfirmLogout
			return m, nil
		}
	}

	return m, nil
}

// View renders the account screen
func (m AccountModel) View() string {
	var content strings.Builder

	content.WriteString(common.TitleStyle.Render("Account"))
	content.WriteString("\n")
	content.WriteString(common.SubtitleStyle.Render("Your profile and saved state"))
	content.WriteString("\n\n")

	boxStyle := common.BoxStyle.Copy().Width(60)

	content.WriteString(boxStyle.Render(m.renderProfile()))
	content.WriteString("\n\n")
	content.WriteString(boxStyle.Render(m.renderStorage()))
	content.WriteString("\n\n")

	if m.state == AccountStateConfirmLogout {
		confirmBox := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(common.ColorWarning).
			Padding(1, 2).
			Width(60)

		confirmContent := common.WarningTextStyle.Render("Log out?") + "\n\n" +
			common.MutedTextStyle.Render("Your session is removed from this device.") + "\n" +
			common.MutedTextStyle.Render("Your location is kept.") + "\n\n" +
			common.FormatHelp("y", "confirm") + "  " + common.FormatHelp("n", "cancel")

		content.WriteString(confirmBox.Render(confirmContent))
	} else {
		content.WriteString(strings.Join([]string{
			common.FormatHelp("l", "log out"),
			common.FormatHelp("esc", "back"),
		}, "  "))
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content.String(),
	)
}

func (m AccountModel) renderProfile() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(common.ColorSecondary)
	labelStyle := lipgloss.NewStyle().Foreground(common.ColorMuted).Width(16)
	valueStyle := lipgloss.NewStyle().Foreground(common.ColorForeground)

	b.WriteString(headerStyle.Render("Profile"))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"Name:", orDash(m.session.Name)},
		{"Email:", orDash(m.session.Email)},
		{"Token:", maskString(m.session.Token)},
	}
	if m.expires != "" {
		rows = append(rows, [2]string{"Expires:", m.expires})
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(valueStyle.Render(r[1]))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Source:"))
	if m.fromEnv {
		b.WriteString(common.PrimaryTextStyle.Render("Environment (" + auth.EnvToken + ")"))
	} else {
		b.WriteString(common.PrimaryTextStyle.Render("Saved login"))
	}

	return b.String()
}

func (m AccountModel) renderStorage() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(common.ColorSecondary)
	labelStyle := lipgloss.NewStyle().Foreground(common.ColorMuted).Width(16)

	b.WriteString(headerStyle.Render("Saved state"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Storage:"))
	if m.persistent {
		b.WriteString(common.SuccessTextStyle.Render("System keyring"))
	} else {
		b.WriteString(common.WarningTextStyle.Render("Memory only, lost on exit"))
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Location:"))
	b.WriteString(orDash(m.location))

	return b.String()
}

// maskString masks a string, showing only first and last 2 characters
func maskString(s string) string {
	if len(s) <= 6 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
