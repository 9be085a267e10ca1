package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Levipasha/retrend/internal/logging"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

const wishlistTimeout = 20 * time.Second

// WishlistLister fetches the signed-in user's wishlist.
type WishlistLister interface {
	ListWishlist(ctx context.Context) ([]models.Product, error)
}

// NavbarModel is the top bar shown on every screen.
type NavbarModel struct {
	picker LocationPickerModel
	search textinput.Model
	keys   common.NavKeyMap
	help   help.Model
	logger logrus.FieldLogger

	searching bool

	authed   bool
	userName string
	lister   WishlistLister
	wishlist []models.Product
	// set once a fetch has succeeded
	wishlistLoaded bool

	width int
}

// NewNavbarModel creates a navbar around picker.
func NewNavbarModel(picker LocationPickerModel, logger logrus.FieldLogger) NavbarModel {
	si := textinput.New()
	si.Placeholder = "Find cars, mobile phones and more..."
	si.CharLimit = 100
	si.Width = 32
	si.Prompt = "/ "

	m := NavbarModel{
		picker: picker,
		search: si,
		keys:   common.DefaultNavKeyMap(),
		help:   help.New(),
		logger: logging.OrDiscard(logger).WithField("component", "navbar"),
	}
	m.picker.SetOrigin(m.pickerOffset(), 1)
	return m
}

// Init fetches the wishlist when already signed in.
func (m NavbarModel) Init() tea.Cmd {
	if m.authed {
		return m.fetchWishlist()
	}
	return nil
}

// SetAuth updates the signed-in state. The wishlist is fetched whenever auth
// turns true and dropped when it turns false.
func (m NavbarModel) SetAuth(authed bool, userName string, lister WishlistLister) (NavbarModel, tea.Cmd) {
	was := m.authed
	m.authed = authed
	m.userName = userName
	m.lister = lister

	if !authed {
		m.wishlist = nil
		m.wishlistLoaded = false
		return m, nil
	}
	if !was {
		return m, m.fetchWishlist()
	}
	return m, nil
}

// IsAuthed reports whether a user is signed in.
func (m NavbarModel) IsAuthed() bool { return m.authed }

// Location returns the current location name.
func (m NavbarModel) Location() string { return m.picker.Current() }

// Picker returns the location picker.
func (m NavbarModel) Picker() LocationPickerModel { return m.picker }

// Wishlist returns the last fetched wishlist.
func (m NavbarModel) Wishlist() []models.Product { return m.wishlist }

// WishlistCount returns the badge count and whether there is one to show.
func (m NavbarModel) WishlistCount() (int, bool) {
	return len(m.wishlist), m.wishlistLoaded
}

// Captures reports whether the navbar consumes msg instead of the screen
// below it.
func (m NavbarModel) Captures(msg tea.KeyMsg) bool {
	if m.picker.IsOpen() || m.searching {
		return true
	}
	return key.Matches(msg, m.keys.Location, m.keys.Search, m.keys.Sell,
		m.keys.Wishlist, m.keys.Account, m.keys.Home)
}

// Height returns the number of lines View renders.
func (m NavbarModel) Height() int {
	return lipgloss.Height(m.View())
}

// Teardown closes the popover, releasing mouse reporting.
func (m NavbarModel) Teardown() (NavbarModel, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Close()
	return m, cmd
}

// Update handles messages for the navbar.
func (m NavbarModel) Update(msg tea.Msg) (NavbarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case WishlistMsg:
		if msg.Err != nil {
			m.logger.WithError(msg.Err).Warn("failed to fetch wishlist")
			m.wishlist = nil
			m.wishlistLoaded = false
			return m, nil
		}
		m.wishlist = msg.Items
		m.wishlistLoaded = true
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m NavbarModel) handleKey(msg tea.KeyMsg) (NavbarModel, tea.Cmd) {
	if m.picker.IsOpen() {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	if m.searching {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if after := m.search.Value(); after != before {
			return m, tea.Batch(cmd, searchChanged(after))
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Location):
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Open()
		return m, cmd

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Sell):
		return m, action(ActionSell)

	case key.Matches(msg, m.keys.Wishlist):
		if !m.authed {
			return m, action(ActionLogin)
		}
		return m, action(ActionWishlist)

	case key.Matches(msg, m.keys.Account):
		if m.authed {
			return m, action(ActionAccount)
		}
		return m, action(ActionLogin)

	case key.Matches(msg, m.keys.Home):
		return m, action(ActionHome)
	}

	return m, nil
}

func action(a Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Action: a} }
}

func searchChanged(q string) tea.Cmd {
	return func() tea.Msg { return SearchChangedMsg{Query: strings.TrimSpace(q)} }
}

func (m NavbarModel) fetchWishlist() tea.Cmd {
	lister := m.lister
	if lister == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), wishlistTimeout)
		defer cancel()

		items, err := lister.ListWishlist(ctx)
		return WishlistMsg{Items: items, Err: err}
	}
}

// pickerOffset is the column the location segment starts at.
func (m NavbarModel) pickerOffset() int {
	return lipgloss.Width(m.brandView()) + 1
}

func (m NavbarModel) brandView() string {
	return common.NavbarStyle.Render(common.BrandStyle.Render(common.Brand))
}

// View renders the bar and, when open, the location popover below it.
func (m NavbarModel) View() string {
	parts := []string{
		m.brandView(),
		m.picker.View(),
		m.search.View(),
	}

	if count, ok := m.WishlistCount(); ok {
		parts = append(parts, common.BadgeStyle.Render(fmt.Sprintf("♥ %d", count)))
	} else if m.authed {
		parts = append(parts, common.BadgeStyle.Render("♥"))
	}

	parts = append(parts, common.ButtonStyle.Copy().MarginTop(0).Render("+ SELL"))

	if m.authed {
		name := m.userName
		if name == "" {
			name = "there"
		}
		parts = append(parts, common.MutedTextStyle.Render("Hi, "+common.Truncate(name, 16)))
	} else {
		parts = append(parts, common.PrimaryTextStyle.Render("Login"))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, joinWithSpace(parts)...)

	if popover := m.picker.PopoverView(); popover != "" {
		indent := lipgloss.NewStyle().MarginLeft(m.pickerOffset())
		return bar + "\n" + indent.Render(popover)
	}
	return bar
}

// HelpView renders the navbar bindings for the footer.
func (m NavbarModel) HelpView() string {
	return m.help.View(m.keys)
}

func joinWithSpace(parts []string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
