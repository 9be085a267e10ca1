package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/Levipasha/retrend/internal/tui/components"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const wishlistTimeout = 20 * time.Second

// WishlistModel lists the signed-in user's saved products.
type WishlistModel struct {
	lister  components.WishlistLister
	items   []models.Product
	table   table.Model
	spinner spinner.Model
	keys    common.ListKeyMap

	loading bool
	err     error
	width   int
	height  int
}

// NewWishlistModel creates a wishlist screen.
func NewWishlistModel(lister components.WishlistLister) WishlistModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(common.ColorHeart)

	return WishlistModel{
		lister:  lister,
		table:   newProductTable(),
		spinner: sp,
		keys:    common.DefaultListKeyMap(),
		loading: true,
	}
}

// Init fetches the wishlist
func (m WishlistModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// Update handles messages for the wishlist screen
func (m WishlistModel) Update(msg tea.Msg) (WishlistModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(m.height-10, 3))
		m.setRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, navigate(ScreenListings, nil)
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if !m.loading {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, m.load())
			}
			return m, nil
		}

	case components.WishlistMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.items = msg.Items
			m.setRows()
		}
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *WishlistModel) setRows() {
	cols := productColumns(m.width)
	m.table.SetColumns(cols)
	m.table.SetRows(productRows(m.items, cols))
}

// View renders the wishlist screen
func (m WishlistModel) View() string {
	var content strings.Builder

	content.WriteString(common.TitleStyle.Render("♥ Your wishlist"))
	content.WriteString("\n\n")

	switch {
	case m.loading:
		content.WriteString(fmt.Sprintf("%s Loading wishlist...", m.spinner.View()))
	case m.err != nil:
		content.WriteString(common.ErrorTextStyle.Render("Error: " + m.err.Error()))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Press 'r' to retry"))
	case len(m.items) == 0:
		content.WriteString(common.MutedTextStyle.Render("Nothing saved yet."))
	default:
		content.WriteString(m.table.View())
	}

	content.WriteString("\n\n")
	content.WriteString(strings.Join([]string{
		common.FormatHelp("↑/↓", "navigate"),
		common.FormatHelp("r", "refresh"),
		common.FormatHelp("esc", "back"),
	}, "  "))

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(1, 2).
		Render(content.String())
}

func (m WishlistModel) load() tea.Cmd {
	lister := m.lister
	return func() tea.Msg {
		if lister == nil {
			return components.WishlistMsg{Err: fmt.Errorf("not signed in")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), wishlistTimeout)
		defer cancel()

		items, err := lister.ListWishlist(ctx)
		return components.WishlistMsg{Items: items, Err: err}
	}
}
