package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const listingsTimeout = 30 * time.Second

// ListingsState represents the current state of the listings screen
type ListingsState int

const (
	ListingsStateLoading ListingsState = iota
	ListingsStateReady
	ListingsStateError
)

// Listings messages
type (
	// ProductsLoadedMsg is sent when products for Location are fetched
	ProductsLoadedMsg struct {
		Location string
		Products []models.Product
	}

	// ProductsErrorMsg is sent when fetching fails
	ProductsErrorMsg struct {
		Location string
		Err      error
	}
)

// ProductFetcher lists the products near a location.
type ProductFetcher interface {
	GetProducts(ctx context.Context, location string) ([]models.Product, error)
}

// ListingsModel is the home screen: products near the chosen location.
type ListingsModel struct {
	client   ProductFetcher
	products []models.Product
	filtered []models.Product
	table    table.Model
	spinner  spinner.Model
	help     help.Model
	keys     common.ListKeyMap

	location string
	query    string
	detail   *models.Product

	state    ListingsState
	err      error
	showHelp bool
	width    int
	height   int
}

// NewListingsModel creates a listings screen for location.
func NewListingsModel(client ProductFetcher, location string) ListingsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(common.ColorPrimary)

	return ListingsModel{
		client:   client,
		table:    newProductTable(),
		spinner:  sp,
		help:     help.New(),
		keys:     common.DefaultListKeyMap(),
		location: location,
		state:    ListingsStateLoading,
	}
}

// Init initializes the listings model
func (m ListingsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadProducts())
}

// SetLocation reloads the listings for a new location.
func (m ListingsModel) SetLocation(location string) (ListingsModel, tea.Cmd) {
	if location == m.location && m.state != ListingsStateError {
		return m, nil
	}
	m.location = location
	m.state = ListingsStateLoading
	m.detail = nil
	return m, tea.Batch(m.spinner.Tick, m.loadProducts())
}

// SetQuery filters the loaded products.
func (m ListingsModel) SetQuery(query string) ListingsModel {
	m.query = query
	m.applyFilter()
	return m
}

// Location returns the location the listings are for.
func (m ListingsModel) Location() string { return m.location }

// Visible returns the products currently shown.
func (m ListingsModel) Visible() []models.Product { return m.filtered }

// Update handles messages for the listings screen
func (m ListingsModel) Update(msg tea.Msg) (ListingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-10, 3))
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		if m.detail != nil {
			if key.Matches(msg, m.keys.Back) || msg.String() == "enter" {
				m.detail = nil
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.query != "" {
				m = m.SetQuery("")
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if m.state != ListingsStateLoading {
				m.state = ListingsStateLoading
				return m, tea.Batch(m.spinner.Tick, m.loadProducts())
			}
			return m, nil

		case msg.String() == "enter":
			if p := m.Selected(); p != nil {
				m.detail = p
			}
			return m, nil
		}

	case ProductsLoadedMsg:
		if msg.Location != m.location {
			return m, nil
		}
		m.state = ListingsStateReady
		m.err = nil
		m.products = msg.Products
		m.applyFilter()
		return m, nil

	case ProductsErrorMsg:
		if msg.Location != m.location {
			return m, nil
		}
		m.state = ListingsStateError
		m.err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.state == ListingsStateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.state == ListingsStateReady {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ListingsModel) applyFilter() {
	var filtered []models.Product
	for _, p := range m.products {
		if matchesQuery(p, m.query) {
			filtered = append(filtered, p)
		}
	}
	m.filtered = filtered
	cols := productColumns(m.width)
	m.table.SetColumns(cols)
	m.table.SetRows(productRows(m.filtered, cols))
	if m.table.Cursor() >= len(m.filtered) {
		m.table.SetCursor(0)
	}
}

// Selected returns the highlighted product, if any
func (m ListingsModel) Selected() *models.Product {
	if m.state != ListingsStateReady || len(m.filtered) == 0 {
		return nil
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.filtered) {
		return nil
	}
	p := m.filtered[i]
	return &p
}

// View renders the listings screen
func (m ListingsModel) View() string {
	var content strings.Builder

	content.WriteString(common.TitleStyle.Render("Fresh recommendations"))
	content.WriteString("\n")
	content.WriteString(common.SubtitleStyle.Render("Near " + m.location))
	content.WriteString("\n\n")

	switch m.state {
	case ListingsStateLoading:
		content.WriteString(fmt.Sprintf("%s Loading listings...", m.spinner.View()))

	case ListingsStateError:
		content.WriteString(common.ErrorTextStyle.Render("Error: " + m.err.Error()))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Press 'r' to retry"))

	case ListingsStateReady:
		switch {
		case m.detail != nil:
			content.WriteString(productDetail(*m.detail))
		case len(m.products) == 0:
			content.WriteString(common.MutedTextStyle.Render("No listings near you yet."))
			content.WriteString("\n\n")
			content.WriteString(common.MutedTextStyle.Render("Press ctrl+p to post the first one."))
		default:
			count := fmt.Sprintf("%d listing(s)", len(m.filtered))
			if m.query != "" {
				count = fmt.Sprintf("%d of %d listing(s) matching %q", len(m.filtered), len(m.products), m.query)
			}
			content.WriteString(common.MutedTextStyle.Render(count))
			content.WriteString("\n\n")
			content.WriteString(m.table.View())
		}
	}

	content.WriteString("\n\n")
	if m.showHelp {
		content.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		content.WriteString(strings.Join([]string{
			common.FormatHelp("↑/↓", "navigate"),
			common.FormatHelp("enter", "details"),
			common.FormatHelp("r", "refresh"),
			common.FormatHelp("ctrl+f", "search"),
			common.FormatHelp("ctrl+l", "location"),
			common.FormatHelp("q", "quit"),
		}, "  "))
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(1, 2).
		Render(content.String())
}

func (m ListingsModel) loadProducts() tea.Cmd {
	location := m.location
	client := m.client
	return func() tea.Msg {
		if client == nil {
			return ProductsErrorMsg{Location: location, Err: fmt.Errorf("no API client")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), listingsTimeout)
		defer cancel()

		products, err := client.GetProducts(ctx, location)
		if err != nil {
			return ProductsErrorMsg{Location: location, Err: err}
		}
		return ProductsLoadedMsg{Location: location, Products: products}
	}
}
