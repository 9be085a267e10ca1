package components

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Levipasha/retrend/internal/geocode"
	"github.com/Levipasha/retrend/internal/geolocation"
	"github.com/Levipasha/retrend/internal/logging"
	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/storage"
	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// SearchDebounce is how long typing must pause before a lookup is sent.
const SearchDebounce = 300 * time.Millisecond

const (
	lookupTimeout = 20 * time.Second

	// popover rows above the first choice: top border and the input line
	popoverHeaderRows = 2
)

// searchDueMsg fires when the debounce for Query has elapsed.
type searchDueMsg struct {
	Query string
}

// LocationPickerModel is the navbar's location chooser: the current location
// name plus a popover with a search input, a "use current location" choice
// and geocoder suggestions.
type LocationPickerModel struct {
	geocoder geocode.Geocoder
	locator  geolocation.Locator
	store    *storage.LocationStore
	logger   logrus.FieldLogger
	keys     common.PickerKeyMap
	help     help.Model

	current     string
	open        bool
	locating    bool
	input       textinput.Model
	spinner     spinner.Model
	query       string
	suggestions []models.LocationSuggestion
	cursor      int

	// top-left cell of the popover on screen
	originX int
	originY int
}

// NewLocationPickerModel creates a picker showing the stored location.
func NewLocationPickerModel(g geocode.Geocoder, l geolocation.Locator, store *storage.LocationStore, logger logrus.FieldLogger) LocationPickerModel {
	logger = logging.OrDiscard(logger).WithField("component", "location_picker")

	loc, err := store.Load()
	if err != nil {
		logger.WithError(err).Warn("failed to read stored location")
	}

	ti := textinput.New()
	ti.Placeholder = "Search city, area or locality"
	ti.CharLimit = 100
	ti.Width = 36
	ti.Prompt = "🔍 "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(common.ColorPrimary)

	return LocationPickerModel{
		geocoder: g,
		locator:  l,
		store:    store,
		logger:   logger,
		keys:     common.DefaultPickerKeyMap(),
		help:     help.New(),
		current:  loc.Name,
		input:    ti,
		spinner:  sp,
	}
}

// Current returns the current location name.
func (m LocationPickerModel) Current() string { return m.current }

// IsOpen reports whether the popover is shown.
func (m LocationPickerModel) IsOpen() bool { return m.open }

// Suggestions returns the suggestions for the current query.
func (m LocationPickerModel) Suggestions() []models.LocationSuggestion {
	return m.suggestions
}

// SetOrigin sets where the popover is drawn, for mouse hit testing.
func (m *LocationPickerModel) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

// Open shows the popover and starts mouse reporting so presses outside it
// can be detected.
func (m LocationPickerModel) Open() (LocationPickerModel, tea.Cmd) {
	if m.open {
		return m, nil
	}
	m.open = true
	m.cursor = 0
	m.input.Focus()
	return m, tea.Batch(textinput.Blink, tea.EnableMouseCellMotion)
}

// Close hides the popover, drops the query and stops mouse reporting.
func (m LocationPickerModel) Close() (LocationPickerModel, tea.Cmd) {
	if !m.open {
		return m, nil
	}
	m.open = false
	m.input.Blur()
	m.input.SetValue("")
	m.query = ""
	m.suggestions = nil
	m.cursor = 0
	return m, tea.DisableMouse
}

// Update handles messages for the picker.
func (m LocationPickerModel) Update(msg tea.Msg) (LocationPickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.open {
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case searchDueMsg:
		if !m.open || msg.Query != m.query || m.query == "" {
			return m, nil
		}
		return m, m.search(msg.Query)

	case SuggestionsMsg:
		// results for a query the user has since changed are stale
		if msg.Query != m.query {
			return m, nil
		}
		if msg.Err != nil {
			m.logger.WithError(msg.Err).WithField("query", msg.Query).Warn("location search failed")
			return m, nil
		}
		m.suggestions = msg.Suggestions
		m.cursor = 0
		return m, nil

	case CurrentLocationMsg:
		return m.handleCurrentLocation(msg)

	case LocationChangedMsg:
		if loc, err := m.store.Load(); err == nil {
			m.current = loc.Name
		}
		return m, nil

	case spinner.TickMsg:
		if m.locating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m LocationPickerModel) handleKey(msg tea.KeyMsg) (LocationPickerModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.Close()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.suggestions) {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.choose(m.cursor)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	query := strings.TrimSpace(m.input.Value())
	if query == m.query {
		return m, cmd
	}
	// suggestions belong to the query that produced them
	m.query = query
	m.cursor = 0
	m.suggestions = nil
	if query == "" {
		return m, cmd
	}

	return m, tea.Batch(cmd, tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return searchDueMsg{Query: query}
	}))
}

func (m LocationPickerModel) handleMouse(msg tea.MouseMsg) (LocationPickerModel, tea.Cmd) {
	if !m.open || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	width, height := lipgloss.Size(m.popoverView())
	inside := msg.X >= m.originX && msg.X < m.originX+width &&
		msg.Y >= m.originY && msg.Y < m.originY+height
	if !inside {
		return m.Close()
	}

	row := msg.Y - m.originY - popoverHeaderRows
	if row >= 0 && row <= len(m.suggestions) {
		return m.choose(row)
	}
	return m, nil
}

// choose acts on a popover row: 0 is "use current location", the rest are
// suggestions.
func (m LocationPickerModel) choose(row int) (LocationPickerModel, tea.Cmd) {
	if row == 0 {
		return m.UseCurrentLocation()
	}
	if row-1 < len(m.suggestions) {
		return m.SelectSuggestion(m.suggestions[row-1])
	}
	return m, nil
}

// SelectSuggestion makes s the current location.
func (m LocationPickerModel) SelectSuggestion(s models.LocationSuggestion) (LocationPickerModel, tea.Cmd) {
	m.current = s.DisplayName
	m.persist(s.Location())

	m, closeCmd := m.Close()
	return m, tea.Batch(closeCmd, broadcastLocationChanged)
}

// UseCurrentLocation closes the popover and looks up the device position.
func (m LocationPickerModel) UseCurrentLocation() (LocationPickerModel, tea.Cmd) {
	m.locating = true
	m, closeCmd := m.Close()
	return m, tea.Batch(closeCmd, m.spinner.Tick, m.locate())
}

func (m LocationPickerModel) handleCurrentLocation(msg CurrentLocationMsg) (LocationPickerModel, tea.Cmd) {
	m.locating = false

	if msg.LocateErr != nil {
		m.logger.WithError(msg.LocateErr).Info("device position unavailable, using default location")
		loc := m.store.Default()
		m.current = loc.Name
		m.persist(loc)
		return m, broadcastLocationChanged
	}
	if msg.Err != nil {
		m.logger.WithError(msg.Err).Warn("reverse geocoding failed")
		return m, nil
	}

	m.current = msg.Location.Name
	m.persist(msg.Location)
	return m, broadcastLocationChanged
}

func (m LocationPickerModel) persist(loc models.Location) {
	if err := m.store.Save(loc); err != nil {
		m.logger.WithError(err).Warn("failed to persist location")
	}
}

func broadcastLocationChanged() tea.Msg {
	return LocationChangedMsg{}
}

func (m LocationPickerModel) search(query string) tea.Cmd {
	g := m.geocoder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		suggestions, err := g.Search(ctx, query)
		return SuggestionsMsg{Query: query, Suggestions: suggestions, Err: err}
	}
}

func (m LocationPickerModel) locate() tea.Cmd {
	g, l, fallback := m.geocoder, m.locator, m.store.Default().Name
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		if l == nil {
			return CurrentLocationMsg{LocateErr: geolocation.ErrUnavailable}
		}
		coords, err := l.Locate(ctx)
		if err != nil {
			return CurrentLocationMsg{LocateErr: err}
		}

		addr, err := g.Reverse(ctx, coords)
		if err != nil {
			return CurrentLocationMsg{Err: err}
		}

		return CurrentLocationMsg{Location: models.Location{
			Name:        geocode.PlaceName(addr, fallback),
			Address:     &addr,
			Coordinates: &coords,
		}}
	}
}

// View renders the current location as shown in the navbar.
func (m LocationPickerModel) View() string {
	if m.locating {
		return fmt.Sprintf("📍 %s %s", m.spinner.View(), common.Truncate(m.current, 28))
	}
	arrow := "▾"
	if m.open {
		arrow = "▴"
	}
	return fmt.Sprintf("📍 %s %s", common.Truncate(m.current, 28), arrow)
}

// PopoverView renders the open popover, or "" when closed.
func (m LocationPickerModel) PopoverView() string {
	if !m.open {
		return ""
	}
	return m.popoverView()
}

func (m LocationPickerModel) popoverView() string {
	var b strings.Builder

	b.WriteString(m.input.View())

	rows := []string{"◎ Use current location"}
	for _, s := range m.suggestions {
		rows = append(rows, "  "+common.Truncate(s.DisplayName, 40))
	}
	for i, row := range rows {
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(common.MenuSelectedStyle.Render(row))
		} else {
			b.WriteString(common.TextStyle.Render(row))
		}
	}
	if m.query != "" && len(m.suggestions) == 0 {
		b.WriteString("\n")
		b.WriteString(common.MutedTextStyle.Render("  No matching places yet"))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return common.PopoverStyle.Render(b.String())
}
