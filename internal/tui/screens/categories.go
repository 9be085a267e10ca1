package screens

import (
	"fmt"
	"strings"

	"github.com/Levipasha/retrend/internal/catalog"
	"github.com/Levipasha/retrend/internal/tui/common"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CategoriesModel picks the category and item to sell under.
type CategoriesModel struct {
	catalog *catalog.Catalog
	keys    common.MenuKeyMap

	// -1 while choosing a category
	category int
	cursor   int

	width  int
	height int
}

// NewCategoriesModel creates the category chooser.
func NewCategoriesModel(cat *catalog.Catalog) CategoriesModel {
	return CategoriesModel{
		catalog:  cat,
		keys:     common.DefaultMenuKeyMap(),
		category: -1,
	}
}

// Init initializes the categories model
func (m CategoriesModel) Init() tea.Cmd {
	return nil
}

func (m CategoriesModel) options() []string {
	if m.category < 0 {
		out := make([]string, len(m.catalog.Categories))
		for i, c := range m.catalog.Categories {
			out[i] = c.Title
		}
		return out
	}
	return m.catalog.Categories[m.category].Items
}

// Update handles messages for the categories screen
func (m CategoriesModel) Update(msg tea.Msg) (CategoriesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		n := len(m.options())
		switch {
		case key.Matches(msg, m.keys.Up):
			if n > 0 {
				m.cursor = (m.cursor - 1 + n) % n
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if n == 0 {
				return m, nil
			}
			if m.category < 0 {
				m.category = m.cursor
				m.cursor = 0
				return m, nil
			}
			target := SellTarget{
				Category: m.catalog.Categories[m.category].Title,
				Item:     m.options()[m.cursor],
			}
			return m, navigate(ScreenSell, target)

		case key.Matches(msg, m.keys.Back):
			if m.category >= 0 {
				m.cursor = m.category
				m.category = -1
				return m, nil
			}
			return m, navigate(ScreenListings, nil)
		}
	}
	return m, nil
}

// View renders the categories screen
func (m CategoriesModel) View() string {
	var content strings.Builder

	content.WriteString(common.TitleStyle.Render("POST YOUR AD"))
	content.WriteString("\n")
	if m.category < 0 {
		content.WriteString(common.SubtitleStyle.Render("CHOOSE A CATEGORY"))
	} else {
		content.WriteString(common.SubtitleStyle.Render(fmt.Sprintf("%s ›", m.catalog.Categories[m.category].Title)))
	}
	content.WriteString("\n\n")

	for i, opt := range m.options() {
		line := opt
		if m.category < 0 {
			line += "  ›"
		}
		if i == m.cursor {
			content.WriteString(common.MenuSelectedStyle.Render("▸ " + line))
		} else {
			content.WriteString("  " + line)
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(strings.Join([]string{
		common.FormatHelp("↑/↓", "navigate"),
		common.FormatHelp("enter", "select"),
		common.FormatHelp("esc", "back"),
	}, "  "))

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(1, 2).
		Render(content.String())
}
