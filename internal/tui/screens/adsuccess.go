package screens

import (
	"strings"

	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/tui/common"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AdSuccessModel is shown after a listing was posted.
type AdSuccessModel struct {
	product *models.Product
	width   int
	height  int
}

// NewAdSuccessModel creates the success screen for product, which may be nil
// when the backend returned no body.
func NewAdSuccessModel(product *models.Product) AdSuccessModel {
	return AdSuccessModel{product: product}
}

// Init initializes the success model
func (m AdSuccessModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the success screen
func (m AdSuccessModel) Update(msg tea.Msg) (AdSuccessModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return m, navigate(ScreenListings, nil)
		case "n":
			return m, navigate(ScreenCategories, nil)
		}
	}
	return m, nil
}

// View renders the success screen
func (m AdSuccessModel) View() string {
	var content strings.Builder

	content.WriteString(common.SuccessTextStyle.Render("✓ Congratulations!"))
	content.WriteString("\n\n")
	content.WriteString("Your ad will go live shortly.")
	if m.product != nil && m.product.Title != "" {
		content.WriteString("\n")
		content.WriteString(common.PrimaryTextStyle.Render(m.product.Title))
	}
	content.WriteString("\n\n")
	content.WriteString(common.MutedTextStyle.Render("Retrend allows free posting of ads in all categories."))
	content.WriteString("\n\n")
	content.WriteString(strings.Join([]string{
		common.FormatHelp("enter", "browse listings"),
		common.FormatHelp("n", "post another ad"),
	}, "  "))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content.String(),
	)
}
