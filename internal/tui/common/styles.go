package common

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#23A455") // Retrend green
	ColorSecondary = lipgloss.Color("#3A77FF") // Sell button blue
	ColorAccent    = lipgloss.Color("#FFCE32") // Highlight yellow

	// Status colors
	ColorSuccess = lipgloss.Color("#32CD32") // Lime green
	ColorWarning = lipgloss.Color("#FFD700") // Gold
	ColorError   = lipgloss.Color("#FF6347") // Tomato
	ColorHeart   = lipgloss.Color("#E0245E") // Wishlist

	// Neutral colors
	ColorSubtle     = lipgloss.Color("#666666") // Gray
	ColorMuted      = lipgloss.Color("#888888") // Light gray
	ColorBorder     = lipgloss.Color("#444444") // Dark gray
	ColorForeground = lipgloss.Color("#FFFFFF") // White
)

// Base styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginBottom(1)

	// Text styles
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)

	MutedTextStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	WarningTextStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	PrimaryTextStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary)

	// Navbar styles
	NavbarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#002F34")).
			Foreground(ColorForeground).
			Padding(0, 1)

	BrandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeart)

	PopoverStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	// Section heading on the sell form
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			MarginTop(1)

	// Toast styles
	ToastErrorStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Foreground(ColorError).
			Padding(0, 1)

	ToastInfoStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorSuccess).
			Foreground(ColorSuccess).
			Padding(0, 1)

	// Selection styles
	SelectedStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorForeground).
			Bold(true).
			Padding(0, 1)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Padding(0, 1)

	MenuSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	// Input styles
	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	// Button styles
	ButtonStyle = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(ColorForeground).
			Padding(0, 2).
			MarginTop(1)

	DisabledButtonStyle = lipgloss.NewStyle().
				Background(ColorBorder).
				Foreground(ColorMuted).
				Padding(0, 2).
				MarginTop(1)

	// Container styles
	BoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	// Help styles
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HelpSepStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// Brand is the wordmark shown in the navbar
const Brand = "RETREND"

// Tagline is shown under the logo
const Tagline = "Revive. Reimagine."

// Logo returns the retrend ASCII art logo
func Logo() string {
	logo := `
 ____  _____ _____ ____  _____ _   _ ____
|  _ \| ____|_   _|  _ \| ____| \ | |  _ \
| |_) |  _|   | | | |_) |  _| |  \| | | | |
|  _ <| |___  | | |  _ <| |___| |\  | |_| |
|_| \_\_____| |_| |_| \_\_____|_| \_|____/
`
	return lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Render(logo)
}

// FormatHelp formats a help line with key and description
func FormatHelp(key, desc string) string {
	return HelpKeyStyle.Render(key) +
		HelpSepStyle.Render(" ") +
		HelpDescStyle.Render(desc)
}

// TableStyles returns the styles shared by the listing tables
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorSecondary)
	s.Selected = s.Selected.
		Foreground(ColorForeground).
		Background(ColorPrimary).
		Bold(true)
	return s
}

// Truncate shortens s to maxLen runes, ending with an ellipsis
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
