package screens

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen identifiers carried by NavigateMsg.
const (
	ScreenLogin      = "login"
	ScreenListings   = "listings"
	ScreenWishlist   = "wishlist"
	ScreenCategories = "categories"
	ScreenSell       = "sell"
	ScreenAdSuccess  = "adsuccess"
	ScreenAccount    = "account"
)

// NavigateMsg is sent to navigate to a different screen
type NavigateMsg struct {
	Screen string
	Data   interface{}
}

// SellTarget is the category/item a sell form is opened for. It is the
// Data of a NavigateMsg to ScreenSell.
type SellTarget struct {
	Category string
	Item     string
}

func navigate(screen string, data interface{}) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen, Data: data}
	}
}
