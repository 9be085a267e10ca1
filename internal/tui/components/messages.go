// Package components holds the widgets shared across screens: the navbar,
// its location picker and toasts.
package components

import "github.com/Levipasha/retrend/internal/models"

type (
	// LocationChangedMsg is broadcast after the current location is
	// persisted. Receivers re-read it from storage.
	LocationChangedMsg struct{}

	// SuggestionsMsg carries the results of a forward lookup for Query.
	SuggestionsMsg struct {
		Query       string
		Suggestions []models.LocationSuggestion
		Err         error
	}

	// CurrentLocationMsg carries the outcome of a device position lookup.
	// LocateErr is set when no position was available; Err when the
	// position could not be turned into a place name.
	CurrentLocationMsg struct {
		Location  models.Location
		LocateErr error
		Err       error
	}

	// WishlistMsg carries the result of a wishlist fetch.
	WishlistMsg struct {
		Items []models.Product
		Err   error
	}

	// SearchChangedMsg is sent when the navbar search text changes.
	SearchChangedMsg struct {
		Query string
	}

	// ActionMsg is sent when a navbar action is triggered.
	ActionMsg struct {
		Action Action
	}
)

// Action is a navbar action handled by the app.
type Action int

const (
	ActionHome Action = iota
	ActionSell
	ActionWishlist
	ActionLogin
	ActionAccount
	ActionLogout
)

func (a Action) String() string {
	switch a {
	case ActionSell:
		return "sell"
	case ActionWishlist:
		return "wishlist"
	case ActionLogin:
		return "login"
	case ActionAccount:
		return "account"
	case ActionLogout:
		return "logout"
	default:
		return "home"
	}
}
