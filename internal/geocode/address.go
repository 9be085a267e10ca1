package geocode

import (
	"strings"

	"github.com/Levipasha/retrend/internal/models"
)

// SuggestionName joins the area, locality and state of addr with ", ",
// skipping empty parts.
func SuggestionName(addr models.Address) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{addr.Area(), addr.Locality(), addr.State} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// PlaceName picks the single most local name in addr: area, then locality,
// then state. fallback is returned when none is present.
func PlaceName(addr models.Address, fallback string) string {
	for _, p := range []string{addr.Area(), addr.Locality(), addr.State} {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return fallback
}
