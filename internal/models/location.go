package models

import "fmt"

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lng)
}

// Address holds the address parts returned by the geocoder. Every field is
// optional upstream.
type Address struct {
	Suburb        string `json:"suburb,omitempty"`
	Neighbourhood string `json:"neighbourhood,omitempty"`
	Residential   string `json:"residential,omitempty"`
	City          string `json:"city,omitempty"`
	Town          string `json:"town,omitempty"`
	Municipality  string `json:"municipality,omitempty"`
	State         string `json:"state,omitempty"`
	Postcode      string `json:"postcode,omitempty"`
	Country       string `json:"country,omitempty"`
	CountryCode   string `json:"country_code,omitempty"`
}

// Area returns the most local named part of the address.
func (a Address) Area() string {
	return firstNonEmpty(a.Suburb, a.Neighbourhood, a.Residential)
}

// Locality returns the city-level part of the address.
func (a Address) Locality() string {
	return firstNonEmpty(a.City, a.Town, a.Municipality)
}

// Location is the persisted "current location" record.
type Location struct {
	Name        string       `json:"name"`
	Address     *Address     `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates"`
}

// LocationSuggestion is one candidate from a forward geocode lookup.
type LocationSuggestion struct {
	DisplayName string
	Coordinates Coordinates
	Address     Address
}

// Location converts the suggestion into a persistable record.
func (s LocationSuggestion) Location() Location {
	addr := s.Address
	coords := s.Coordinates
	return Location{
		Name:        s.DisplayName,
		Address:     &addr,
		Coordinates: &coords,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
