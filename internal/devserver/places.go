package devserver

import "github.com/Levipasha/retrend/internal/models"

// DefaultPlaces returns a small gazetteer of Indian localities.
func DefaultPlaces() []Place {
	in := func(a models.Address) models.Address {
		a.Country = "India"
		a.CountryCode = "in"
		return a
	}
	return []Place{
		{"Koramangala", in(models.Address{Suburb: "Koramangala", City: "Bengaluru", State: "Karnataka", Postcode: "560034"}), models.Coordinates{Lat: 12.9352, Lng: 77.6245}},
		{"Indiranagar", in(models.Address{Suburb: "Indiranagar", City: "Bengaluru", State: "Karnataka", Postcode: "560038"}), models.Coordinates{Lat: 12.9784, Lng: 77.6408}},
		{"Whitefield", in(models.Address{Neighbourhood: "Whitefield", City: "Bengaluru", State: "Karnataka"}), models.Coordinates{Lat: 12.9698, Lng: 77.7500}},
		{"Bandra West", in(models.Address{Suburb: "Bandra West", City: "Mumbai", State: "Maharashtra", Postcode: "400050"}), models.Coordinates{Lat: 19.0596, Lng: 72.8295}},
		{"Andheri", in(models.Address{Suburb: "Andheri", City: "Mumbai", State: "Maharashtra"}), models.Coordinates{Lat: 19.1136, Lng: 72.8697}},
		{"Connaught Place", in(models.Address{Neighbourhood: "Connaught Place", City: "New Delhi", State: "Delhi"}), models.Coordinates{Lat: 28.6315, Lng: 77.2167}},
		{"Banjara Hills", in(models.Address{Suburb: "Banjara Hills", City: "Hyderabad", State: "Telangana"}), models.Coordinates{Lat: 17.4126, Lng: 78.4482}},
		{"Kothrud", in(models.Address{Suburb: "Kothrud", City: "Pune", State: "Maharashtra"}), models.Coordinates{Lat: 18.5074, Lng: 73.8077}},
		{"Salt Lake", in(models.Address{Residential: "Salt Lake", City: "Kolkata", State: "West Bengal"}), models.Coordinates{Lat: 22.5867, Lng: 88.4171}},
		{"Manali", in(models.Address{Town: "Manali", State: "Himachal Pradesh"}), models.Coordinates{Lat: 32.2432, Lng: 77.1892}},
		{"Goa", in(models.Address{State: "Goa"}), models.Coordinates{Lat: 15.2993, Lng: 74.1240}},
	}
}
