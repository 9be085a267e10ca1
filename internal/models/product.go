package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Price is a listing price. The backend stores whatever the form sent, so it
// may arrive as a JSON string or number.
type Price string

// UnmarshalJSON accepts both string and numeric prices.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = Price(n.String())
	return nil
}

// Float returns the numeric value of the price, or 0 if it is not a number.
func (p Price) Float() float64 {
	f, err := strconv.ParseFloat(string(p), 64)
	if err != nil {
		return 0
	}
	return f
}

// VehicleData holds the vehicle selector fields for vehicle categories.
type VehicleData struct {
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	VehicleType string `json:"vehicleType,omitempty"`
}

// IsComplete returns true if brand, model and vehicle type are all set.
func (v VehicleData) IsComplete() bool {
	return v.Brand != "" && v.Model != "" && v.VehicleType != ""
}

// Product is a listing as returned by the backend.
type Product struct {
	ID            string            `json:"_id,omitempty"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	Address       string            `json:"address,omitempty"`
	Price         Price             `json:"price,omitempty"`
	UploadedFiles []string          `json:"uploadedFiles,omitempty"`
	Image         string            `json:"image,omitempty"`
	Name          string            `json:"name,omitempty"`
	Category      string            `json:"catagory,omitempty"`
	Subcategory   string            `json:"subcatagory,omitempty"`
	VehicleData   *VehicleData      `json:"vehicleData,omitempty"`
	CategoryData  map[string]string `json:"categoryData,omitempty"`
}

// ProductPayload is the body of POST /add_product. Field names, including the
// misspelled category keys, are the backend's.
type ProductPayload struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Address       string            `json:"address"`
	Price         string            `json:"price"`
	UploadedFiles []string          `json:"uploadedFiles"`
	Image         string            `json:"image"`
	Name          string            `json:"name"`
	Category      string            `json:"catagory"`
	Subcategory   string            `json:"subcatagory"`
	VehicleData   VehicleData       `json:"vehicleData"`
	CategoryData  map[string]string `json:"categoryData"`
}
