// Package sell assembles, validates and submits a product listing.
package sell

import (
	"strings"

	"github.com/Levipasha/retrend/internal/models"
)

// MaxImages is the number of photo slots a listing may have.
const MaxImages = 12

// AddressMode selects which of the two address inputs is used.
type AddressMode string

const (
	ModeAddress  AddressMode = "address"
	ModeLocation AddressMode = "location"
)

// Draft is a listing being assembled by the sell form.
type Draft struct {
	Category    string
	Subcategory string

	Title       string
	Description string
	Price       string

	Mode     AddressMode
	Address  string
	Location string

	// Images holds one ref per photo slot. A ref is a local file path, a
	// hosted URL, or empty when no file was chosen for the slot.
	Images       []string
	ProfileImage string
	Name         string

	Vehicle      models.VehicleData
	CategoryData map[string]string
}

// ChosenAddress returns the address input selected by Mode. An unset mode
// means ModeAddress.
func (d Draft) ChosenAddress() string {
	if d.Mode == ModeLocation {
		return d.Location
	}
	return d.Address
}

// ImageRefs returns the refs of filled slots in slot order.
func (d Draft) ImageRefs() []string {
	return nonEmpty(d.Images)
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	c := d
	c.Images = append([]string(nil), d.Images...)
	if d.CategoryData != nil {
		c.CategoryData = make(map[string]string, len(d.CategoryData))
		for k, v := range d.CategoryData {
			c.CategoryData[k] = v
		}
	}
	return c
}

// Payload builds the add-product body from d and the hosted image URLs.
func (d Draft) Payload(imageURLs []string, profileURL string) models.ProductPayload {
	categoryData := d.CategoryData
	if categoryData == nil {
		categoryData = map[string]string{}
	}
	return models.ProductPayload{
		Title:         d.Title,
		Description:   d.Description,
		Address:       d.ChosenAddress(),
		Price:         d.Price,
		UploadedFiles: nonEmpty(imageURLs),
		Image:         profileURL,
		Name:          d.Name,
		Category:      d.Category,
		Subcategory:   d.Subcategory,
		VehicleData:   d.Vehicle,
		CategoryData:  categoryData,
	}
}

func nonEmpty(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if strings.TrimSpace(r) != "" {
			out = append(out, r)
		}
	}
	return out
}
