// Package catalog holds the category tree listings are filed under.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultData []byte

// Field is a category-specific input shown on the sell form.
type Field struct {
	Key     string   `yaml:"key"`
	Label   string   `yaml:"label"`
	Options []string `yaml:"options,omitempty"`
}

// Brand is a vehicle make and its models.
type Brand struct {
	Name   string   `yaml:"name"`
	Models []string `yaml:"models"`
}

// VehicleOptions are the choices offered by the vehicle selector.
type VehicleOptions struct {
	Types  []string `yaml:"types"`
	Brands []Brand  `yaml:"brands"`
}

// Models returns the models of the named brand.
func (v VehicleOptions) Models(brand string) []string {
	for _, b := range v.Brands {
		if b.Name == brand {
			return b.Models
		}
	}
	return nil
}

// Category is a top-level category with its items.
type Category struct {
	Title   string          `yaml:"title"`
	Items   []string        `yaml:"items"`
	Fields  []Field         `yaml:"fields,omitempty"`
	Vehicle *VehicleOptions `yaml:"vehicle,omitempty"`
}

// IsVehicle reports whether listings in c need brand, model and type.
func (c Category) IsVehicle() bool {
	return c.Vehicle != nil
}

// Catalog is the full category tree.
type Catalog struct {
	Categories []Category `yaml:"categories"`
}

// Parse decodes a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Title) == "" {
			return nil, fmt.Errorf("category %d has no title", i)
		}
	}
	return &c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultData)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Find returns the category whose title matches name, ignoring case.
func (c *Catalog) Find(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if strings.EqualFold(cat.Title, name) {
			return cat, true
		}
	}
	return Category{}, false
}

// IsValid reports whether a category/item pair can be sold under. The pair
// is accepted when category names a known category, or when item belongs to
// any category.
func (c *Catalog) IsValid(category, item string) bool {
	for _, cat := range c.Categories {
		if strings.EqualFold(cat.Title, category) {
			return true
		}
		for _, it := range cat.Items {
			if it == item {
				return true
			}
		}
	}
	return false
}

// IsVehicleCategory reports whether category requires vehicle details.
func (c *Catalog) IsVehicleCategory(category string) bool {
	cat, ok := c.Find(category)
	return ok && cat.IsVehicle()
}

// Fields returns the extra inputs for category. Vehicle categories and
// unknown names have none.
func (c *Catalog) Fields(category string) []Field {
	cat, ok := c.Find(category)
	if !ok || cat.IsVehicle() {
		return nil
	}
	return cat.Fields
}

// VehicleOptions returns the selector choices for a vehicle category.
func (c *Catalog) VehicleOptions(category string) (VehicleOptions, bool) {
	cat, ok := c.Find(category)
	if !ok || cat.Vehicle == nil {
		return VehicleOptions{}, false
	}
	return *cat.Vehicle, true
}
