package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Levipasha/retrend/internal/models"
)

// KeyUserLocation holds the persisted current-location record.
const KeyUserLocation = "userLocation"

// LocationStore persists the single current-location record.
type LocationStore struct {
	store       Store
	defaultName string
}

// NewLocationStore creates a LocationStore. defaultName is returned when no
// record exists and is never allowed to be empty.
func NewLocationStore(store Store, defaultName string) *LocationStore {
	if defaultName == "" {
		defaultName = "India"
	}
	return &LocationStore{store: store, defaultName: defaultName}
}

// Default returns the fallback record with no coordinates.
func (s *LocationStore) Default() models.Location {
	return models.Location{Name: s.defaultName}
}

// Load returns the persisted location, or the default when nothing usable is
// stored.
func (s *LocationStore) Load() (models.Location, error) {
	raw, err := s.store.Get(KeyUserLocation)
	if errors.Is(err, ErrNotFound) {
		return s.Default(), nil
	}
	if err != nil {
		return s.Default(), fmt.Errorf("failed to read location: %w", err)
	}

	var loc models.Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return s.Default(), fmt.Errorf("failed to parse stored location: %w", err)
	}
	if loc.Name == "" {
		loc.Name = s.defaultName
	}
	return loc, nil
}

// Save overwrites the persisted record.
func (s *LocationStore) Save(loc models.Location) error {
	if loc.Name == "" {
		loc.Name = s.defaultName
	}
	data, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("failed to marshal location: %w", err)
	}
	return s.store.Set(KeyUserLocation, string(data))
}
