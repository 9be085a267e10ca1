package storage

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// DefaultService is the keyring service name items are stored under.
const DefaultService = "retrend"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is a persisted string key-value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// KeyringStore implements Store on top of the OS keyring.
type KeyringStore struct {
	service string
}

// NewKeyringStore creates a KeyringStore. An empty service uses DefaultService.
func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = DefaultService
	}
	return &KeyringStore{service: service}
}

// Get retrieves a value from the keyring.
func (s *KeyringStore) Get(key string) (string, error) {
	value, err := keyring.Get(s.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores a value in the keyring.
func (s *KeyringStore) Set(key, value string) error {
	return keyring.Set(s.service, key, value)
}

// Delete removes a value from the keyring, ignoring missing keys.
func (s *KeyringStore) Delete(key string) error {
	err := keyring.Delete(s.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// Clear deletes every key in keys, returning the first error encountered
// after attempting all of them.
func Clear(s Store, keys ...string) error {
	var firstErr error
	for _, k := range keys {
		if err := s.Delete(k); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Available reports whether the keyring can be written and read back.
func (s *KeyringStore) Available() bool {
	const probe = "probe"
	if err := keyring.Set(s.service, probe, probe); err != nil {
		return false
	}
	_ = keyring.Delete(s.service, probe)
	return true
}
