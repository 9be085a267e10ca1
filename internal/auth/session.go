package auth

import (
	"errors"
	"fmt"
	"os"

	"github.com/Levipasha/retrend/internal/models"
	"github.com/Levipasha/retrend/internal/storage"
)

const (
	// Environment variable names
	EnvToken = "RETREND_AUTH_TOKEN"
	EnvName  = "RETREND_AUTH_NAME"
)

// Storage keys for the signed-in session.
const (
	KeyToken   = "authToken"
	KeyName    = "authname"
	KeyPicture = "authpicture"
	KeyEmail   = "authemail"
	KeyPhone   = "authphone"
)

// SessionKeys lists every key removed on logout.
var SessionKeys = []string{KeyToken, KeyName, KeyPicture, KeyEmail, KeyPhone}

// Common errors
var (
	ErrNoSession      = errors.New("no session found")
	ErrSessionExpired = errors.New("session expired")
)

// SessionStore reads and writes the auth session in persisted storage.
type SessionStore struct {
	store storage.Store
}

// NewSessionStore creates a SessionStore over store.
func NewSessionStore(store storage.Store) *SessionStore {
	return &SessionStore{store: store}
}

// Get retrieves the session from all available sources.
// Priority: environment variables > persisted storage
func (s *SessionStore) Get() (*models.Session, error) {
	envSession := GetSessionFromEnv()
	if envSession.IsValid() {
		return envSession, nil
	}

	token, err := s.store.Get(KeyToken)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && token == "") {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	session := &models.Session{Token: token}
	session.Name = s.optional(KeyName)
	session.Picture = s.optional(KeyPicture)
	session.Email = s.optional(KeyEmail)
	session.Phone = s.optional(KeyPhone)

	if TokenExpired(token) {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Save persists the session. Empty optional fields are removed so that a
// previous user's profile does not linger.
func (s *SessionStore) Save(session *models.Session) error {
	if !session.IsValid() {
		return ErrNoSession
	}

	fields := []struct {
		key   string
		value string
	}{
		{KeyToken, session.Token},
		{KeyName, session.Name},
		{KeyPicture, session.Picture},
		{KeyEmail, session.Email},
		{KeyPhone, session.Phone},
	}

	for _, f := range fields {
		if f.value == "" {
			if err := s.store.Delete(f.key); err != nil {
				return err
			}
			continue
		}
		if err := s.store.Set(f.key, f.value); err != nil {
			// Don't leave a token behind without its profile
			_ = s.store.Delete(KeyToken)
			return err
		}
	}

	return nil
}

// Clear removes every session key.
func (s *SessionStore) Clear() error {
	return storage.Clear(s.store, SessionKeys...)
}

// Exists returns true if a usable session is available.
func (s *SessionStore) Exists() bool {
	_, err := s.Get()
	return err == nil
}

func (s *SessionStore) optional(key string) string {
	v, err := s.store.Get(key)
	if err != nil {
		return ""
	}
	return v
}

// GetSessionFromEnv reads a session from environment variables.
func GetSessionFromEnv() *models.Session {
	return &models.Session{
		Token: os.Getenv(EnvToken),
		Name:  os.Getenv(EnvName),
	}
}
