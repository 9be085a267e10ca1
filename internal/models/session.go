package models

// Session holds the signed-in user's bearer token and profile.
type Session struct {
	Token   string
	Name    string
	Picture string
	Email   string
	Phone   string
}

// IsValid returns true if a bearer token is present.
func (s Session) IsValid() bool {
	return s.Token != ""
}
