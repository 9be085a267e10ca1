package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the profile claims the backend puts in its tokens.
type TokenClaims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// ParseToken decodes token claims without verifying the signature. The
// backend is the only party that verifies; the client just reads profile
// fields and expiry. Opaque (non-JWT) tokens return ok=false.
func ParseToken(token string) (*TokenClaims, bool) {
	claims := &TokenClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// TokenExpired reports whether token is a JWT whose exp is in the past.
// Opaque tokens never expire client-side.
func TokenExpired(token string) bool {
	claims, ok := ParseToken(token)
	if !ok || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
