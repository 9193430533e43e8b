package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Identity is the subset of bearer token claims shown by "auth status".
type Identity struct {
	Subject   string    `json:"subject,omitempty"`
	Email     string    `json:"email,omitempty"`
	Username  string    `json:"username,omitempty"`
	Issuer    string    `json:"issuer,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// Display returns the most specific human readable identity.
func (i Identity) Display() string {
	switch {
	case i.Email != "":
		return i.Email
	case i.Username != "":
		return i.Username
	default:
		return i.Subject
	}
}

// TokenIdentity parses token without verifying its signature. Opaque tokens
// that are not JWTs return an error.
func TokenIdentity(token string) (Identity, error) {
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("token is not a JWT: %w", err)
	}
	var id Identity
	if v, ok := claims["sub"].(string); ok {
		id.Subject = v
	}
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := claims["preferred_username"].(string); ok {
		id.Username = v
	}
	if v, ok := claims["iss"].(string); ok {
		id.Issuer = v
	}
	if exp, ok := claims["exp"].(float64); ok {
		id.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return id, nil
}
