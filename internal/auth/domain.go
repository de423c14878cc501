package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

type Config struct {
	// Secret verifies bearer tokens. An empty secret disables
	// authentication entirely; callers then identify themselves in the
	// request body.
	Secret []byte
	Issuer string
}

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	UserID string
}

// Claims is the token payload AUTOCREA issues and accepts.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}
