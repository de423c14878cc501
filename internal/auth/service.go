package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Service verifies bearer tokens. Token issuance lives with the identity
// provider, not here.
type Service struct {
	config Config
}

func NewService(config Config) *Service {
	return &Service{
		config: config,
	}
}

// Enabled reports whether token verification is configured.
func (s *Service) Enabled() bool {
	return len(s.config.Secret) > 0
}

// Verify parses and validates a bearer token and returns the caller's
// identity.
func (s *Service) Verify(tokenString string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.config.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(s.config.Issuer),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return Identity{}, ErrTokenInvalid
		}
		return Identity{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrTokenInvalid
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return Identity{}, ErrTokenInvalid
	}

	return Identity{UserID: userID}, nil
}
