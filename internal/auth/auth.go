// Package auth protects the status server's one mutating endpoint,
// POST /cancel, with a bearer JWT naming the operator who holds it.
// There is no login flow and no password storage: tokens are minted
// offline by `cmd/crossfill token` and handed to whoever is allowed to
// stop a run.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims identifies the operator a token was minted for.
type Claims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// Service signs and verifies operator tokens against a single shared
// secret (CROSSFILL_JWT_SECRET).
type Service struct {
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewService returns a Service bound to secret. internal/config
// refuses to start the server or the token command with an empty
// secret, so secret is never empty here.
func NewService(secret string) *Service {
	return &Service{
		jwtSecret:     []byte(secret),
		tokenDuration: 24 * time.Hour,
	}
}

// GenerateToken mints a bearer token naming operator, valid for 24h.
func (s *Service) GenerateToken(operator string) (string, error) {
	claims := &Claims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "crossfill",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
