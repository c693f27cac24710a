package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT signs an HS256 bearer token whose subject is actorID, in the shape
// AuthMiddleware accepts. Identity normally issues these; this is for local use and tests.
func GenerateJWT(actorID string, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	if actorID == "" {
		return "", fmt.Errorf("actor id is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   actorID,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
