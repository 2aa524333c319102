package utils

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Resolved lazily so a JWT_SECRET loaded from .env in main is picked up.
var jwtSecret = sync.OnceValue(func() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Development fallback, same as .env.example
		secret = "spoke_dev_secret"
	}
	return []byte(secret)
})

// Scope values carried in tokens. Customer and chef credentials live in
// different tables, so the scope decides which table the middleware checks.
const (
	ScopeUser = "user"
	ScopeChef = "chef"
)

type CustomClaims struct {
	SubjectID uint   `json:"subject_id"`
	Scope     string `json:"scope"`
	jwt.RegisteredClaims
}

func GenerateToken(subjectID uint, scope string) (string, error) {
	claims := &CustomClaims{
		SubjectID: subjectID,
		Scope:     scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "SpokeRestaurant",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
