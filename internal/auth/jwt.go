// internal/auth/jwt.go
// JWT token generation and validation for organizer sessions.

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims issued for an organizer session.
type Claims struct {
	OrganizerID string `json:"organizer_id"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new signed JWT.
func GenerateJWT(organizerID, role, secret string, expiration time.Duration) (string, error) {
	claims := Claims{
		OrganizerID: organizerID,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWT validates a JWT and returns the organizer id and role.
func ValidateJWT(tokenString, secret string) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims.OrganizerID, claims.Role, nil
	}
	return "", "", fmt.Errorf("invalid token")
}
