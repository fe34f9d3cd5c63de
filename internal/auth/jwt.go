package auth

import (
	"time"

	"vnts-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTCustomClaims struct {
	PrincipalID uuid.UUID       `json:"principal_id"`
	Name        string          `json:"name"`
	Role        models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken emite un token de 24 horas para un admin o un vendedor.
func GenerateToken(secret string, principalID uuid.UUID, name string, role models.UserRole) (string, error) {
	claims := &JWTCustomClaims{
		PrincipalID: principalID,
		Name:        name,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
