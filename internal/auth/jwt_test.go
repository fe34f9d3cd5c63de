package auth

import (
	"testing"

	"vnts-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "una-clave-de-prueba-suficientemente-larga"

func TestGenerateTokenRoundTrip(t *testing.T) {
	id := uuid.New()

	tok, err := GenerateToken(testSecret, id, "María", models.RoleSeller)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	parsed, err := jwt.ParseWithClaims(tok, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(*JWTCustomClaims)
	require.True(t, ok)
	assert.Equal(t, id, claims.PrincipalID)
	assert.Equal(t, "María", claims.Name)
	assert.Equal(t, models.RoleSeller, claims.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tok, err := GenerateToken(testSecret, uuid.New(), "Admin", models.RoleAdmin)
	require.NoError(t, err)

	parsed, err := jwt.ParseWithClaims(tok, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte("otra-clave-distinta-igual-de-larga-xx"), nil
	})
	assert.Error(t, err)
	if parsed != nil {
		assert.False(t, parsed.Valid)
	}
}
