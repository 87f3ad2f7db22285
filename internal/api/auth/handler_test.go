package auth

import (
	"testing"

	"collection-app/config"
	"collection-app/internal/domain/users"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPasswordStrong(t *testing.T) {
	assert.True(t, isPasswordStrong("abcdef12"))
	assert.True(t, isPasswordStrong("S0mePassword"))

	assert.False(t, isPasswordStrong("short1"))
	assert.False(t, isPasswordStrong("onlyletters"))
	assert.False(t, isPasswordStrong("12345678"))
}

func TestIssueAppJWTRoundTrips(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	user := users.User{ID: uuid.New(), Email: "ash@example.com"}

	tokenString, err := issueAppJWT(user)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, user.ID.String(), claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.NotZero(t, claims["exp"])
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("", "a", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}
