package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateAndParseJWT(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		token, err := GenerateJWT(42, "test@example.com", "admin")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "test@example.com", claims.Email)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := GenerateJWT(1, "a@b.com", "customer")
		assert.Error(t, err)
	})

	t.Run("TamperedToken", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		token, err := GenerateJWT(1, "a@b.com", "customer")
		require.NoError(t, err)

		_, err = ParseJWT(token + "x")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		token, err := GenerateJWT(1, "a@b.com", "customer")
		require.NoError(t, err)

		t.Setenv("JWT_SECRET", "another-secret")
		_, err = ParseJWT(token)
		assert.Error(t, err)
	})
}
