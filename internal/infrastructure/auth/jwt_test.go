package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-jwt-signing-32ch",
		AccessTokenExpiration: expiration,
		Issuer:                "wims-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestService(time.Hour)
	userID := uuid.New()

	token, expiresAt, err := service.GenerateToken(userID, "manager1", "staff")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "manager1", claims.Username)
	assert.Equal(t, "staff", claims.Role)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_ValidateToken(t *testing.T) {
	t.Run("rejects garbage token", func(t *testing.T) {
		service := newTestService(time.Hour)

		_, err := service.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		service := newTestService(-time.Minute)

		token, _, err := service.GenerateToken(uuid.New(), "manager1", "staff")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		service := newTestService(time.Hour)
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-key-entirely-32chars!",
			AccessTokenExpiration: time.Hour,
			Issuer:                "wims-test",
		})

		token, _, err := other.GenerateToken(uuid.New(), "manager1", "staff")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
