package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobank/internal/domain"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	user := &domain.User{ID: "user-1", Email: "jane@example.com"}

	token, err := manager.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(&domain.User{ID: "user-1"})
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := manager.Generate(&domain.User{ID: "user-1"})
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	_, err := manager.Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
