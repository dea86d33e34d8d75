package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixluck/wallet/internal/domain"
)

func TestJWTManager(t *testing.T) {
	t.Run("generate and verify", func(t *testing.T) {
		m := NewJWTManager("test-secret", time.Hour)

		token, err := m.Generate("admin-1", RoleAdmin)
		require.NoError(t, err)

		claims, err := m.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "admin-1", claims.Subject)
		assert.Equal(t, RoleAdmin, claims.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		m := NewJWTManager("test-secret", -time.Hour)

		token, err := m.Generate("admin-1", RoleAdmin)
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, domain.ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTManager("secret-a", time.Hour).Generate("admin-1", RoleAdmin)
		require.NoError(t, err)

		_, err = NewJWTManager("secret-b", time.Hour).Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		m := NewJWTManager("test-secret", time.Hour)

		_, err := m.Verify("not-a-token")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}
