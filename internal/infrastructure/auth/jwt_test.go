package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateAndParse(t *testing.T) {
	service := NewJWTService("test-secret", 60)

	token, err := service.Generate(42, 5, true)
	require.NoError(t, err)

	claims, err := service.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, uint(5), claims.TenantID)
	assert.True(t, claims.IsAdmin)

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewJWTService("other-secret", 60)
		_, err := other.Parse(token)
		assert.Error(t, err)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := service.Parse("not.a.token")
		assert.Error(t, err)
	})
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(4)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, hasher.Verify(hash, "correct horse"))
	assert.False(t, hasher.Verify(hash, "wrong horse"))
}
