package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateAPIToken(t *testing.T) {
	user := &User{}

	token, err := user.GenerateAPIToken()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(token, "lh_"), "got %s", token)
	assert.Equal(t, HashAPIToken(token), user.APITokenHash)
	assert.Equal(t, token[:12], user.APITokenPrefix)
	assert.NotContains(t, user.APITokenHash, token[3:], "raw token must not be stored")
}

func TestCreateUser(t *testing.T) {
	t.Run("Defaults role to user", func(t *testing.T) {
		user, err := CreateUser(1, "Jordan Smith", "jordan@garage.example", "password123", "")
		require.NoError(t, err)
		assert.Equal(t, ROLE_USER, user.Role)
		assert.Equal(t, STATUS_ACTIVE, user.Status)
		assert.True(t, user.CheckPassword("password123"))
	})

	t.Run("Rejects invalid email", func(t *testing.T) {
		_, err := CreateUser(1, "Jordan Smith", "not-an-email", "password123", ROLE_ADMIN)
		assert.Error(t, err)
	})
}
