package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with valid inputs", func(t *testing.T) {
		user, err := NewUser("alice", "s3cret-pass", RoleStaff)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, RoleStaff, user.Role)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	})

	t.Run("lowercases username", func(t *testing.T) {
		user, err := NewUser("Alice", "s3cret-pass", RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("fails with short username", func(t *testing.T) {
		_, err := NewUser("ab", "s3cret-pass", RoleUser)
		require.Error(t, err)
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("alice", "short", RoleUser)
		require.Error(t, err)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser("alice", "s3cret-pass", UserRole("root"))
		require.Error(t, err)
	})
}

func TestUserPassword(t *testing.T) {
	user, err := NewUser("alice", "s3cret-pass", RoleUser)
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("s3cret-pass"))
	assert.False(t, user.VerifyPassword("wrong-pass"))

	require.NoError(t, user.SetPassword("new-password"))
	assert.True(t, user.VerifyPassword("new-password"))
	assert.False(t, user.VerifyPassword("s3cret-pass"))
}

func TestUserRoles(t *testing.T) {
	staff, err := NewUser("bob", "s3cret-pass", RoleStaff)
	require.NoError(t, err)
	assert.True(t, staff.IsStaff())

	admin, err := NewUser("carol", "s3cret-pass", RoleAdmin)
	require.NoError(t, err)
	assert.True(t, admin.IsStaff())

	plain, err := NewUser("dave", "s3cret-pass", RoleUser)
	require.NoError(t, err)
	assert.False(t, plain.IsStaff())
}
