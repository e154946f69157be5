package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		user, err := NewUser("alice", "password1", RoleStaff)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, RoleStaff, user.Role)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "password1", user.PasswordHash)
		assert.Len(t, user.GetDomainEvents(), 1)
	})

	t.Run("username normalised to lowercase", func(t *testing.T) {
		user, err := NewUser("  Alice.B  ", "password1", RoleMember)
		require.NoError(t, err)
		assert.Equal(t, "alice.b", user.Username)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := NewUser("alice", "password1", Role("owner"))
		assert.Error(t, err)
	})

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "password1"},
		{"short username", "ab", "password1"},
		{"username with spaces", "a b c", "password1"},
		{"long username", strings.Repeat("a", 101), "password1"},
		{"empty password", "alice", ""},
		{"short password", "alice", "pass1"},
		{"password without number", "alice", "passwordonly"},
		{"password without letter", "alice", "12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.username, tt.password, RoleMember)
			assert.Error(t, err)
		})
	}
}

func TestUserVerifyPassword(t *testing.T) {
	user, err := NewUser("bob", "secret123", RoleMember)
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("secret123"))
	assert.False(t, user.VerifyPassword("wrong123"))
	assert.False(t, user.VerifyPassword(""))
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewUser("bob", "secret123", RoleMember)
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("newsecret1"))
	assert.True(t, user.VerifyPassword("newsecret1"))
	assert.False(t, user.VerifyPassword("secret123"))

	assert.Error(t, user.ChangePassword("short"))
}

func TestUserChangeRole(t *testing.T) {
	user, err := NewUser("carol", "password1", RoleMember)
	require.NoError(t, err)
	user.ClearDomainEvents()

	require.NoError(t, user.ChangeRole(RoleAdmin))
	assert.Equal(t, RoleAdmin, user.Role)
	assert.Len(t, user.GetDomainEvents(), 1)

	// No-op change publishes nothing
	user.ClearDomainEvents()
	require.NoError(t, user.ChangeRole(RoleAdmin))
	assert.Empty(t, user.GetDomainEvents())

	assert.Error(t, user.ChangeRole(Role("root")))
}

func TestUserActivation(t *testing.T) {
	user, err := NewUser("dave", "password1", RoleStaff)
	require.NoError(t, err)

	assert.True(t, user.IsActive())
	assert.Error(t, user.Activate())

	require.NoError(t, user.Deactivate())
	assert.False(t, user.IsActive())
	assert.Error(t, user.Deactivate())

	require.NoError(t, user.Activate())
	assert.True(t, user.IsActive())
}

func TestUserRecordLogin(t *testing.T) {
	user, err := NewUser("erin", "password1", RoleMember)
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	versionBefore := user.GetVersion()
	user.RecordLogin()

	require.NotNil(t, user.LastLoginAt)
	assert.Equal(t, versionBefore+1, user.GetVersion())
}
