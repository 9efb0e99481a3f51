package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(tenantID, "Tech@Example.COM ", "Alex", "s3cret-pass", RoleTechnician)
		require.NoError(t, err)

		assert.Equal(t, "tech@example.com", user.Email, "email is normalized")
		assert.Equal(t, "Alex", user.Name)
		assert.Equal(t, RoleTechnician, user.Role)
		assert.True(t, user.Active)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser(tenantID, "not-an-email", "Alex", "s3cret-pass", RoleViewer)
		assert.Error(t, err)
		_, err = NewUser(tenantID, "  ", "Alex", "s3cret-pass", RoleViewer)
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewUser(tenantID, "a@b.com", "  ", "s3cret-pass", RoleViewer)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "a@b.com", "Alex", "short", RoleViewer)
		assert.Error(t, err)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser(tenantID, "a@b.com", "Alex", "s3cret-pass", Role("ROOT"))
		assert.Error(t, err)
	})
}

func TestUser_CheckPassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.com", "Alex", "s3cret-pass", RoleViewer)
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUser_ChangeRole(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.com", "Alex", "s3cret-pass", RoleViewer)
	require.NoError(t, err)

	require.NoError(t, user.ChangeRole(RoleSupervisor))
	assert.Equal(t, RoleSupervisor, user.Role)

	assert.Error(t, user.ChangeRole(Role("ROOT")))
}

func TestUser_Deactivate(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.com", "Alex", "s3cret-pass", RoleViewer)
	require.NoError(t, err)

	user.Deactivate()
	assert.False(t, user.Active)
}

func TestUser_Actor(t *testing.T) {
	user, err := NewUser(uuid.New(), "a@b.com", "Alex", "s3cret-pass", RoleAdmin)
	require.NoError(t, err)

	actor := user.Actor()
	assert.Equal(t, user.ID, actor.UserID)
	assert.Equal(t, user.TenantID, actor.TenantID)
	assert.Equal(t, RoleAdmin, actor.Role)
}
