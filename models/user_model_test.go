package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUser_RegularUserAutoApproved(t *testing.T) {
	u := NewUser("Asha", "asha@example.com", "hash", RoleUser, 0)

	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.IsApproved)
	assert.False(t, u.IsSuperAdmin)
	assert.False(t, u.PendingApproval())
}

func TestNewUser_FirstAdminBecomesSuperAdmin(t *testing.T) {
	u := NewUser("Asha", "asha@example.com", "hash", RoleAdmin, 0)

	assert.True(t, u.IsSuperAdmin)
	assert.True(t, u.IsApproved)
	assert.False(t, u.PendingApproval())
}

func TestNewUser_LaterAdminsStartPending(t *testing.T) {
	for _, adminCount := range []int64{1, 2, 10} {
		u := NewUser("Ben", "ben@example.com", "hash", RoleAdmin, adminCount)

		assert.False(t, u.IsSuperAdmin)
		assert.False(t, u.IsApproved)
		assert.True(t, u.PendingApproval())
	}
}

func TestUser_Approve(t *testing.T) {
	pending := NewUser("Ben", "ben@example.com", "hash", RoleAdmin, 1)
	assert.NoError(t, pending.Approve())
	assert.True(t, pending.IsApproved)
	assert.False(t, pending.PendingApproval())

	regular := NewUser("Asha", "asha@example.com", "hash", RoleUser, 0)
	assert.ErrorIs(t, regular.Approve(), ErrNotAnAdmin)
}

func TestUser_Revoke(t *testing.T) {
	admin := NewUser("Ben", "ben@example.com", "hash", RoleAdmin, 1)
	_ = admin.Approve()

	assert.NoError(t, admin.Revoke())
	assert.False(t, admin.IsApproved)
	assert.True(t, admin.PendingApproval())

	super := NewUser("Root", "root@example.com", "hash", RoleAdmin, 0)
	assert.ErrorIs(t, super.Revoke(), ErrSuperAdminImmutable)
	assert.True(t, super.IsApproved)
}

func TestUser_Reject(t *testing.T) {
	admin := NewUser("Ben", "ben@example.com", "hash", RoleAdmin, 1)

	assert.NoError(t, admin.Reject())
	assert.Equal(t, RoleUser, admin.Role)
	assert.True(t, admin.IsApproved)

	super := NewUser("Root", "root@example.com", "hash", RoleAdmin, 0)
	assert.ErrorIs(t, super.Reject(), ErrSuperAdminRejection)
	assert.Equal(t, RoleAdmin, super.Role)
}

func TestUser_DeletableBy(t *testing.T) {
	super := NewUser("Root", "root@example.com", "hash", RoleAdmin, 0)
	otherSuper := NewUser("Root2", "root2@example.com", "hash", RoleAdmin, 0)
	regular := NewUser("Asha", "asha@example.com", "hash", RoleUser, 0)

	// A super admin may delete regular accounts and itself, never another
	// super admin.
	assert.NoError(t, regular.DeletableBy(&super))
	assert.NoError(t, super.DeletableBy(&super))
	assert.ErrorIs(t, otherSuper.DeletableBy(&super), ErrSuperAdminDeleteSelf)
}
