package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanChangeRole(t *testing.T) {
	policy := NewPolicy(Config{})

	superadmin := Actor{ID: 1, Role: RoleSuperAdmin}
	admin := Actor{ID: 2, Role: RoleAdmin}
	seller := Actor{ID: 3, Role: RoleSeller}
	buyer := Actor{ID: 4, Role: RoleBuyer}

	t.Run("superadmin may change a regular role", func(t *testing.T) {
		decision := policy.CanChangeRole(superadmin, admin)
		require.True(t, decision.Allowed)
	})

	t.Run("non-superadmin actors are denied", func(t *testing.T) {
		for _, actor := range []Actor{admin, seller, buyer} {
			decision := policy.CanChangeRole(actor, buyer)
			require.False(t, decision.Allowed)
			require.Equal(t, "permission denied", decision.Reason)
		}
	})

	t.Run("superadmin target is locked for everyone", func(t *testing.T) {
		other := Actor{ID: 5, Role: RoleSuperAdmin}

		decision := policy.CanChangeRole(superadmin, other)
		require.False(t, decision.Allowed)
		require.Equal(t, "cannot change role of a superadmin", decision.Reason)

		// Even against itself.
		decision = policy.CanChangeRole(superadmin, superadmin)
		require.False(t, decision.Allowed)
	})

	t.Run("superuser flag locks the target too", func(t *testing.T) {
		legacy := Actor{ID: 6, Role: RoleAdmin, IsSuperuser: true}

		decision := policy.CanChangeRole(superadmin, legacy)
		require.False(t, decision.Allowed)
		require.Equal(t, "cannot change role of a superadmin", decision.Reason)
	})

	t.Run("actor check runs before the target lock", func(t *testing.T) {
		decision := policy.CanChangeRole(admin, superadmin)
		require.False(t, decision.Allowed)
		require.Equal(t, "permission denied", decision.Reason)
	})
}

func TestCanAdministerRoles(t *testing.T) {
	policy := NewPolicy(Config{})

	require.True(t, policy.CanAdministerRoles(Actor{ID: 1, Role: RoleSuperAdmin}).Allowed)

	for _, actor := range []Actor{
		{ID: 2, Role: RoleAdmin},
		{ID: 3, Role: RoleSeller},
		{ID: 4, Role: RoleBuyer},
		{ID: 5, Role: RoleAdmin, IsSuperuser: true},
	} {
		decision := policy.CanAdministerRoles(actor)
		require.False(t, decision.Allowed, actor.Role)
		require.Equal(t, "permission denied", decision.Reason)
	}
}

func TestCanSubmitApplication(t *testing.T) {
	policy := NewPolicy(Config{})

	t.Run("buyer without application may apply", func(t *testing.T) {
		decision := policy.CanSubmitApplication(Actor{ID: 1, Role: RoleBuyer}, false)
		require.True(t, decision.Allowed)
	})

	t.Run("existing application blocks regardless of status", func(t *testing.T) {
		decision := policy.CanSubmitApplication(Actor{ID: 1, Role: RoleBuyer}, true)
		require.False(t, decision.Allowed)
		require.Equal(t, "already applied", decision.Reason)
	})

	t.Run("seller may not apply again", func(t *testing.T) {
		decision := policy.CanSubmitApplication(Actor{ID: 2, Role: RoleSeller}, false)
		require.False(t, decision.Allowed)
	})
}

func TestAdminGates(t *testing.T) {
	policy := NewPolicy(Config{})

	admins := []Actor{
		{ID: 1, Role: RoleSuperAdmin},
		{ID: 2, Role: RoleAdmin},
	}
	others := []Actor{
		{ID: 3, Role: RoleSeller},
		{ID: 4, Role: RoleBuyer},
		{ID: 5, Role: Role("intruder")},
	}

	for _, actor := range admins {
		require.True(t, policy.CanReviewApplication(actor).Allowed, actor.Role)
		require.True(t, policy.CanListAccounts(actor).Allowed, actor.Role)
		require.True(t, policy.CanReviewProperty(actor).Allowed, actor.Role)
	}

	for _, actor := range others {
		require.False(t, policy.CanReviewApplication(actor).Allowed, actor.Role)
		require.False(t, policy.CanListAccounts(actor).Allowed, actor.Role)
		require.False(t, policy.CanReviewProperty(actor).Allowed, actor.Role)
	}
}

func TestCanModifyProperty(t *testing.T) {
	policy := NewPolicy(Config{})

	owner := Actor{ID: 10, Role: RoleSeller}

	require.True(t, policy.CanModifyProperty(owner, 10).Allowed)
	require.True(t, policy.CanModifyProperty(Actor{ID: 1, Role: RoleAdmin}, 10).Allowed)
	require.True(t, policy.CanModifyProperty(Actor{ID: 2, Role: RoleSuperAdmin}, 10).Allowed)

	decision := policy.CanModifyProperty(Actor{ID: 11, Role: RoleSeller}, 10)
	require.False(t, decision.Allowed)
	require.Equal(t, "permission denied", decision.Reason)
}

func TestDefaultRole(t *testing.T) {
	require.Equal(t, RoleBuyer, NewPolicy(Config{}).DefaultRole())
	require.Equal(t, RoleSeller, NewPolicy(Config{DefaultRole: RoleSeller}).DefaultRole())
}
