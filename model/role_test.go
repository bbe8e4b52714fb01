package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	for _, role := range AllRoles {
		assert.True(t, role.IsValid(), "role %s", role)
	}
	assert.False(t, Role("INTERN").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRoleRankOrdering(t *testing.T) {
	assert.Greater(t, RoleSuperAdmin.Rank(), RoleCEO.Rank())
	assert.Greater(t, RoleCEO.Rank(), RoleManager.Rank())
	assert.Greater(t, RoleManager.Rank(), RoleDeveloper.Rank())

	// The four operational roles are rank peers.
	assert.Equal(t, RoleDeveloper.Rank(), RoleSupport.Rank())
	assert.Equal(t, RoleSupport.Rank(), RoleHR.Rank())
	assert.Equal(t, RoleHR.Rank(), RoleFinance.Rank())

	assert.Zero(t, Role("INTERN").Rank())
}

func TestRoleIn(t *testing.T) {
	assert.True(t, RoleHR.In(RoleHR, RoleFinance))
	assert.False(t, RoleHR.In(RoleFinance))
	assert.False(t, RoleHR.In())

	// In is strict membership: no implicit super admin bypass.
	assert.False(t, RoleSuperAdmin.In(RoleHR))
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleCEO.AtLeast(RoleManager))
	assert.True(t, RoleFinance.AtLeast(RoleDeveloper))
	assert.False(t, RoleDeveloper.AtLeast(RoleManager))
	assert.False(t, Role("INTERN").AtLeast(RoleSupport))
}
