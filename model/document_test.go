package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanBeAccessedByPublic(t *testing.T) {
	doc := Document{UploadedBy: "owner", AccessLevel: AccessPublic}

	assert.True(t, doc.CanBeAccessedBy("someone", RoleSupport))
}

func TestCanBeAccessedByRoleBased(t *testing.T) {
	doc := Document{
		UploadedBy:   "owner",
		AccessLevel:  AccessRoleBased,
		AllowedRoles: []Role{RoleFinance},
	}

	assert.True(t, doc.CanBeAccessedBy("someone", RoleFinance))
	assert.False(t, doc.CanBeAccessedBy("someone", RoleSupport))
}

func TestCanBeAccessedByPrivate(t *testing.T) {
	doc := Document{
		UploadedBy:   "owner",
		AccessLevel:  AccessPrivate,
		AllowedUsers: []string{"alice"},
	}

	assert.True(t, doc.CanBeAccessedBy("alice", RoleSupport))
	assert.False(t, doc.CanBeAccessedBy("bob", RoleSupport))
}

func TestCanBeAccessedByPrivilegedTiers(t *testing.T) {
	doc := Document{UploadedBy: "owner", AccessLevel: AccessPrivate}

	// Uploader, organization admins and the override role always pass.
	assert.True(t, doc.CanBeAccessedBy("owner", RoleSupport))
	assert.True(t, doc.CanBeAccessedBy("someone", RoleCEO))
	assert.True(t, doc.CanBeAccessedBy("someone", RoleManager))
	assert.True(t, doc.CanBeAccessedBy("someone", RoleSuperAdmin))
}
