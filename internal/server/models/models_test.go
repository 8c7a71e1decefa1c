package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("root")
	require.Error(t, err)
}

func TestHasAnyRole(t *testing.T) {
	assert.True(t, HasAnyRole([]Role{RoleModerator}, []Role{RoleAdmin, RoleModerator}))
	assert.False(t, HasAnyRole([]Role{RoleUser}, []Role{RoleAdmin, RoleModerator}))
	assert.False(t, HasAnyRole(nil, []Role{RoleUser}))
	assert.False(t, HasAnyRole([]Role{RoleUser}, nil))
}

func TestRolesRoundTripRejectsUnknown(t *testing.T) {
	roles, err := RolesFromStrings(RolesToStrings([]Role{RoleUser, RoleAdmin}))
	require.NoError(t, err)
	assert.Equal(t, []Role{RoleUser, RoleAdmin}, roles)

	_, err = RolesFromStrings([]string{"user", "superuser"})
	require.Error(t, err)
}

func TestUserProjectionsHideHash(t *testing.T) {
	now := time.Now()
	u := &User{
		ID: "id-1", Username: "alice", Email: "a@x.io", PasswordHash: "$2a$10$hash",
		Roles: []Role{RoleUser}, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}

	pub := u.Public()
	assert.Equal(t, PublicUser{ID: "id-1", Username: "alice", Email: "a@x.io", Roles: []Role{RoleUser}}, pub)

	pub.Roles[0] = RoleAdmin
	assert.Equal(t, RoleUser, u.Roles[0], "projection must not alias roles")

	view := u.View()
	assert.True(t, view.IsActive)
	assert.Equal(t, now, view.CreatedAt)
}

func TestUserClone(t *testing.T) {
	u := &User{ID: "1", Roles: []Role{RoleUser}}
	c := u.Clone()
	c.Roles[0] = RoleAdmin
	c.Username = "changed"
	assert.Equal(t, RoleUser, u.Roles[0])
	assert.Empty(t, u.Username)
}

func TestUserPatchIsEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.IsEmpty())
	pw := "secret1"
	assert.True(t, UserPatch{Password: &pw}.IsEmpty(), "plaintext alone is not a storage change")
	active := false
	assert.False(t, UserPatch{IsActive: &active}.IsEmpty())
	assert.False(t, UserPatch{Roles: []Role{RoleAdmin}}.IsEmpty())
}
