package group

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMembership(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	m, err := NewMembership(userID, groupID, RoleMember)
	require.NoError(t, err)

	assert.Equal(t, userID, m.UserID)
	assert.Equal(t, groupID, m.GroupID)
	assert.Equal(t, RoleMember, m.Role)
	assert.True(t, m.Active)
	assert.False(t, m.JoinedAt.IsZero())
}

func TestNewMembershipValidation(t *testing.T) {
	_, err := NewMembership(uuid.Nil, uuid.New(), RoleMember)
	assert.Error(t, err)

	_, err = NewMembership(uuid.New(), uuid.Nil, RoleMember)
	assert.Error(t, err)

	_, err = NewMembership(uuid.New(), uuid.New(), Role(0))
	assert.Error(t, err)
}

func TestMembershipDeactivateReactivate(t *testing.T) {
	m, err := NewMembership(uuid.New(), uuid.New(), RoleAdmin)
	require.NoError(t, err)
	joinedAt := m.JoinedAt

	require.NoError(t, m.Deactivate())
	assert.False(t, m.Active)

	// Deactivating twice is invalid
	assert.Error(t, m.Deactivate())

	require.NoError(t, m.Reactivate(RoleMember))
	assert.True(t, m.Active)
	assert.Equal(t, RoleMember, m.Role)

	// Rejoining keeps the original join time
	assert.Equal(t, joinedAt, m.JoinedAt)

	// Reactivating an active membership is invalid
	assert.Error(t, m.Reactivate(RoleMember))
}

func TestMembershipSetRole(t *testing.T) {
	m, err := NewMembership(uuid.New(), uuid.New(), RoleMember)
	require.NoError(t, err)

	require.NoError(t, m.SetRole(RoleAdmin))
	assert.Equal(t, RoleAdmin, m.Role)

	assert.Error(t, m.SetRole(Role(42)))
}

func TestGroupCreationAndRename(t *testing.T) {
	owner := uuid.New()

	g, err := NewGroup(owner, "  Household  ", false)
	require.NoError(t, err)
	require.NotNil(t, g.OwnerID)
	assert.Equal(t, owner, *g.OwnerID)
	assert.Equal(t, "Household", g.Name)
	assert.False(t, g.IsPersonal)

	require.NoError(t, g.SetName("Flat share"))
	assert.Equal(t, "Flat share", g.Name)

	assert.Error(t, g.SetName(""))

	g.ClearOwner()
	assert.Nil(t, g.OwnerID)
}

func TestNewGroupValidation(t *testing.T) {
	_, err := NewGroup(uuid.Nil, "Household", false)
	assert.Error(t, err)

	_, err = NewGroup(uuid.New(), "", false)
	assert.Error(t, err)
}
