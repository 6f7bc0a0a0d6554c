package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name     string
		actual   Role
		required Role
		want     bool
	}{
		{"owner satisfies owner", RoleOwner, RoleOwner, true},
		{"owner satisfies admin", RoleOwner, RoleAdmin, true},
		{"owner satisfies member", RoleOwner, RoleMember, true},
		{"admin does not satisfy owner", RoleAdmin, RoleOwner, false},
		{"admin satisfies admin", RoleAdmin, RoleAdmin, true},
		{"admin satisfies member", RoleAdmin, RoleMember, true},
		{"member does not satisfy owner", RoleMember, RoleOwner, false},
		{"member does not satisfy admin", RoleMember, RoleAdmin, false},
		{"member satisfies member", RoleMember, RoleMember, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Satisfies(tt.actual, tt.required))
		})
	}
}

func TestSatisfiesReflexive(t *testing.T) {
	for _, r := range []Role{RoleOwner, RoleAdmin, RoleMember} {
		assert.True(t, Satisfies(r, r), "role %s should satisfy itself", r)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleOwner.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleMember.Valid())
	assert.False(t, Role(0).Valid())
	assert.False(t, Role(4).Valid())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"owner", RoleOwner, false},
		{"Admin", RoleAdmin, false},
		{"  member ", RoleMember, false},
		{"MEMBER", RoleMember, false},
		{"superuser", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "owner", RoleOwner.String())
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "member", RoleMember.String())
	assert.Equal(t, "unknown", Role(99).String())
}
