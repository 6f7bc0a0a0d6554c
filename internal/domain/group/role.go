package group

import (
	"strings"

	"github.com/financetracking/backend/internal/domain/shared"
)

// Role represents a member's role within a group.
// Roles form a total order: a lower ordinal means higher privilege.
// All privilege comparisons go through Satisfies; nothing else may
// compare role ordinals directly.
type Role int

const (
	RoleOwner  Role = 1
	RoleAdmin  Role = 2
	RoleMember Role = 3
)

// Satisfies reports whether a member holding actual meets a requirement
// of at least required. Reflexive: every role satisfies itself.
func Satisfies(actual, required Role) bool {
	return actual <= required
}

// Valid reports whether r is one of the defined roles
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// String returns the canonical lowercase name of the role
func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleAdmin:
		return "admin"
	case RoleMember:
		return "member"
	}
	return "unknown"
}

// ParseRole parses a role name (case-insensitive)
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "owner":
		return RoleOwner, nil
	case "admin":
		return RoleAdmin, nil
	case "member":
		return RoleMember, nil
	}
	return 0, shared.NewDomainError("INVALID_ROLE", "Unknown group role")
}
