package group

import (
	"time"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Membership ties a user to a group with a role. There is at most one
// membership per (user, group) pair for the lifetime of both: leaving
// deactivates the row and rejoining reactivates it, so JoinedAt always
// records the first join.
type Membership struct {
	UserID    uuid.UUID
	GroupID   uuid.UUID
	Role      Role
	Active    bool
	JoinedAt  time.Time
	UpdatedAt time.Time
}

// NewMembership creates an active membership with the given role
func NewMembership(userID, groupID uuid.UUID, role Role) (*Membership, error) {
	if userID == uuid.Nil || groupID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MEMBERSHIP", "Membership requires both a user and a group")
	}
	if !role.Valid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown group role")
	}

	now := time.Now().UTC()
	return &Membership{
		UserID:    userID,
		GroupID:   groupID,
		Role:      role,
		Active:    true,
		JoinedAt:  now,
		UpdatedAt: now,
	}, nil
}

// Deactivate marks the membership inactive
func (m *Membership) Deactivate() error {
	if !m.Active {
		return shared.NewDomainError("INVALID_STATE", "Membership is already inactive")
	}
	m.Active = false
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// Reactivate restores an inactive membership with the given role
func (m *Membership) Reactivate(role Role) error {
	if m.Active {
		return shared.NewDomainError("INVALID_STATE", "Membership is already active")
	}
	if !role.Valid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown group role")
	}
	m.Active = true
	m.Role = role
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// SetRole changes the member's role
func (m *Membership) SetRole(role Role) error {
	if !role.Valid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown group role")
	}
	m.Role = role
	m.UpdatedAt = time.Now().UTC()
	return nil
}
