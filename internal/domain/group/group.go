package group

import (
	"strings"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Group represents a shared-finance group. OwnerID is informational
// and may be nil when the owning user has been deleted from the
// identity provider; the authoritative owner is the membership row
// holding RoleOwner.
type Group struct {
	shared.BaseEntity
	OwnerID    *uuid.UUID
	Name       string
	IsPersonal bool
}

// NewGroup creates a new group owned by ownerID
func NewGroup(ownerID uuid.UUID, name string, isPersonal bool) (*Group, error) {
	if err := validateGroupName(name); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Group owner cannot be empty")
	}

	owner := ownerID
	return &Group{
		BaseEntity: shared.NewBaseEntity(),
		OwnerID:    &owner,
		Name:       strings.TrimSpace(name),
		IsPersonal: isPersonal,
	}, nil
}

// SetName renames the group
func (g *Group) SetName(name string) error {
	if err := validateGroupName(name); err != nil {
		return err
	}
	g.Name = strings.TrimSpace(name)
	g.Touch()
	return nil
}

// ClearOwner detaches the owning user, keeping the group itself intact
func (g *Group) ClearOwner() {
	g.OwnerID = nil
	g.Touch()
}

func validateGroupName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_GROUP_NAME", "Group name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_GROUP_NAME", "Group name cannot exceed 100 characters")
	}
	return nil
}
