package group

import (
	"context"
	"time"

	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// GroupDTO represents group data returned to callers
type GroupDTO struct {
	ID         uuid.UUID  `json:"id"`
	OwnerID    *uuid.UUID `json:"owner_id,omitempty"`
	Name       string     `json:"name"`
	IsPersonal bool       `json:"is_personal"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// MemberDTO represents one group member with the mirrored identity data
type MemberDTO struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	Role     string    `json:"role"`
	Active   bool      `json:"active"`
	JoinedAt time.Time `json:"joined_at"`
}

// InvitationDTO represents an invitation with resolved names
type InvitationDTO struct {
	ID              uuid.UUID `json:"id"`
	GroupID         uuid.UUID `json:"group_id"`
	GroupName       string    `json:"group_name"`
	InvitedByUserID uuid.UUID `json:"invited_by_user_id"`
	InvitedByName   string    `json:"invited_by_name"`
	TargetUserID    uuid.UUID `json:"target_user_id"`
	TargetName      string    `json:"target_name"`
	Note            string    `json:"note,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// HistoryEntryDTO represents one ledger entry with resolved names.
// Usernames fall back to "Unknown" for deleted members and "System"
// for system-initiated changes.
type HistoryEntryDTO struct {
	ID            uuid.UUID `json:"id"`
	GroupID       uuid.UUID `json:"group_id"`
	Username      string    `json:"username"`
	ChangedByName string    `json:"changed_by_name"`
	RoleBefore    *string   `json:"role_before,omitempty"`
	RoleAfter     *string   `json:"role_after,omitempty"`
	ActiveBefore  *bool     `json:"active_before,omitempty"`
	ActiveAfter   *bool     `json:"active_after,omitempty"`
	Note          string    `json:"note"`
	ChangedAt     time.Time `json:"changed_at"`
}

func toGroupDTO(g *group.Group) *GroupDTO {
	return &GroupDTO{
		ID:         g.ID,
		OwnerID:    g.OwnerID,
		Name:       g.Name,
		IsPersonal: g.IsPersonal,
		CreatedAt:  g.CreatedAt,
		UpdatedAt:  g.UpdatedAt,
	}
}

func toHistoryEntryDTO(e *group.HistoryEntry, names usernameResolver) HistoryEntryDTO {
	dto := HistoryEntryDTO{
		ID:            e.ID,
		GroupID:       e.GroupID,
		Username:      names.resolve(e.UserID, identity.UnknownUserName),
		ChangedByName: names.resolve(e.ChangedByUserID, identity.SystemUserName),
		ActiveBefore:  e.ActiveBefore,
		ActiveAfter:   e.ActiveAfter,
		Note:          e.Note,
		ChangedAt:     e.ChangedAt,
	}
	if e.RoleBefore != nil {
		s := e.RoleBefore.String()
		dto.RoleBefore = &s
	}
	if e.RoleAfter != nil {
		s := e.RoleAfter.String()
		dto.RoleAfter = &s
	}
	return dto
}

// usernameResolver caches username lookups for DTO conversion
type usernameResolver map[uuid.UUID]string

func newUsernameResolver(ctx context.Context, userRepo identity.UserRepository, ids []uuid.UUID) (usernameResolver, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if id != uuid.Nil && !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	users, err := userRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}

	r := make(usernameResolver, len(users))
	for _, u := range users {
		r[u.ID] = u.Username
	}
	return r, nil
}

// resolve returns the username for id, or fallback when the id is nil
// or the user no longer exists
func (r usernameResolver) resolve(id *uuid.UUID, fallback string) string {
	if id == nil {
		return fallback
	}
	if name, ok := r[*id]; ok {
		return name
	}
	return fallback
}
