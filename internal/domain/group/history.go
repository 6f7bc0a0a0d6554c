package group

import (
	"time"

	"github.com/google/uuid"
)

// History note texts. History rendering depends on these exact strings
// staying stable.
const (
	NoteGroupCreated        = "Created group"
	NoteInvitationSent      = "Sent group invitation"
	NoteInvitationCancelled = "Cancelled group invitation"
	NoteInvitationAccepted  = "Accepted group invitation and joined group"
	NoteInvitationRejected  = "Rejected group invitation"
	NoteMemberJoined        = "Joined the group"
	NoteMemberRemoved       = "Removed from the group"
	NoteMemberLeft          = "Left the group"
	NoteRoleChanged         = "Changed member role"
)

// HistoryEntry is one record in a group's append-only membership
// ledger. Entries are immutable once written and are committed in the
// same transaction as the change they describe. User references are
// nullable so the ledger outlives deleted users.
type HistoryEntry struct {
	ID              uuid.UUID
	GroupID         uuid.UUID
	UserID          *uuid.UUID
	ChangedByUserID *uuid.UUID
	RoleBefore      *Role
	RoleAfter       *Role
	ActiveBefore    *bool
	ActiveAfter     *bool
	Note            string
	ChangedAt       time.Time
}

// HistoryChange describes the membership delta a history entry records
type HistoryChange struct {
	RoleBefore   *Role
	RoleAfter    *Role
	ActiveBefore *bool
	ActiveAfter  *bool
}

// NewHistoryEntry creates a ledger entry for a membership change in
// the given group. userID is the member affected, changedBy the actor;
// either may be nil for system-initiated changes.
func NewHistoryEntry(groupID uuid.UUID, userID, changedBy *uuid.UUID, change HistoryChange, note string) *HistoryEntry {
	return &HistoryEntry{
		ID:              uuid.New(),
		GroupID:         groupID,
		UserID:          userID,
		ChangedByUserID: changedBy,
		RoleBefore:      change.RoleBefore,
		RoleAfter:       change.RoleAfter,
		ActiveBefore:    change.ActiveBefore,
		ActiveAfter:     change.ActiveAfter,
		Note:            note,
		ChangedAt:       time.Now().UTC(),
	}
}

// RolePtr is a convenience helper for building HistoryChange values
func RolePtr(r Role) *Role { return &r }

// BoolPtr is a convenience helper for building HistoryChange values
func BoolPtr(b bool) *bool { return &b }
