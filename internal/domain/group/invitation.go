package group

import (
	"strings"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvitationStatus represents the lifecycle state of an invitation
type InvitationStatus string

const (
	InvitationStatusPending   InvitationStatus = "pending"
	InvitationStatusAccepted  InvitationStatus = "accepted"
	InvitationStatusRejected  InvitationStatus = "rejected"
	InvitationStatusCancelled InvitationStatus = "cancelled"
)

// Valid reports whether s is one of the defined statuses
func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationStatusPending, InvitationStatusAccepted,
		InvitationStatusRejected, InvitationStatusCancelled:
		return true
	}
	return false
}

// Invitation invites a user into a group. Transitions are one-way out
// of pending; a settled invitation never changes again. At most one
// pending invitation may exist per (group, target user), enforced by a
// partial unique index in storage.
type Invitation struct {
	shared.BaseEntity
	GroupID         uuid.UUID
	InvitedByUserID uuid.UUID
	TargetUserID    uuid.UUID
	Note            string
	Status          InvitationStatus
}

// NewInvitation creates a pending invitation
func NewInvitation(groupID, invitedByUserID, targetUserID uuid.UUID, note string) (*Invitation, error) {
	if groupID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVITATION", "Invitation requires a group")
	}
	if invitedByUserID == uuid.Nil || targetUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVITATION", "Invitation requires an inviter and a target user")
	}
	if invitedByUserID == targetUserID {
		return nil, shared.NewDomainError("INVALID_INVITATION", "Cannot invite yourself")
	}
	note = strings.TrimSpace(note)
	if len(note) > 500 {
		return nil, shared.NewDomainError("INVALID_INVITATION", "Invitation note cannot exceed 500 characters")
	}

	return &Invitation{
		BaseEntity:      shared.NewBaseEntity(),
		GroupID:         groupID,
		InvitedByUserID: invitedByUserID,
		TargetUserID:    targetUserID,
		Note:            note,
		Status:          InvitationStatusPending,
	}, nil
}

// IsPending reports whether the invitation can still be settled
func (i *Invitation) IsPending() bool {
	return i.Status == InvitationStatusPending
}

// Accept settles the invitation as accepted
func (i *Invitation) Accept() error {
	return i.settle(InvitationStatusAccepted)
}

// Reject settles the invitation as rejected
func (i *Invitation) Reject() error {
	return i.settle(InvitationStatusRejected)
}

// Cancel settles the invitation as cancelled
func (i *Invitation) Cancel() error {
	return i.settle(InvitationStatusCancelled)
}

func (i *Invitation) settle(next InvitationStatus) error {
	if !i.IsPending() {
		return shared.NewDomainError("INVALID_STATE", "Only pending invitations can be modified")
	}
	i.Status = next
	i.Touch()
	return nil
}
