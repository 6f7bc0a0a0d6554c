package group

import (
	"context"

	"github.com/google/uuid"
)

// GroupRepository provides access to groups
type GroupRepository interface {
	// FindByID returns the group or shared.ErrNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Group, error)

	// FindByUser returns all groups where the user is an active member
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Group, error)

	// Save creates or updates a group
	Save(ctx context.Context, g *Group) error

	// Delete removes a group and its dependent rows
	Delete(ctx context.Context, id uuid.UUID) error
}

// MembershipRepository provides access to membership rows.
// The (UserID, GroupID) pair is the identity of a membership.
type MembershipRepository interface {
	// Find returns the membership row, active or not, or shared.ErrNotFound
	Find(ctx context.Context, groupID, userID uuid.UUID) (*Membership, error)

	// ListByGroup returns all memberships of a group ordered by join time
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Membership, error)

	// ListActiveByGroup returns the active memberships ordered by join time
	ListActiveByGroup(ctx context.Context, groupID uuid.UUID) ([]Membership, error)

	// Save creates or updates a membership row
	Save(ctx context.Context, m *Membership) error
}

// InvitationRepository provides access to invitations
type InvitationRepository interface {
	// FindByID returns the invitation or shared.ErrNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Invitation, error)

	// FindPending returns the pending invitation for the pair, or shared.ErrNotFound
	FindPending(ctx context.Context, groupID, targetUserID uuid.UUID) (*Invitation, error)

	// ListByGroup returns a group's invitations, newest first
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Invitation, error)

	// ListPendingForUser returns a user's pending invitations, newest first
	ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]Invitation, error)

	// Save creates or updates an invitation. Creating a second pending
	// invitation for the same (group, target) pair fails with
	// shared.ErrConflict, backed by a partial unique index.
	Save(ctx context.Context, i *Invitation) error
}

// HistoryRepository provides access to the append-only membership ledger
type HistoryRepository interface {
	// Append writes a new ledger entry. Entries are never updated or deleted.
	Append(ctx context.Context, e *HistoryEntry) error

	// ListByGroup returns a group's ledger, newest first
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]HistoryEntry, error)
}
