package group

import (
	"context"
	"errors"

	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/domain/identity"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Invitation error details. Absence and lack of authorization are
// reported identically on accept, reject and get so that responses
// do not reveal other users' invitations.
var (
	errInvitationNotFound       = shared.NewDomainError("NOT_FOUND", "Invitation not found.")
	errInvitationNotPending     = shared.NewDomainError("BAD_REQUEST", "This action can only be performed on pending invitations.")
	errCannotCancelInvitation   = shared.NewDomainError("FORBIDDEN", "You do not have permission to cancel this invitation.")
	errAlreadyActiveMember      = shared.NewDomainError("CONFLICT", "User is already an active member of this group.")
	errPendingInvitationExists  = shared.NewDomainError("CONFLICT", "A pending invitation already exists for this user.")
	errInvitationNotFoundOrMine = shared.NewDomainError("NOT_FOUND", "Invitation not found or you are not authorized to view it.")
)

// InvitationService drives the invitation lifecycle
type InvitationService struct {
	scope          TransactionScope
	groupRepo      group.GroupRepository
	membershipRepo group.MembershipRepository
	invitationRepo group.InvitationRepository
	userRepo       identity.UserRepository
	logger         *zap.Logger
}

// NewInvitationService creates a new invitation service
func NewInvitationService(
	scope TransactionScope,
	groupRepo group.GroupRepository,
	membershipRepo group.MembershipRepository,
	invitationRepo group.InvitationRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *InvitationService {
	return &InvitationService{
		scope:          scope,
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// CreateInvitationInput contains input for creating an invitation
type CreateInvitationInput struct {
	GroupID          uuid.UUID
	InviterID        uuid.UUID
	TargetIdentifier string // email or username
	Note             string
}

// Create invites a user into a group. The target is resolved by email
// first, then by username. The pending invitation and its ledger entry
// are committed atomically; concurrent duplicates lose against the
// partial unique index and surface as a conflict.
func (s *InvitationService) Create(ctx context.Context, input CreateInvitationInput) (*InvitationDTO, error) {
	g, err := s.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindByIdentifier(ctx, input.TargetIdentifier)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found.")
		}
		return nil, err
	}

	inv, err := group.NewInvitation(g.ID, input.InviterID, target.ID, input.Note)
	if err != nil {
		return nil, err
	}

	membership, err := s.membershipRepo.Find(ctx, g.ID, target.ID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if membership != nil && membership.Active {
		return nil, errAlreadyActiveMember
	}

	if _, err := s.invitationRepo.FindPending(ctx, g.ID, target.ID); err == nil {
		return nil, errPendingInvitationExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	entry := group.NewHistoryEntry(g.ID, &target.ID, &input.InviterID,
		group.HistoryChange{}, group.NoteInvitationSent)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.InvitationRepo().Save(ctx, inv); err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx, entry)
	})
	if err != nil {
		// A concurrent create slipped past the pre-check; the partial
		// unique index reports it as a conflict.
		if errors.Is(err, shared.ErrConflict) || errors.Is(err, shared.ErrAlreadyExists) {
			return nil, errPendingInvitationExists
		}
		return nil, err
	}

	s.logger.Info("Invitation created",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("group_id", g.ID.String()),
		zap.String("target_user_id", target.ID.String()))

	return s.toDTO(ctx, inv)
}

// Cancel settles a pending invitation as cancelled. Only the inviter
// or a group admin/owner may cancel.
func (s *InvitationService) Cancel(ctx context.Context, groupID, invitationID, actingUserID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := repos.InvitationRepo().FindByID(ctx, invitationID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return errInvitationNotFound
			}
			return err
		}
		if inv.GroupID != groupID {
			return errInvitationNotFound
		}
		if !inv.IsPending() {
			return errInvitationNotPending
		}

		if inv.InvitedByUserID != actingUserID {
			m, err := repos.MembershipRepo().Find(ctx, groupID, actingUserID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return errCannotCancelInvitation
				}
				return err
			}
			if !m.Active || !group.Satisfies(m.Role, group.RoleAdmin) {
				return errCannotCancelInvitation
			}
		}

		if err := inv.Cancel(); err != nil {
			return err
		}
		if err := repos.InvitationRepo().Save(ctx, inv); err != nil {
			return err
		}

		entry := group.NewHistoryEntry(groupID, &inv.TargetUserID, &actingUserID,
			group.HistoryChange{}, group.NoteInvitationCancelled)
		return repos.HistoryRepo().Append(ctx, entry)
	})
}

// Accept settles a pending invitation as accepted and joins the target
// to the group with the Member role, creating or reactivating the
// membership row. Everything commits in one transaction.
func (s *InvitationService) Accept(ctx context.Context, invitationID, actingUserID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := s.findOwnInvitation(ctx, repos, invitationID, actingUserID)
		if err != nil {
			return err
		}
		if !inv.IsPending() {
			return errInvitationNotPending
		}

		if err := inv.Accept(); err != nil {
			return err
		}
		if err := repos.InvitationRepo().Save(ctx, inv); err != nil {
			return err
		}

		m, err := repos.MembershipRepo().Find(ctx, inv.GroupID, actingUserID)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			m, err = group.NewMembership(actingUserID, inv.GroupID, group.RoleMember)
			if err != nil {
				return err
			}
		case err != nil:
			return err
		case m.Active:
			return errAlreadyActiveMember
		default:
			if err := m.Reactivate(group.RoleMember); err != nil {
				return err
			}
		}
		if err := repos.MembershipRepo().Save(ctx, m); err != nil {
			return err
		}

		entry := group.NewHistoryEntry(inv.GroupID, &actingUserID, &actingUserID, group.HistoryChange{
			RoleAfter:    group.RolePtr(group.RoleMember),
			ActiveBefore: group.BoolPtr(false),
			ActiveAfter:  group.BoolPtr(true),
		}, group.NoteInvitationAccepted)
		return repos.HistoryRepo().Append(ctx, entry)
	})
}

// Reject settles a pending invitation as rejected. Membership is left
// untouched.
func (s *InvitationService) Reject(ctx context.Context, invitationID, actingUserID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		inv, err := s.findOwnInvitation(ctx, repos, invitationID, actingUserID)
		if err != nil {
			return err
		}
		if !inv.IsPending() {
			return errInvitationNotPending
		}

		if err := inv.Reject(); err != nil {
			return err
		}
		if err := repos.InvitationRepo().Save(ctx, inv); err != nil {
			return err
		}

		entry := group.NewHistoryEntry(inv.GroupID, &actingUserID, &actingUserID,
			group.HistoryChange{}, group.NoteInvitationRejected)
		return repos.HistoryRepo().Append(ctx, entry)
	})
}

// findOwnInvitation loads an invitation addressed to actingUserID.
// Absence and someone else's invitation are indistinguishable to the
// caller.
func (s *InvitationService) findOwnInvitation(ctx context.Context, repos TransactionalRepositories, invitationID, actingUserID uuid.UUID) (*group.Invitation, error) {
	inv, err := repos.InvitationRepo().FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvitationNotFoundOrMine
		}
		return nil, err
	}
	if inv.TargetUserID != actingUserID {
		return nil, errInvitationNotFoundOrMine
	}
	return inv, nil
}

// Get returns a single invitation visible to the acting user, who must
// be its target or its inviter
func (s *InvitationService) Get(ctx context.Context, invitationID, actingUserID uuid.UUID) (*InvitationDTO, error) {
	inv, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvitationNotFoundOrMine
		}
		return nil, err
	}
	if inv.TargetUserID != actingUserID && inv.InvitedByUserID != actingUserID {
		return nil, errInvitationNotFoundOrMine
	}
	return s.toDTO(ctx, inv)
}

// ListPendingForUser returns the user's pending invitations, newest first
func (s *InvitationService) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]InvitationDTO, error) {
	invs, err := s.invitationRepo.ListPendingForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(ctx, invs)
}

// ListForGroup returns a group's invitations, newest first
func (s *InvitationService) ListForGroup(ctx context.Context, groupID uuid.UUID) ([]InvitationDTO, error) {
	if _, err := s.groupRepo.FindByID(ctx, groupID); err != nil {
		return nil, err
	}
	invs, err := s.invitationRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(ctx, invs)
}

func (s *InvitationService) toDTO(ctx context.Context, inv *group.Invitation) (*InvitationDTO, error) {
	dtos, err := s.toDTOs(ctx, []group.Invitation{*inv})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

func (s *InvitationService) toDTOs(ctx context.Context, invs []group.Invitation) ([]InvitationDTO, error) {
	userIDs := make([]uuid.UUID, 0, len(invs)*2)
	for _, inv := range invs {
		userIDs = append(userIDs, inv.InvitedByUserID, inv.TargetUserID)
	}
	names, err := newUsernameResolver(ctx, s.userRepo, userIDs)
	if err != nil {
		return nil, err
	}

	groupNames := make(map[uuid.UUID]string)
	dtos := make([]InvitationDTO, 0, len(invs))
	for _, inv := range invs {
		groupName, ok := groupNames[inv.GroupID]
		if !ok {
			g, err := s.groupRepo.FindByID(ctx, inv.GroupID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			if g != nil {
				groupName = g.Name
			}
			groupNames[inv.GroupID] = groupName
		}

		inviterID := inv.InvitedByUserID
		targetID := inv.TargetUserID
		dtos = append(dtos, InvitationDTO{
			ID:              inv.ID,
			GroupID:         inv.GroupID,
			GroupName:       groupName,
			InvitedByUserID: inviterID,
			InvitedByName:   names.resolve(&inviterID, identity.UnknownUserName),
			TargetUserID:    targetID,
			TargetName:      names.resolve(&targetID, identity.UnknownUserName),
			Note:            inv.Note,
			Status:          string(inv.Status),
			CreatedAt:       inv.CreatedAt,
		})
	}
	return dtos, nil
}
