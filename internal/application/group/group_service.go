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

// GroupService handles group and membership operations
type GroupService struct {
	scope          TransactionScope
	groupRepo      group.GroupRepository
	membershipRepo group.MembershipRepository
	historyRepo    group.HistoryRepository
	userRepo       identity.UserRepository
	logger         *zap.Logger
}

// NewGroupService creates a new group service
func NewGroupService(
	scope TransactionScope,
	groupRepo group.GroupRepository,
	membershipRepo group.MembershipRepository,
	historyRepo group.HistoryRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *GroupService {
	return &GroupService{
		scope:          scope,
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		historyRepo:    historyRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// CreateGroup creates a group together with the creator's Owner
// membership and the opening ledger entry, all in one transaction
func (s *GroupService) CreateGroup(ctx context.Context, ownerID uuid.UUID, name string, isPersonal bool) (*GroupDTO, error) {
	g, err := group.NewGroup(ownerID, name, isPersonal)
	if err != nil {
		return nil, err
	}

	membership, err := group.NewMembership(ownerID, g.ID, group.RoleOwner)
	if err != nil {
		return nil, err
	}

	entry := group.NewHistoryEntry(g.ID, &ownerID, &ownerID, group.HistoryChange{
		RoleAfter:   group.RolePtr(group.RoleOwner),
		ActiveAfter: group.BoolPtr(true),
	}, group.NoteGroupCreated)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.GroupRepo().Save(ctx, g); err != nil {
			return err
		}
		if err := repos.MembershipRepo().Save(ctx, membership); err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Group created",
		zap.String("group_id", g.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.Bool("is_personal", isPersonal))

	return toGroupDTO(g), nil
}

// GetGroup returns a single group
func (s *GroupService) GetGroup(ctx context.Context, groupID uuid.UUID) (*GroupDTO, error) {
	g, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return toGroupDTO(g), nil
}

// ListUserGroups returns the groups where the user is an active member
func (s *GroupService) ListUserGroups(ctx context.Context, userID uuid.UUID) ([]GroupDTO, error) {
	groups, err := s.groupRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]GroupDTO, 0, len(groups))
	for i := range groups {
		dtos = append(dtos, *toGroupDTO(&groups[i]))
	}
	return dtos, nil
}

// IsActiveMember reports whether the user is an active member of the group
func (s *GroupService) IsActiveMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	m, err := s.membershipRepo.Find(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Active, nil
}

// RoleOf returns the user's role in the group. The second return value
// is false when the user holds no active membership, which is distinct
// from holding any particular role.
func (s *GroupService) RoleOf(ctx context.Context, groupID, userID uuid.UUID) (group.Role, bool, error) {
	m, err := s.membershipRepo.Find(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if !m.Active {
		return 0, false, nil
	}
	return m.Role, true, nil
}

// ListMembers returns the group's active members ordered by join time
func (s *GroupService) ListMembers(ctx context.Context, groupID uuid.UUID) ([]MemberDTO, error) {
	if _, err := s.groupRepo.FindByID(ctx, groupID); err != nil {
		return nil, err
	}

	members, err := s.membershipRepo.ListActiveByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]identity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	dtos := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		dto := MemberDTO{
			UserID:   m.UserID,
			Username: identity.UnknownUserName,
			Role:     m.Role.String(),
			Active:   m.Active,
			JoinedAt: m.JoinedAt,
		}
		if u, ok := byID[m.UserID]; ok {
			dto.Username = u.Username
			dto.Email = u.Email
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// ListHistory returns the group's membership ledger, newest first
func (s *GroupService) ListHistory(ctx context.Context, groupID uuid.UUID) ([]HistoryEntryDTO, error) {
	if _, err := s.groupRepo.FindByID(ctx, groupID); err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(entries)*2)
	for _, e := range entries {
		if e.UserID != nil {
			ids = append(ids, *e.UserID)
		}
		if e.ChangedByUserID != nil {
			ids = append(ids, *e.ChangedByUserID)
		}
	}
	names, err := newUsernameResolver(ctx, s.userRepo, ids)
	if err != nil {
		return nil, err
	}

	dtos := make([]HistoryEntryDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, toHistoryEntryDTO(&entries[i], names))
	}
	return dtos, nil
}

// ChangeMemberRole changes a member's role and records the change.
// The Owner role cannot be granted or taken this way.
func (s *GroupService) ChangeMemberRole(ctx context.Context, groupID, targetUserID, actingUserID uuid.UUID, newRole group.Role) error {
	if newRole == group.RoleOwner {
		return shared.NewDomainError("BAD_REQUEST", "Ownership cannot be transferred through role changes")
	}
	if !newRole.Valid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown group role")
	}

	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		m, err := repos.MembershipRepo().Find(ctx, groupID, targetUserID)
		if err != nil {
			return err
		}
		if !m.Active {
			return shared.ErrNotFound
		}
		if m.Role == group.RoleOwner {
			return shared.NewDomainError("FORBIDDEN", "The group owner's role cannot be changed")
		}
		if m.Role == newRole {
			return shared.NewDomainError("INVALID_STATE", "Member already holds this role")
		}

		roleBefore := m.Role
		if err := m.SetRole(newRole); err != nil {
			return err
		}
		if err := repos.MembershipRepo().Save(ctx, m); err != nil {
			return err
		}

		entry := group.NewHistoryEntry(groupID, &targetUserID, &actingUserID, group.HistoryChange{
			RoleBefore: group.RolePtr(roleBefore),
			RoleAfter:  group.RolePtr(newRole),
		}, group.NoteRoleChanged)
		return repos.HistoryRepo().Append(ctx, entry)
	})
}

// RemoveMember deactivates a member's membership and records the change
func (s *GroupService) RemoveMember(ctx context.Context, groupID, targetUserID, actingUserID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		m, err := repos.MembershipRepo().Find(ctx, groupID, targetUserID)
		if err != nil {
			return err
		}
		if !m.Active {
			return shared.ErrNotFound
		}
		if m.Role == group.RoleOwner {
			return shared.NewDomainError("FORBIDDEN", "The group owner cannot be removed")
		}

		roleBefore := m.Role
		if err := m.Deactivate(); err != nil {
			return err
		}
		if err := repos.MembershipRepo().Save(ctx, m); err != nil {
			return err
		}

		entry := group.NewHistoryEntry(groupID, &targetUserID, &actingUserID, group.HistoryChange{
			RoleBefore:   group.RolePtr(roleBefore),
			RoleAfter:    group.RolePtr(roleBefore),
			ActiveBefore: group.BoolPtr(true),
			ActiveAfter:  group.BoolPtr(false),
		}, group.NoteMemberRemoved)
		return repos.HistoryRepo().Append(ctx, entry)
	})
}

// LeaveGroup deactivates the caller's own membership and records the
// change. The owner cannot leave their own group.
func (s *GroupService) LeaveGroup(ctx context.Context, groupID, userID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		m, err := repos.MembershipRepo().Find(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if !m.Active {
			return shared.ErrNotFound
		}
		if m.Role == group.RoleOwner {
			return shared.NewDomainError("FORBIDDEN", "The group owner cannot leave the group")
		}

		roleBefore := m.Role
		if err := m.Deactivate(); err != nil {
			return err
		}
		if err := repos.MembershipRepo().Save(ctx, m); err != nil {
			return err
		}

		entry := group.NewHistoryEntry(groupID, &userID, &userID, group.HistoryChange{
			RoleBefore:   group.RolePtr(roleBefore),
			RoleAfter:    group.RolePtr(roleBefore),
			ActiveBefore: group.BoolPtr(true),
			ActiveAfter:  group.BoolPtr(false),
		}, group.NoteMemberLeft)
		return repos.HistoryRepo().Append(ctx, entry)
	})
}
