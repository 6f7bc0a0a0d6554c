package identity

import (
	"context"
	"errors"

	appgroup "github.com/financetracking/backend/internal/application/group"
	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/domain/identity"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PersonalGroupName is the name given to the group provisioned for
// every new user
const PersonalGroupName = "Personal"

// ProvisioningService reacts to identity-provider notifications. It
// mirrors users locally and bootstraps their personal group. Handlers
// are safe under redelivery: provisioning an existing user or deleting
// an absent one is a no-op.
type ProvisioningService struct {
	scope    appgroup.TransactionScope
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewProvisioningService creates a new provisioning service
func NewProvisioningService(
	scope appgroup.TransactionScope,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *ProvisioningService {
	return &ProvisioningService{
		scope:    scope,
		userRepo: userRepo,
		logger:   logger,
	}
}

// HandleUserCreated mirrors the new user and creates their personal
// group, its Owner membership and the opening ledger entry in one
// transaction
func (s *ProvisioningService) HandleUserCreated(ctx context.Context, userID uuid.UUID, username, email string) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err == nil {
		s.logger.Debug("User already provisioned, skipping",
			zap.String("user_id", userID.String()))
		return nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	user, err := identity.NewUser(userID, username, email)
	if err != nil {
		return err
	}

	personal, err := group.NewGroup(userID, PersonalGroupName, true)
	if err != nil {
		return err
	}
	membership, err := group.NewMembership(userID, personal.ID, group.RoleOwner)
	if err != nil {
		return err
	}
	entry := group.NewHistoryEntry(personal.ID, &userID, &userID, group.HistoryChange{
		RoleAfter:   group.RolePtr(group.RoleOwner),
		ActiveAfter: group.BoolPtr(true),
	}, group.NoteGroupCreated)

	err = s.scope.Execute(ctx, func(repos appgroup.TransactionalRepositories) error {
		if err := repos.UserRepo().Save(ctx, user); err != nil {
			return err
		}
		if err := repos.GroupRepo().Save(ctx, personal); err != nil {
			return err
		}
		if err := repos.MembershipRepo().Save(ctx, membership); err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx, entry)
	})
	if err != nil {
		// A redelivered notification raced us past the pre-check
		if errors.Is(err, shared.ErrAlreadyExists) || errors.Is(err, shared.ErrConflict) {
			s.logger.Debug("User provisioned concurrently, skipping",
				zap.String("user_id", userID.String()))
			return nil
		}
		return err
	}

	s.logger.Info("User provisioned",
		zap.String("user_id", userID.String()),
		zap.String("username", username),
		zap.String("personal_group_id", personal.ID.String()))
	return nil
}

// HandleUserDeleted removes the local user projection. Dependent rows
// are resolved by the schema: memberships and history references are
// detached, groups owned by the user lose their owner reference.
func (s *ProvisioningService) HandleUserDeleted(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	s.logger.Info("User projection deleted",
		zap.String("user_id", userID.String()))
	return nil
}
