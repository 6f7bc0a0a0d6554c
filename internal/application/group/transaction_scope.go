package group

import (
	"context"

	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/domain/identity"
)

// TransactionScope provides transactional access to the repositories a
// membership mutation touches. Every state change and the history
// entry recording it are written through the same scope so they commit
// or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all membership-related
// repositories within a transaction. All repositories returned share
// the same underlying database transaction.
type TransactionalRepositories interface {
	// GroupRepo returns the group repository scoped to the current transaction
	GroupRepo() group.GroupRepository
	// MembershipRepo returns the membership repository scoped to the current transaction
	MembershipRepo() group.MembershipRepository
	// InvitationRepo returns the invitation repository scoped to the current transaction
	InvitationRepo() group.InvitationRepository
	// HistoryRepo returns the history ledger repository scoped to the current transaction
	HistoryRepo() group.HistoryRepository
	// UserRepo returns the user projection repository scoped to the current transaction
	UserRepo() identity.UserRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing with mock repositories.
type NoOpTransactionScope struct {
	groupRepo      group.GroupRepository
	membershipRepo group.MembershipRepository
	invitationRepo group.InvitationRepository
	historyRepo    group.HistoryRepository
	userRepo       identity.UserRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	groupRepo group.GroupRepository,
	membershipRepo group.MembershipRepository,
	invitationRepo group.InvitationRepository,
	historyRepo group.HistoryRepository,
	userRepo identity.UserRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
		invitationRepo: invitationRepo,
		historyRepo:    historyRepo,
		userRepo:       userRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// GroupRepo returns the group repository.
func (s *NoOpTransactionScope) GroupRepo() group.GroupRepository {
	return s.groupRepo
}

// MembershipRepo returns the membership repository.
func (s *NoOpTransactionScope) MembershipRepo() group.MembershipRepository {
	return s.membershipRepo
}

// InvitationRepo returns the invitation repository.
func (s *NoOpTransactionScope) InvitationRepo() group.InvitationRepository {
	return s.invitationRepo
}

// HistoryRepo returns the history ledger repository.
func (s *NoOpTransactionScope) HistoryRepo() group.HistoryRepository {
	return s.historyRepo
}

// UserRepo returns the user projection repository.
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository {
	return s.userRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
