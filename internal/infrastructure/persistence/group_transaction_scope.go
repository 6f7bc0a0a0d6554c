package persistence

import (
	"context"

	appgroup "github.com/financetracking/backend/internal/application/group"
	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM
// transactions. A transaction that loses a serialization or deadlock
// race is retried once; everything else surfaces to the caller.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appgroup.TransactionalRepositories) error) error {
	err := s.run(ctx, fn)
	if err != nil && isSerializationFailure(err) {
		return s.run(ctx, fn)
	}
	return err
}

func (s *GormTransactionScope) run(ctx context.Context, fn func(repos appgroup.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// GroupRepo returns the group repository scoped to the current transaction.
func (r *gormTransactionalRepositories) GroupRepo() group.GroupRepository {
	return NewGormGroupRepository(r.tx)
}

// MembershipRepo returns the membership repository scoped to the current transaction.
func (r *gormTransactionalRepositories) MembershipRepo() group.MembershipRepository {
	return NewGormMembershipRepository(r.tx)
}

// InvitationRepo returns the invitation repository scoped to the current transaction.
func (r *gormTransactionalRepositories) InvitationRepo() group.InvitationRepository {
	return NewGormInvitationRepository(r.tx)
}

// HistoryRepo returns the history ledger repository scoped to the current transaction.
func (r *gormTransactionalRepositories) HistoryRepo() group.HistoryRepository {
	return NewGormHistoryRepository(r.tx)
}

// UserRepo returns the user projection repository scoped to the current transaction.
func (r *gormTransactionalRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appgroup.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appgroup.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
