package group

import (
	"context"

	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGroupRepository is a mock implementation of group.GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*group.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.Group), args.Error(1)
}

func (m *MockGroupRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]group.Group, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]group.Group), args.Error(1)
}

func (m *MockGroupRepository) Save(ctx context.Context, g *group.Group) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMembershipRepository is a mock implementation of group.MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Find(ctx context.Context, groupID, userID uuid.UUID) (*group.Membership, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]group.Membership, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]group.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListActiveByGroup(ctx context.Context, groupID uuid.UUID) ([]group.Membership, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]group.Membership), args.Error(1)
}

func (m *MockMembershipRepository) Save(ctx context.Context, membership *group.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

// MockInvitationRepository is a mock implementation of group.InvitationRepository
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*group.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) FindPending(ctx context.Context, groupID, targetUserID uuid.UUID) (*group.Invitation, error) {
	args := m.Called(ctx, groupID, targetUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]group.Invitation, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]group.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]group.Invitation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]group.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) Save(ctx context.Context, inv *group.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

// MockHistoryRepository is a mock implementation of group.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Append(ctx context.Context, e *group.HistoryEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]group.HistoryEntry, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]group.HistoryEntry), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*identity.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// testMocks bundles the repositories behind a NoOpTransactionScope
type testMocks struct {
	groupRepo      *MockGroupRepository
	membershipRepo *MockMembershipRepository
	invitationRepo *MockInvitationRepository
	historyRepo    *MockHistoryRepository
	userRepo       *MockUserRepository
	scope          *NoOpTransactionScope
}

func newTestMocks() *testMocks {
	m := &testMocks{
		groupRepo:      new(MockGroupRepository),
		membershipRepo: new(MockMembershipRepository),
		invitationRepo: new(MockInvitationRepository),
		historyRepo:    new(MockHistoryRepository),
		userRepo:       new(MockUserRepository),
	}
	m.scope = NewNoOpTransactionScope(m.groupRepo, m.membershipRepo, m.invitationRepo, m.historyRepo, m.userRepo)
	return m
}
