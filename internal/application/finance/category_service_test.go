package finance

import (
	"context"
	"testing"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*finance.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Category), args.Error(1)
}

func (m *mockCategoryRepo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]finance.Category, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]finance.Category), args.Error(1)
}

func (m *mockCategoryRepo) Save(ctx context.Context, c *finance.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCategoryServiceCreate(t *testing.T) {
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo, zap.NewNop())
	groupID := uuid.New()

	repo.On("Save", mock.Anything, mock.MatchedBy(func(c *finance.Category) bool {
		return c.GroupID == groupID && c.Name == "Groceries" && c.ColorHex == "#AABBCC"
	})).Return(nil)

	dto, err := svc.Create(context.Background(), groupID, "Groceries", "#aabbcc")
	require.NoError(t, err)
	assert.Equal(t, "#AABBCC", dto.ColorHex)
	repo.AssertExpectations(t)
}

func TestCategoryServiceCreateInvalidColor(t *testing.T) {
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), uuid.New(), "Groceries", "red")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save")
}

func TestCategoryServiceHidesOtherGroups(t *testing.T) {
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo, zap.NewNop())

	other, err := finance.NewCategory(uuid.New(), "Groceries", "#AABBCC")
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, other.ID).Return(other, nil)

	_, err = svc.Get(context.Background(), uuid.New(), other.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCategoryServiceProtectsSystemCategories(t *testing.T) {
	repo := new(mockCategoryRepo)
	svc := NewCategoryService(repo, zap.NewNop())
	groupID := uuid.New()

	system, err := finance.NewSystemCategory(groupID, "Uncategorized", "#808080")
	require.NoError(t, err)
	repo.On("FindByID", mock.Anything, system.ID).Return(system, nil)

	_, err = svc.Update(context.Background(), groupID, system.ID, "Other", "#FFFFFF")
	assert.Error(t, err)

	err = svc.Delete(context.Background(), groupID, system.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	repo.AssertNotCalled(t, "Delete")
}
