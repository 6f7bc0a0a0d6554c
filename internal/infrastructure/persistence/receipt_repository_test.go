package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/financetracking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFinanceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.CategoryModel{},
		&models.SellerModel{},
		&models.BudgetGoalModel{},
		&models.ProductDataModel{},
		&models.ProductCategoryModel{},
		&models.ReceiptModel{},
		&models.ReceiptItemModel{},
	)
	require.NoError(t, err)

	return db
}

func TestReceiptRepositorySaveLoadsItems(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormReceiptRepository(db)
	ctx := context.Background()

	groupID := uuid.New()
	r, err := finance.NewReceipt(groupID, uuid.New(), nil, time.Now().UTC(), []finance.ReceiptItem{
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromFloat(1.50), Quantity: 2},
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromFloat(2.25), Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, r))

	found, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.True(t, found.Total().Equal(decimal.NewFromFloat(5.25)))
}

func TestReceiptRepositorySaveReplacesItems(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormReceiptRepository(db)
	ctx := context.Background()

	r, err := finance.NewReceipt(uuid.New(), uuid.New(), nil, time.Now().UTC(), []finance.ReceiptItem{
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(1), Quantity: 1},
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(2), Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, r))

	eggs := uuid.New()
	require.NoError(t, r.ReplaceItems([]finance.ReceiptItem{
		{ProductID: eggs, UnitPrice: decimal.NewFromInt(3), Quantity: 2},
	}))
	require.NoError(t, repo.Save(ctx, r))

	found, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, eggs, found.Items[0].ProductID)

	// No orphaned rows left behind
	var count int64
	require.NoError(t, db.Model(&models.ReceiptItemModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReceiptRepositoryListByGroupNewestFirst(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormReceiptRepository(db)
	ctx := context.Background()

	groupID := uuid.New()
	now := time.Now().UTC()

	older, err := finance.NewReceipt(groupID, uuid.New(), nil, now.Add(-time.Hour), []finance.ReceiptItem{
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(1), Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, older))

	newer, err := finance.NewReceipt(groupID, uuid.New(), nil, now, []finance.ReceiptItem{
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(1), Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, newer))

	receipts, err := repo.ListByGroup(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, receipts, 2)
	assert.Equal(t, newer.ID, receipts[0].ID)
}

func TestReceiptRepositoryDeleteRemovesItems(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormReceiptRepository(db)
	ctx := context.Background()

	r, err := finance.NewReceipt(uuid.New(), uuid.New(), nil, time.Now().UTC(), []finance.ReceiptItem{
		{ProductID: uuid.New(), UnitPrice: decimal.NewFromInt(1), Quantity: 1},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, r))

	require.NoError(t, repo.Delete(ctx, r.ID))

	_, err = repo.FindByID(ctx, r.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.ReceiptItemModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCategoryRepositoryRoundTrip(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	groupID := uuid.New()
	c, err := finance.NewSystemCategory(groupID, "Uncategorized", "#808080")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, found.IsSystem)
	assert.Equal(t, "#808080", found.ColorHex)

	list, err := repo.ListByGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSellerRepositoryDeleteNotFound(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormSellerRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestBudgetGoalRepositoryRoundTrip(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormBudgetGoalRepository(db)
	ctx := context.Background()

	groupID := uuid.New()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	goal, err := finance.NewBudgetGoal(groupID, decimal.NewFromInt(500), start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, goal))

	found, err := repo.FindByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.True(t, found.TargetAmount.Equal(decimal.NewFromInt(500)))

	goals, err := repo.ListByGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}
