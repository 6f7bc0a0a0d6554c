package persistence

import (
	"context"
	"errors"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/financetracking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBudgetGoalRepository implements BudgetGoalRepository using GORM
type GormBudgetGoalRepository struct {
	db *gorm.DB
}

// NewGormBudgetGoalRepository creates a new GormBudgetGoalRepository
func NewGormBudgetGoalRepository(db *gorm.DB) *GormBudgetGoalRepository {
	return &GormBudgetGoalRepository{db: db}
}

// FindByID finds a budget goal by its ID
func (r *GormBudgetGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BudgetGoal, error) {
	var model models.BudgetGoalModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByGroup returns a group's budget goals, newest period first
func (r *GormBudgetGoalRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]finance.BudgetGoal, error) {
	var goalModels []models.BudgetGoalModel
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("start_date DESC").
		Find(&goalModels).Error
	if err != nil {
		return nil, err
	}

	goals := make([]finance.BudgetGoal, len(goalModels))
	for i, model := range goalModels {
		goals[i] = *model.ToDomain()
	}
	return goals, nil
}

// Save creates or updates a budget goal
func (r *GormBudgetGoalRepository) Save(ctx context.Context, b *finance.BudgetGoal) error {
	model := &models.BudgetGoalModel{}
	model.FromDomain(b)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a budget goal
func (r *GormBudgetGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BudgetGoalModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ finance.BudgetGoalRepository = (*GormBudgetGoalRepository)(nil)
