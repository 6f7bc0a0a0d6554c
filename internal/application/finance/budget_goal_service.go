package finance

import (
	"context"
	"time"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BudgetGoalService handles group-scoped budget goal management
type BudgetGoalService struct {
	goalRepo finance.BudgetGoalRepository
	logger   *zap.Logger
}

// NewBudgetGoalService creates a new budget goal service
func NewBudgetGoalService(goalRepo finance.BudgetGoalRepository, logger *zap.Logger) *BudgetGoalService {
	return &BudgetGoalService{
		goalRepo: goalRepo,
		logger:   logger,
	}
}

// Create creates a budget goal in the group
func (s *BudgetGoalService) Create(ctx context.Context, groupID uuid.UUID, target decimal.Decimal, start, end time.Time) (*BudgetGoalDTO, error) {
	goal, err := finance.NewBudgetGoal(groupID, target, start, end)
	if err != nil {
		return nil, err
	}
	if err := s.goalRepo.Save(ctx, goal); err != nil {
		return nil, err
	}

	s.logger.Info("Budget goal created",
		zap.String("budget_goal_id", goal.ID.String()),
		zap.String("group_id", groupID.String()))
	return toBudgetGoalDTO(goal), nil
}

// Get returns one budget goal of the group
func (s *BudgetGoalService) Get(ctx context.Context, groupID, goalID uuid.UUID) (*BudgetGoalDTO, error) {
	goal, err := s.findInGroup(ctx, groupID, goalID)
	if err != nil {
		return nil, err
	}
	return toBudgetGoalDTO(goal), nil
}

// List returns all budget goals of the group
func (s *BudgetGoalService) List(ctx context.Context, groupID uuid.UUID) ([]BudgetGoalDTO, error) {
	goals, err := s.goalRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	dtos := make([]BudgetGoalDTO, 0, len(goals))
	for i := range goals {
		dtos = append(dtos, *toBudgetGoalDTO(&goals[i]))
	}
	return dtos, nil
}

// Update changes a budget goal's target and period
func (s *BudgetGoalService) Update(ctx context.Context, groupID, goalID uuid.UUID, target decimal.Decimal, start, end time.Time) (*BudgetGoalDTO, error) {
	goal, err := s.findInGroup(ctx, groupID, goalID)
	if err != nil {
		return nil, err
	}
	if err := goal.Update(target, start, end); err != nil {
		return nil, err
	}
	if err := s.goalRepo.Save(ctx, goal); err != nil {
		return nil, err
	}
	return toBudgetGoalDTO(goal), nil
}

// Delete removes a budget goal
func (s *BudgetGoalService) Delete(ctx context.Context, groupID, goalID uuid.UUID) error {
	goal, err := s.findInGroup(ctx, groupID, goalID)
	if err != nil {
		return err
	}
	return s.goalRepo.Delete(ctx, goal.ID)
}

func (s *BudgetGoalService) findInGroup(ctx context.Context, groupID, goalID uuid.UUID) (*finance.BudgetGoal, error) {
	goal, err := s.goalRepo.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.GroupID != groupID {
		return nil, shared.ErrNotFound
	}
	return goal, nil
}
