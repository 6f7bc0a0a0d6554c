package finance

import (
	"time"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetGoal is a spending target for a group over a date range
type BudgetGoal struct {
	shared.BaseEntity
	GroupID      uuid.UUID
	TargetAmount decimal.Decimal
	StartDate    time.Time
	EndDate      time.Time
}

// NewBudgetGoal creates a new budget goal
func NewBudgetGoal(groupID uuid.UUID, target decimal.Decimal, start, end time.Time) (*BudgetGoal, error) {
	if groupID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUDGET_GOAL", "Budget goal requires a group")
	}
	if err := validateBudgetGoal(target, start, end); err != nil {
		return nil, err
	}

	return &BudgetGoal{
		BaseEntity:   shared.NewBaseEntity(),
		GroupID:      groupID,
		TargetAmount: target,
		StartDate:    start,
		EndDate:      end,
	}, nil
}

// Update changes the goal's target and date range
func (b *BudgetGoal) Update(target decimal.Decimal, start, end time.Time) error {
	if err := validateBudgetGoal(target, start, end); err != nil {
		return err
	}

	b.TargetAmount = target
	b.StartDate = start
	b.EndDate = end
	b.Touch()
	return nil
}

func validateBudgetGoal(target decimal.Decimal, start, end time.Time) error {
	if target.IsNegative() || target.IsZero() {
		return shared.NewDomainError("INVALID_BUDGET_GOAL", "Target amount must be positive")
	}
	if !start.Before(end) {
		return shared.NewDomainError("INVALID_BUDGET_GOAL", "Start date must be before end date")
	}
	return nil
}
