package persistence

import (
	"context"
	"errors"

	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/financetracking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMembershipRepository implements MembershipRepository using GORM
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GormMembershipRepository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Find returns the membership row for the pair, active or not
func (r *GormMembershipRepository) Find(ctx context.Context, groupID, userID uuid.UUID) (*group.Membership, error) {
	var model models.MembershipModel
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByGroup returns all memberships of a group ordered by join time
func (r *GormMembershipRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]group.Membership, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("group_id = ?", groupID))
}

// ListActiveByGroup returns the active memberships ordered by join time
func (r *GormMembershipRepository) ListActiveByGroup(ctx context.Context, groupID uuid.UUID) ([]group.Membership, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("group_id = ? AND active = ?", groupID, true))
}

func (r *GormMembershipRepository) list(ctx context.Context, query *gorm.DB) ([]group.Membership, error) {
	var membershipModels []models.MembershipModel
	if err := query.Order("joined_at ASC").Find(&membershipModels).Error; err != nil {
		return nil, err
	}

	memberships := make([]group.Membership, len(membershipModels))
	for i, model := range membershipModels {
		memberships[i] = *model.ToDomain()
	}
	return memberships, nil
}

// Save creates or updates a membership row
func (r *GormMembershipRepository) Save(ctx context.Context, m *group.Membership) error {
	model := &models.MembershipModel{}
	model.FromDomain(m)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

var _ group.MembershipRepository = (*GormMembershipRepository)(nil)
