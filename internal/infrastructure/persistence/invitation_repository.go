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

// GormInvitationRepository implements InvitationRepository using GORM
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewGormInvitationRepository creates a new GormInvitationRepository
func NewGormInvitationRepository(db *gorm.DB) *GormInvitationRepository {
	return &GormInvitationRepository{db: db}
}

// FindByID finds an invitation by its ID
func (r *GormInvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*group.Invitation, error) {
	var model models.InvitationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPending returns the pending invitation for the (group, target) pair
func (r *GormInvitationRepository) FindPending(ctx context.Context, groupID, targetUserID uuid.UUID) (*group.Invitation, error) {
	var model models.InvitationModel
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND target_user_id = ? AND status = ?",
			groupID, targetUserID, string(group.InvitationStatusPending)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByGroup returns a group's invitations, newest first
func (r *GormInvitationRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]group.Invitation, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("group_id = ?", groupID))
}

// ListPendingForUser returns a user's pending invitations, newest first
func (r *GormInvitationRepository) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]group.Invitation, error) {
	return r.list(ctx, r.db.WithContext(ctx).
		Where("target_user_id = ? AND status = ?", userID, string(group.InvitationStatusPending)))
}

func (r *GormInvitationRepository) list(ctx context.Context, query *gorm.DB) ([]group.Invitation, error) {
	var invitationModels []models.InvitationModel
	if err := query.Order("created_at DESC").Find(&invitationModels).Error; err != nil {
		return nil, err
	}

	invitations := make([]group.Invitation, len(invitationModels))
	for i, model := range invitationModels {
		invitations[i] = *model.ToDomain()
	}
	return invitations, nil
}

// Save creates or updates an invitation. A second pending invitation for
// the same (group, target) pair trips the partial unique index and comes
// back as shared.ErrConflict.
func (r *GormInvitationRepository) Save(ctx context.Context, i *group.Invitation) error {
	model := &models.InvitationModel{}
	model.FromDomain(i)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

var _ group.InvitationRepository = (*GormInvitationRepository)(nil)
