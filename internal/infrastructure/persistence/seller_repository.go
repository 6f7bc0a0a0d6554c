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

// GormSellerRepository implements SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// FindByID finds a seller by its ID
func (r *GormSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Seller, error) {
	var model models.SellerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByGroup returns a group's sellers ordered by name
func (r *GormSellerRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]finance.Seller, error) {
	var sellerModels []models.SellerModel
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("name ASC").
		Find(&sellerModels).Error
	if err != nil {
		return nil, err
	}

	sellers := make([]finance.Seller, len(sellerModels))
	for i, model := range sellerModels {
		sellers[i] = *model.ToDomain()
	}
	return sellers, nil
}

// Save creates or updates a seller
func (r *GormSellerRepository) Save(ctx context.Context, s *finance.Seller) error {
	model := &models.SellerModel{}
	model.FromDomain(s)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Delete removes a seller. Receipts referencing it keep a nil seller
// via the ON DELETE SET NULL foreign key.
func (r *GormSellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SellerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ finance.SellerRepository = (*GormSellerRepository)(nil)
