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

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product with its category links loaded
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ProductData, error) {
	var model models.ProductDataModel
	err := r.db.WithContext(ctx).
		Preload("Categories").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByGroupAndName returns all products of the group with the exact
// name
func (r *GormProductRepository) FindByGroupAndName(ctx context.Context, groupID uuid.UUID, name string) ([]finance.ProductData, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("group_id = ? AND name = ?", groupID, name))
}

// ListByGroup returns the group's products ordered by name
func (r *GormProductRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]finance.ProductData, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("group_id = ?", groupID))
}

func (r *GormProductRepository) list(ctx context.Context, query *gorm.DB) ([]finance.ProductData, error) {
	var productModels []models.ProductDataModel
	if err := query.Preload("Categories").Order("name ASC").Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]finance.ProductData, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// Save creates or updates a product. Category links are replaced
// wholesale so the stored rows always mirror the entity's set.
func (r *GormProductRepository) Save(ctx context.Context, p *finance.ProductData) error {
	model := &models.ProductDataModel{}
	model.FromDomain(p)

	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links := model.Categories
		model.Categories = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ProductCategoryModel{}, "product_id = ?", model.ID).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	}))
}

// Delete removes a product with its category links
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductCategoryModel{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ProductDataModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	}))
}

var _ finance.ProductRepository = (*GormProductRepository)(nil)
