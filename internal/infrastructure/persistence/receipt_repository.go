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

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt with its items loaded
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Receipt, error) {
	var model models.ReceiptModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByGroup returns a group's receipts newest first, items loaded
func (r *GormReceiptRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]finance.Receipt, error) {
	var receiptModels []models.ReceiptModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("group_id = ?", groupID).
		Order("purchased_at DESC").
		Find(&receiptModels).Error
	if err != nil {
		return nil, err
	}

	receipts := make([]finance.Receipt, len(receiptModels))
	for i, model := range receiptModels {
		receipts[i] = *model.ToDomain()
	}
	return receipts, nil
}

// CountItemsByProduct counts line items referencing the product across
// all receipts
func (r *GormReceiptRepository) CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReceiptItemModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

// Save creates or updates a receipt. Items are replaced wholesale so the
// stored rows always mirror the entity's item list.
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *finance.Receipt) error {
	model := &models.ReceiptModel{}
	model.FromDomain(receipt)

	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := model.Items
		model.Items = nil
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ReceiptItemModel{}, "receipt_id = ?", model.ID).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	}))
}

// Delete removes a receipt with its items
func (r *GormReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ReceiptItemModel{}, "receipt_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ReceiptModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	}))
}

var _ finance.ReceiptRepository = (*GormReceiptRepository)(nil)
