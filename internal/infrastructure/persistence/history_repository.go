package persistence

import (
	"context"

	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM.
// The ledger is append-only; this repository never updates or deletes.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append writes a new ledger entry
func (r *GormHistoryRepository) Append(ctx context.Context, e *group.HistoryEntry) error {
	model := &models.HistoryEntryModel{}
	model.FromDomain(e)
	return translateError(r.db.WithContext(ctx).Create(model).Error)
}

// ListByGroup returns a group's ledger, newest first
func (r *GormHistoryRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]group.HistoryEntry, error) {
	var entryModels []models.HistoryEntryModel
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("changed_at DESC").
		Find(&entryModels).Error
	if err != nil {
		return nil, err
	}

	entries := make([]group.HistoryEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

var _ group.HistoryRepository = (*GormHistoryRepository)(nil)
