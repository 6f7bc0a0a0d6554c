package finance

import (
	"context"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService handles group-scoped category management
type CategoryService struct {
	categoryRepo finance.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo finance.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a category in the group
func (s *CategoryService) Create(ctx context.Context, groupID uuid.UUID, name, colorHex string) (*CategoryDTO, error) {
	c, err := finance.NewCategory(groupID, name, colorHex)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Category created",
		zap.String("category_id", c.ID.String()),
		zap.String("group_id", groupID.String()))
	return toCategoryDTO(c), nil
}

// Get returns one category of the group
func (s *CategoryService) Get(ctx context.Context, groupID, categoryID uuid.UUID) (*CategoryDTO, error) {
	c, err := s.findInGroup(ctx, groupID, categoryID)
	if err != nil {
		return nil, err
	}
	return toCategoryDTO(c), nil
}

// List returns all categories of the group
func (s *CategoryService) List(ctx context.Context, groupID uuid.UUID) ([]CategoryDTO, error) {
	categories, err := s.categoryRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, *toCategoryDTO(&categories[i]))
	}
	return dtos, nil
}

// Update changes a category's name and color. System categories are
// immutable.
func (s *CategoryService) Update(ctx context.Context, groupID, categoryID uuid.UUID, name, colorHex string) (*CategoryDTO, error) {
	c, err := s.findInGroup(ctx, groupID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := c.Update(name, colorHex); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryDTO(c), nil
}

// Delete removes a category. System categories cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, groupID, categoryID uuid.UUID) error {
	c, err := s.findInGroup(ctx, groupID, categoryID)
	if err != nil {
		return err
	}
	if !c.CanDelete() {
		return shared.NewDomainError("FORBIDDEN", "System categories cannot be deleted.")
	}
	return s.categoryRepo.Delete(ctx, c.ID)
}

// findInGroup loads a category and hides categories of other groups
// behind not-found
func (s *CategoryService) findInGroup(ctx context.Context, groupID, categoryID uuid.UUID) (*finance.Category, error) {
	c, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if c.GroupID != groupID {
		return nil, shared.ErrNotFound
	}
	return c, nil
}
