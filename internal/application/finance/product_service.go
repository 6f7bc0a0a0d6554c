package finance

import (
	"context"
	"errors"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles the group's product catalog. Products come
// into being through receipts, so the service only reads, patches and
// deletes; there is no create operation.
type ProductService struct {
	productRepo  finance.ProductRepository
	categoryRepo finance.CategoryRepository
	receiptRepo  finance.ReceiptRepository
	logger       *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	productRepo finance.ProductRepository,
	categoryRepo finance.CategoryRepository,
	receiptRepo finance.ReceiptRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		receiptRepo:  receiptRepo,
		logger:       logger,
	}
}

// List returns the group's products ordered by name
func (s *ProductService) List(ctx context.Context, groupID uuid.UUID) ([]ProductDTO, error) {
	products, err := s.productRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames(ctx, groupID)
	if err != nil {
		return nil, err
	}

	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *toProductDTO(&products[i], names))
	}
	return dtos, nil
}

// Get returns one product of the group
func (s *ProductService) Get(ctx context.Context, groupID, productID uuid.UUID) (*ProductDTO, error) {
	p, err := s.findInGroup(ctx, groupID, productID)
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return toProductDTO(p, names), nil
}

// UpdateProductInput contains input for patching a product. Nil fields
// are left unchanged.
type UpdateProductInput struct {
	GroupID     uuid.UUID
	ProductID   uuid.UUID
	Name        *string
	Description *string
	CategoryIDs *[]uuid.UUID
}

// Update patches a product's name, description and category links
func (s *ProductService) Update(ctx context.Context, input UpdateProductInput) (*ProductDTO, error) {
	p, err := s.findInGroup(ctx, input.GroupID, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := p.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := p.SetDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if input.CategoryIDs != nil {
		if err := s.checkCategories(ctx, input.GroupID, *input.CategoryIDs); err != nil {
			return nil, err
		}
		if err := p.SetCategories(*input.CategoryIDs); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	names, err := s.categoryNames(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	return toProductDTO(p, names), nil
}

// Delete removes a product that no receipt references anymore
func (s *ProductService) Delete(ctx context.Context, groupID, productID uuid.UUID) error {
	p, err := s.findInGroup(ctx, groupID, productID)
	if err != nil {
		return err
	}
	count, err := s.receiptRepo.CountItemsByProduct(ctx, p.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("BAD_REQUEST", "Cannot delete a product that is referenced by receipt items")
	}
	return s.productRepo.Delete(ctx, p.ID)
}

// findInGroup loads a product and hides products of other groups
// behind not-found
func (s *ProductService) findInGroup(ctx context.Context, groupID, productID uuid.UUID) (*finance.ProductData, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.GroupID != groupID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

// checkCategories verifies every referenced category exists in the
// group
func (s *ProductService) checkCategories(ctx context.Context, groupID uuid.UUID, categoryIDs []uuid.UUID) error {
	for _, id := range categoryIDs {
		c, err := s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("BAD_REQUEST", "Referenced category does not exist")
			}
			return err
		}
		if c.GroupID != groupID {
			return shared.NewDomainError("BAD_REQUEST", "Referenced category belongs to another group")
		}
	}
	return nil
}

func (s *ProductService) categoryNames(ctx context.Context, groupID uuid.UUID) (map[uuid.UUID]string, error) {
	categories, err := s.categoryRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
