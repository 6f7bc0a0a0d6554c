package finance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// defaultCategoryColor is assigned to categories created implicitly
// from receipt line items
const defaultCategoryColor = "#000000"

// ReceiptService handles group-scoped receipt management. Line items
// name products and categories as free text; the service resolves them
// against the group's catalog, creating missing entries on the way.
type ReceiptService struct {
	receiptRepo  finance.ReceiptRepository
	sellerRepo   finance.SellerRepository
	productRepo  finance.ProductRepository
	categoryRepo finance.CategoryRepository
	logger       *zap.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo finance.ReceiptRepository,
	sellerRepo finance.SellerRepository,
	productRepo finance.ProductRepository,
	categoryRepo finance.CategoryRepository,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:  receiptRepo,
		sellerRepo:   sellerRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ReceiptItemInput is one line item of a receipt request
type ReceiptItemInput struct {
	Name       string
	Categories []string
	UnitPrice  decimal.Decimal
	Quantity   int
}

// CreateReceiptInput contains input for creating a receipt
type CreateReceiptInput struct {
	GroupID     uuid.UUID
	CreatedBy   uuid.UUID
	SellerID    *uuid.UUID
	PurchasedAt time.Time
	Items       []ReceiptItemInput
}

// Create creates a receipt with its line items
func (s *ReceiptService) Create(ctx context.Context, input CreateReceiptInput) (*ReceiptDTO, error) {
	if err := s.checkSeller(ctx, input.GroupID, input.SellerID); err != nil {
		return nil, err
	}

	items, err := s.resolveItems(ctx, input.GroupID, input.Items)
	if err != nil {
		return nil, err
	}

	r, err := finance.NewReceipt(input.GroupID, input.CreatedBy, input.SellerID, input.PurchasedAt, items)
	if err != nil {
		return nil, err
	}
	if err := s.receiptRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("Receipt created",
		zap.String("receipt_id", r.ID.String()),
		zap.String("group_id", input.GroupID.String()),
		zap.Int("items", len(r.Items)))
	return s.toDTO(ctx, r)
}

// Get returns one receipt of the group
func (s *ReceiptService) Get(ctx context.Context, groupID, receiptID uuid.UUID) (*ReceiptDTO, error) {
	r, err := s.findInGroup(ctx, groupID, receiptID)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, r)
}

// List returns the group's receipts, newest first
func (s *ReceiptService) List(ctx context.Context, groupID uuid.UUID) ([]ReceiptDTO, error) {
	receipts, err := s.receiptRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	pointers := make([]*finance.Receipt, len(receipts))
	for i := range receipts {
		pointers[i] = &receipts[i]
	}
	views, err := s.productViews(ctx, groupID, pointers)
	if err != nil {
		return nil, err
	}

	dtos := make([]ReceiptDTO, 0, len(receipts))
	for i := range receipts {
		dtos = append(dtos, *toReceiptDTO(&receipts[i], views))
	}
	return dtos, nil
}

// UpdateReceiptInput contains input for updating a receipt
type UpdateReceiptInput struct {
	GroupID     uuid.UUID
	ReceiptID   uuid.UUID
	SellerID    *uuid.UUID
	PurchasedAt time.Time
	Items       []ReceiptItemInput
}

// Update replaces a receipt's seller, purchase time and items
func (s *ReceiptService) Update(ctx context.Context, input UpdateReceiptInput) (*ReceiptDTO, error) {
	r, err := s.findInGroup(ctx, input.GroupID, input.ReceiptID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSeller(ctx, input.GroupID, input.SellerID); err != nil {
		return nil, err
	}
	if input.PurchasedAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt requires a purchase time")
	}

	items, err := s.resolveItems(ctx, input.GroupID, input.Items)
	if err != nil {
		return nil, err
	}
	if err := r.ReplaceItems(items); err != nil {
		return nil, err
	}
	r.SetSeller(input.SellerID)
	r.PurchasedAt = input.PurchasedAt

	if err := s.receiptRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	return s.toDTO(ctx, r)
}

// Delete removes a receipt with its items. Products no longer
// referenced by any receipt are dropped from the catalog.
func (s *ReceiptService) Delete(ctx context.Context, groupID, receiptID uuid.UUID) error {
	r, err := s.findInGroup(ctx, groupID, receiptID)
	if err != nil {
		return err
	}
	productIDs := r.ProductIDs()
	if err := s.receiptRepo.Delete(ctx, r.ID); err != nil {
		return err
	}
	s.removeOrphanedProducts(ctx, productIDs)
	return nil
}

func (s *ReceiptService) findInGroup(ctx context.Context, groupID, receiptID uuid.UUID) (*finance.Receipt, error) {
	r, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if r.GroupID != groupID {
		return nil, shared.ErrNotFound
	}
	return r, nil
}

// checkSeller verifies an optional seller reference points into the
// same group
func (s *ReceiptService) checkSeller(ctx context.Context, groupID uuid.UUID, sellerID *uuid.UUID) error {
	if sellerID == nil {
		return nil
	}
	seller, err := s.sellerRepo.FindByID(ctx, *sellerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("BAD_REQUEST", "Referenced seller does not exist")
		}
		return err
	}
	if seller.GroupID != groupID {
		return shared.NewDomainError("BAD_REQUEST", "Referenced seller belongs to another group")
	}
	return nil
}

// resolveItems maps free-text line items onto catalog products,
// creating missing categories and products on the way. An item matches
// an existing product only when both the name and the exact category
// set agree.
func (s *ReceiptService) resolveItems(ctx context.Context, groupID uuid.UUID, inputs []ReceiptItemInput) ([]finance.ReceiptItem, error) {
	categories, err := s.loadCategoriesByName(ctx, groupID)
	if err != nil {
		return nil, err
	}

	items := make([]finance.ReceiptItem, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, shared.NewDomainError("INVALID_RECEIPT_ITEM", "Item name cannot be empty")
		}
		if len(name) > 200 {
			return nil, shared.NewDomainError("INVALID_RECEIPT_ITEM", "Item name cannot exceed 200 characters")
		}

		categoryIDs, err := s.resolveCategories(ctx, groupID, input.Categories, categories)
		if err != nil {
			return nil, err
		}
		product, err := s.findOrCreateProduct(ctx, groupID, name, categoryIDs)
		if err != nil {
			return nil, err
		}

		items = append(items, finance.ReceiptItem{
			ProductID: product.ID,
			UnitPrice: input.UnitPrice,
			Quantity:  input.Quantity,
		})
	}
	return items, nil
}

// loadCategoriesByName indexes the group's categories by lower-cased
// name
func (s *ReceiptService) loadCategoriesByName(ctx context.Context, groupID uuid.UUID) (map[string]uuid.UUID, error) {
	categories, err := s.categoryRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uuid.UUID, len(categories))
	for _, c := range categories {
		byName[strings.ToLower(c.Name)] = c.ID
	}
	return byName, nil
}

// resolveCategories maps category names to IDs, creating missing
// categories with the default color. Matching is case-insensitive.
func (s *ReceiptService) resolveCategories(ctx context.Context, groupID uuid.UUID, names []string, byName map[string]uuid.UUID) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if id, ok := byName[key]; ok {
			ids = append(ids, id)
			continue
		}

		c, err := finance.NewCategory(groupID, name, defaultCategoryColor)
		if err != nil {
			return nil, err
		}
		if err := s.categoryRepo.Save(ctx, c); err != nil {
			return nil, err
		}
		byName[key] = c.ID
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (s *ReceiptService) findOrCreateProduct(ctx context.Context, groupID uuid.UUID, name string, categoryIDs []uuid.UUID) (*finance.ProductData, error) {
	candidates, err := s.productRepo.FindByGroupAndName(ctx, groupID, name)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].HasCategorySet(categoryIDs) {
			return &candidates[i], nil
		}
	}

	product, err := finance.NewProductData(groupID, name, categoryIDs)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("Product created from receipt item",
		zap.String("product_id", product.ID.String()),
		zap.String("group_id", groupID.String()))
	return product, nil
}

// removeOrphanedProducts drops products no receipt references anymore.
// The receipt delete already committed, so failures here only leave a
// stale catalog entry behind.
func (s *ReceiptService) removeOrphanedProducts(ctx context.Context, productIDs []uuid.UUID) {
	for _, id := range productIDs {
		count, err := s.receiptRepo.CountItemsByProduct(ctx, id)
		if err != nil {
			s.logger.Warn("Failed to check product references",
				zap.String("product_id", id.String()), zap.Error(err))
			continue
		}
		if count > 0 {
			continue
		}
		if err := s.productRepo.Delete(ctx, id); err != nil && !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Failed to remove orphaned product",
				zap.String("product_id", id.String()), zap.Error(err))
		}
	}
}

func (s *ReceiptService) toDTO(ctx context.Context, r *finance.Receipt) (*ReceiptDTO, error) {
	views, err := s.productViews(ctx, r.GroupID, []*finance.Receipt{r})
	if err != nil {
		return nil, err
	}
	return toReceiptDTO(r, views), nil
}

// productViews loads name and category names for every product the
// receipts reference
func (s *ReceiptService) productViews(ctx context.Context, groupID uuid.UUID, receipts []*finance.Receipt) (map[uuid.UUID]productView, error) {
	categories, err := s.categoryRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	views := make(map[uuid.UUID]productView)
	for _, r := range receipts {
		for _, id := range r.ProductIDs() {
			if _, ok := views[id]; ok {
				continue
			}
			product, err := s.productRepo.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			views[id] = productView{
				Name:       product.Name,
				Categories: resolveCategoryNames(product.CategoryIDs, names),
			}
		}
	}
	return views, nil
}
