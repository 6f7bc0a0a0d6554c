package finance

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository provides access to categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Category, error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SellerRepository provides access to sellers
type SellerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Seller, error)
	Save(ctx context.Context, s *Seller) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetGoalRepository provides access to budget goals
type BudgetGoalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BudgetGoal, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]BudgetGoal, error)
	Save(ctx context.Context, b *BudgetGoal) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository provides access to the product catalog
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductData, error)
	// FindByGroupAndName returns all products of the group carrying the
	// exact name; the same name may map to several category sets
	FindByGroupAndName(ctx context.Context, groupID uuid.UUID, name string) ([]ProductData, error)
	// ListByGroup returns the group's products ordered by name
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]ProductData, error)
	Save(ctx context.Context, p *ProductData) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReceiptRepository provides access to receipts and their items
type ReceiptRepository interface {
	// FindByID returns the receipt with its items loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)
	// ListByGroup returns a group's receipts newest first, items loaded
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Receipt, error)
	// CountItemsByProduct counts line items referencing the product
	// across all receipts
	CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	Save(ctx context.Context, r *Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
}
