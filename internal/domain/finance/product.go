package finance

import (
	"sort"
	"strings"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxCategoriesPerProduct limits how many categories one product can
// carry
const MaxCategoriesPerProduct = 5

// ProductData is a group-scoped catalog entry that receipt line items
// reference. Products are created implicitly the first time a receipt
// names them; two items with the same name but different category sets
// map to distinct products.
type ProductData struct {
	shared.BaseEntity
	GroupID     uuid.UUID
	Name        string
	Description string
	CategoryIDs []uuid.UUID
}

// NewProductData creates a new product catalog entry
func NewProductData(groupID uuid.UUID, name string, categoryIDs []uuid.UUID) (*ProductData, error) {
	if groupID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product requires a group")
	}
	name, err := validateProductName(name)
	if err != nil {
		return nil, err
	}

	p := &ProductData{
		BaseEntity: shared.NewBaseEntity(),
		GroupID:    groupID,
		Name:       name,
	}
	if err := p.SetCategories(categoryIDs); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename changes the product's name
func (p *ProductData) Rename(name string) error {
	name, err := validateProductName(name)
	if err != nil {
		return err
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetDescription changes the product's free-text description
func (p *ProductData) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_PRODUCT", "Product description cannot exceed 500 characters")
	}
	p.Description = description
	p.Touch()
	return nil
}

// SetCategories replaces the product's category links. Duplicates are
// collapsed and the stored order is canonical.
func (p *ProductData) SetCategories(categoryIDs []uuid.UUID) error {
	normalized := normalizeCategoryIDs(categoryIDs)
	if len(normalized) > MaxCategoriesPerProduct {
		return shared.NewDomainError("INVALID_PRODUCT", "A product cannot have more than 5 categories.")
	}
	p.CategoryIDs = normalized
	p.Touch()
	return nil
}

// HasCategorySet reports whether the product's categories equal the
// given set, ignoring order and duplicates
func (p *ProductData) HasCategorySet(categoryIDs []uuid.UUID) bool {
	other := normalizeCategoryIDs(categoryIDs)
	if len(p.CategoryIDs) != len(other) {
		return false
	}
	for i := range other {
		if p.CategoryIDs[i] != other[i] {
			return false
		}
	}
	return true
}

func validateProductName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return "", shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	return name, nil
}

func normalizeCategoryIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}
