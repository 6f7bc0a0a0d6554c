package finance

import (
	"sort"
	"time"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryDTO represents category data returned to callers
type CategoryDTO struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	Name      string    `json:"name"`
	ColorHex  string    `json:"color_hex"`
	IsSystem  bool      `json:"is_system"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SellerDTO represents seller data returned to callers
type SellerDTO struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BudgetGoalDTO represents budget goal data returned to callers
type BudgetGoalDTO struct {
	ID           uuid.UUID       `json:"id"`
	GroupID      uuid.UUID       `json:"group_id"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductDTO represents product catalog data returned to callers
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"group_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Categories  []string  `json:"categories"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReceiptItemDTO represents one receipt line item. Name and categories
// come from the referenced product.
type ReceiptItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	Categories []string        `json:"categories"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
}

// ReceiptDTO represents receipt data returned to callers
type ReceiptDTO struct {
	ID              uuid.UUID        `json:"id"`
	GroupID         uuid.UUID        `json:"group_id"`
	SellerID        *uuid.UUID       `json:"seller_id,omitempty"`
	CreatedByUserID uuid.UUID        `json:"created_by_user_id"`
	PurchasedAt     time.Time        `json:"purchased_at"`
	Items           []ReceiptItemDTO `json:"items"`
	Total           decimal.Decimal  `json:"total"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func toCategoryDTO(c *finance.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:        c.ID,
		GroupID:   c.GroupID,
		Name:      c.Name,
		ColorHex:  c.ColorHex,
		IsSystem:  c.IsSystem,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toSellerDTO(s *finance.Seller) *SellerDTO {
	return &SellerDTO{
		ID:        s.ID,
		GroupID:   s.GroupID,
		Name:      s.Name,
		Location:  s.Location,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toBudgetGoalDTO(b *finance.BudgetGoal) *BudgetGoalDTO {
	return &BudgetGoalDTO{
		ID:           b.ID,
		GroupID:      b.GroupID,
		TargetAmount: b.TargetAmount,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// productView is what a receipt line item shows of its product
type productView struct {
	Name       string
	Categories []string
}

func toProductDTO(p *finance.ProductData, categoryNames map[uuid.UUID]string) *ProductDTO {
	return &ProductDTO{
		ID:          p.ID,
		GroupID:     p.GroupID,
		Name:        p.Name,
		Description: p.Description,
		Categories:  resolveCategoryNames(p.CategoryIDs, categoryNames),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func resolveCategoryNames(ids []uuid.UUID, names map[uuid.UUID]string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func toReceiptDTO(r *finance.Receipt, products map[uuid.UUID]productView) *ReceiptDTO {
	items := make([]ReceiptItemDTO, 0, len(r.Items))
	for _, item := range r.Items {
		view := products[item.ProductID]
		items = append(items, ReceiptItemDTO{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Name:       view.Name,
			Categories: view.Categories,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			Total:      item.Total(),
		})
	}
	return &ReceiptDTO{
		ID:              r.ID,
		GroupID:         r.GroupID,
		SellerID:        r.SellerID,
		CreatedByUserID: r.CreatedByUserID,
		PurchasedAt:     r.PurchasedAt,
		Items:           items,
		Total:           r.Total(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
