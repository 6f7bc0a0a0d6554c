package models

import (
	"time"

	"github.com/financetracking/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	GroupID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(100);not null"`
	ColorHex string    `gorm:"type:varchar(7);not null"`
	IsSystem bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *finance.Category {
	return &finance.Category{
		BaseEntity: m.entity(),
		GroupID:    m.GroupID,
		Name:       m.Name,
		ColorHex:   m.ColorHex,
		IsSystem:   m.IsSystem,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *finance.Category) {
	m.BaseModel = newBaseModel(c.BaseEntity)
	m.GroupID = c.GroupID
	m.Name = c.Name
	m.ColorHex = c.ColorHex
	m.IsSystem = c.IsSystem
}

// SellerModel is the persistence model for the Seller domain entity.
type SellerModel struct {
	BaseModel
	GroupID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Location string    `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (SellerModel) TableName() string {
	return "sellers"
}

// ToDomain converts the persistence model to a domain Seller entity.
func (m *SellerModel) ToDomain() *finance.Seller {
	return &finance.Seller{
		BaseEntity: m.entity(),
		GroupID:    m.GroupID,
		Name:       m.Name,
		Location:   m.Location,
	}
}

// FromDomain populates the persistence model from a domain Seller entity.
func (m *SellerModel) FromDomain(s *finance.Seller) {
	m.BaseModel = newBaseModel(s.BaseEntity)
	m.GroupID = s.GroupID
	m.Name = s.Name
	m.Location = s.Location
}

// BudgetGoalModel is the persistence model for the BudgetGoal domain entity.
type BudgetGoalModel struct {
	BaseModel
	GroupID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TargetAmount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	StartDate    time.Time       `gorm:"not null"`
	EndDate      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BudgetGoalModel) TableName() string {
	return "budget_goals"
}

// ToDomain converts the persistence model to a domain BudgetGoal entity.
func (m *BudgetGoalModel) ToDomain() *finance.BudgetGoal {
	return &finance.BudgetGoal{
		BaseEntity:   m.entity(),
		GroupID:      m.GroupID,
		TargetAmount: m.TargetAmount,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
	}
}

// FromDomain populates the persistence model from a domain BudgetGoal entity.
func (m *BudgetGoalModel) FromDomain(b *finance.BudgetGoal) {
	m.BaseModel = newBaseModel(b.BaseEntity)
	m.GroupID = b.GroupID
	m.TargetAmount = b.TargetAmount
	m.StartDate = b.StartDate
	m.EndDate = b.EndDate
}

// ProductDataModel is the persistence model for the ProductData domain
// entity. Category links live in a join table and are replaced
// wholesale on save.
type ProductDataModel struct {
	BaseModel
	GroupID     uuid.UUID              `gorm:"type:uuid;not null;index:idx_product_data_group_name"`
	Name        string                 `gorm:"type:varchar(200);not null;index:idx_product_data_group_name"`
	Description string                 `gorm:"type:varchar(500)"`
	Categories  []ProductCategoryModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductDataModel) TableName() string {
	return "product_data"
}

// ProductCategoryModel links a product to one of its categories.
type ProductCategoryModel struct {
	ProductID  uuid.UUID `gorm:"type:uuid;primary_key"`
	CategoryID uuid.UUID `gorm:"type:uuid;primary_key;index"`
}

// TableName returns the table name for GORM
func (ProductCategoryModel) TableName() string {
	return "product_data_categories"
}

// ToDomain converts the persistence model to a domain ProductData entity.
func (m *ProductDataModel) ToDomain() *finance.ProductData {
	ids := make([]uuid.UUID, len(m.Categories))
	for i, link := range m.Categories {
		ids[i] = link.CategoryID
	}
	p := &finance.ProductData{
		BaseEntity:  m.entity(),
		GroupID:     m.GroupID,
		Name:        m.Name,
		Description: m.Description,
	}
	// Stored links are already deduplicated; SetCategories restores the
	// canonical order without touching UpdatedAt on a fresh load.
	updatedAt := p.UpdatedAt
	_ = p.SetCategories(ids)
	p.UpdatedAt = updatedAt
	return p
}

// FromDomain populates the persistence model from a domain ProductData entity.
func (m *ProductDataModel) FromDomain(p *finance.ProductData) {
	m.BaseModel = newBaseModel(p.BaseEntity)
	m.GroupID = p.GroupID
	m.Name = p.Name
	m.Description = p.Description
	m.Categories = make([]ProductCategoryModel, len(p.CategoryIDs))
	for i, id := range p.CategoryIDs {
		m.Categories[i] = ProductCategoryModel{
			ProductID:  p.ID,
			CategoryID: id,
		}
	}
}

// ReceiptModel is the persistence model for the Receipt domain entity.
// Items are a separate table and replaced wholesale on update.
type ReceiptModel struct {
	BaseModel
	GroupID         uuid.UUID          `gorm:"type:uuid;not null;index"`
	SellerID        *uuid.UUID         `gorm:"type:uuid;index"`
	CreatedByUserID uuid.UUID          `gorm:"type:uuid;not null"`
	PurchasedAt     time.Time          `gorm:"not null;index"`
	Items           []ReceiptItemModel `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ReceiptItemModel is the persistence model for one receipt line item.
type ReceiptItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Quantity  int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReceiptItemModel) TableName() string {
	return "receipt_items"
}

// ToDomain converts the persistence model to a domain Receipt entity.
func (m *ReceiptModel) ToDomain() *finance.Receipt {
	items := make([]finance.ReceiptItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = finance.ReceiptItem{
			ID:        item.ID,
			ReceiptID: item.ReceiptID,
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}
	return &finance.Receipt{
		BaseEntity:      m.entity(),
		GroupID:         m.GroupID,
		SellerID:        m.SellerID,
		CreatedByUserID: m.CreatedByUserID,
		PurchasedAt:     m.PurchasedAt,
		Items:           items,
	}
}

// FromDomain populates the persistence model from a domain Receipt entity.
func (m *ReceiptModel) FromDomain(r *finance.Receipt) {
	m.BaseModel = newBaseModel(r.BaseEntity)
	m.GroupID = r.GroupID
	m.SellerID = r.SellerID
	m.CreatedByUserID = r.CreatedByUserID
	m.PurchasedAt = r.PurchasedAt
	m.Items = make([]ReceiptItemModel, len(r.Items))
	for i, item := range r.Items {
		m.Items[i] = ReceiptItemModel{
			ID:        item.ID,
			ReceiptID: r.ID,
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}
}
