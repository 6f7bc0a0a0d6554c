package finance

import (
	"time"

	"github.com/financetracking/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxItemsPerReceipt limits how many line items one receipt can carry
const MaxItemsPerReceipt = 50

// ReceiptItem is one line item on a receipt. The product reference is
// mandatory; the catalog entry carries the name and category links.
type ReceiptItem struct {
	ID        uuid.UUID
	ReceiptID uuid.UUID
	ProductID uuid.UUID
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns the line total for the item
func (i ReceiptItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Receipt records a purchase made by a group member. The seller
// reference is optional and survives seller deletion as nil.
type Receipt struct {
	shared.BaseEntity
	GroupID         uuid.UUID
	SellerID        *uuid.UUID
	CreatedByUserID uuid.UUID
	PurchasedAt     time.Time
	Items           []ReceiptItem
}

// NewReceipt creates a new receipt with its line items
func NewReceipt(groupID, createdBy uuid.UUID, sellerID *uuid.UUID, purchasedAt time.Time, items []ReceiptItem) (*Receipt, error) {
	if groupID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt requires a group")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt requires a creating user")
	}
	if purchasedAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt requires a purchase time")
	}

	r := &Receipt{
		BaseEntity:      shared.NewBaseEntity(),
		GroupID:         groupID,
		SellerID:        sellerID,
		CreatedByUserID: createdBy,
		PurchasedAt:     purchasedAt,
		Items:           make([]ReceiptItem, 0, len(items)),
	}

	for _, item := range items {
		if err := r.AddItem(item.ProductID, item.UnitPrice, item.Quantity); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// AddItem appends a line item to the receipt
func (r *Receipt) AddItem(productID uuid.UUID, unitPrice decimal.Decimal, quantity int) error {
	if len(r.Items) >= MaxItemsPerReceipt {
		return shared.NewDomainError("INVALID_RECEIPT", "Receipt cannot have more than 50 items")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_RECEIPT_ITEM", "Item requires a product")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_RECEIPT_ITEM", "Item unit price cannot be negative")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_RECEIPT_ITEM", "Item quantity must be positive")
	}

	r.Items = append(r.Items, ReceiptItem{
		ID:        uuid.New(),
		ReceiptID: r.ID,
		ProductID: productID,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	})
	r.Touch()
	return nil
}

// ReplaceItems swaps the receipt's line items
func (r *Receipt) ReplaceItems(items []ReceiptItem) error {
	old := r.Items
	r.Items = make([]ReceiptItem, 0, len(items))
	for _, item := range items {
		if err := r.AddItem(item.ProductID, item.UnitPrice, item.Quantity); err != nil {
			r.Items = old
			return err
		}
	}
	r.Touch()
	return nil
}

// SetSeller changes the optional seller reference
func (r *Receipt) SetSeller(sellerID *uuid.UUID) {
	r.SellerID = sellerID
	r.Touch()
}

// ProductIDs returns the distinct products referenced by the items
func (r *Receipt) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(r.Items))
	ids := make([]uuid.UUID, 0, len(r.Items))
	for _, item := range r.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Total returns the sum over all line items
func (r *Receipt) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Total())
	}
	return total
}
