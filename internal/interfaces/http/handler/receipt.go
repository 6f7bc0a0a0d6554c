package handler

import (
	"time"

	financeapp "github.com/financetracking/backend/internal/application/finance"
	appgroup "github.com/financetracking/backend/internal/application/group"
	"github.com/financetracking/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptHandler handles group-scoped receipt endpoints
type ReceiptHandler struct {
	BaseHandler
	service      *financeapp.ReceiptService
	groupService *appgroup.GroupService
}

// NewReceiptHandler creates a new ReceiptHandler
func NewReceiptHandler(service *financeapp.ReceiptService, groupService *appgroup.GroupService) *ReceiptHandler {
	return &ReceiptHandler{
		service:      service,
		groupService: groupService,
	}
}

// RegisterRoutes registers receipt routes, all requiring group
// membership
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	member := middleware.RequireGroupMembership(h.groupService)

	receipts := rg.Group("/groups/:groupId/receipts", member)
	receipts.POST("", h.Create)
	receipts.GET("", h.List)
	receipts.GET("/:receiptId", h.Get)
	receipts.PUT("/:receiptId", h.Update)
	receipts.DELETE("/:receiptId", h.Delete)
}

// ReceiptItemRequest is one line item of a receipt request. Name and
// categories are free text; the service resolves them against the
// group's product catalog.
type ReceiptItemRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Categories []string        `json:"categories" binding:"omitempty,max=5,dive,min=1,max=100"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
	Quantity   int             `json:"quantity" binding:"required,min=1"`
}

// ReceiptRequest is the request body for creating or updating a
// receipt
type ReceiptRequest struct {
	SellerID    *uuid.UUID           `json:"seller_id"`
	PurchasedAt time.Time            `json:"purchased_at" binding:"required"`
	Items       []ReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r *ReceiptRequest) toItems() []financeapp.ReceiptItemInput {
	items := make([]financeapp.ReceiptItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, financeapp.ReceiptItemInput{
			Name:       item.Name,
			Categories: item.Categories,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
		})
	}
	return items
}

// Create creates a receipt with its line items
func (h *ReceiptHandler) Create(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)
	userID, _ := getUserID(c)

	var req ReceiptRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Create(c.Request.Context(), financeapp.CreateReceiptInput{
		GroupID:     groupID,
		CreatedBy:   userID,
		SellerID:    req.SellerID,
		PurchasedAt: req.PurchasedAt,
		Items:       req.toItems(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto)
}

// List lists the group's receipts, newest first
func (h *ReceiptHandler) List(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	dtos, err := h.service.List(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dtos)
}

// Get returns one receipt with its items
func (h *ReceiptHandler) Get(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	receiptID, err := parseUUIDParam(c, "receiptId")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), groupID, receiptID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Update replaces a receipt's seller, purchase time and items
func (h *ReceiptHandler) Update(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	receiptID, err := parseUUIDParam(c, "receiptId")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req ReceiptRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Update(c.Request.Context(), financeapp.UpdateReceiptInput{
		GroupID:     groupID,
		ReceiptID:   receiptID,
		SellerID:    req.SellerID,
		PurchasedAt: req.PurchasedAt,
		Items:       req.toItems(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Delete removes a receipt with its items
func (h *ReceiptHandler) Delete(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	receiptID, err := parseUUIDParam(c, "receiptId")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), groupID, receiptID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
