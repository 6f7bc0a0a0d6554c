package handler

import (
	financeapp "github.com/financetracking/backend/internal/application/finance"
	appgroup "github.com/financetracking/backend/internal/application/group"
	"github.com/financetracking/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// SellerHandler handles group-scoped seller endpoints
type SellerHandler struct {
	BaseHandler
	service      *financeapp.SellerService
	groupService *appgroup.GroupService
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(service *financeapp.SellerService, groupService *appgroup.GroupService) *SellerHandler {
	return &SellerHandler{
		service:      service,
		groupService: groupService,
	}
}

// RegisterRoutes registers seller routes, all requiring group
// membership
func (h *SellerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	member := middleware.RequireGroupMembership(h.groupService)

	sellers := rg.Group("/groups/:groupId/sellers", member)
	sellers.POST("", h.Create)
	sellers.GET("", h.List)
	sellers.GET("/:sellerId", h.Get)
	sellers.PUT("/:sellerId", h.Update)
	sellers.DELETE("/:sellerId", h.Delete)
}

// SellerRequest is the request body for creating or updating a seller
type SellerRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Location string `json:"location" binding:"max=200"`
}

// Create creates a seller in the group
func (h *SellerHandler) Create(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	var req SellerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Create(c.Request.Context(), groupID, req.Name, req.Location)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto)
}

// List lists the group's sellers
func (h *SellerHandler) List(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	dtos, err := h.service.List(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dtos)
}

// Get returns one seller
func (h *SellerHandler) Get(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	sellerID, err := parseUUIDParam(c, "sellerId")
	if err != nil {
		h.BadRequest(c, "Invalid seller ID")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), groupID, sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Update changes a seller's name and location
func (h *SellerHandler) Update(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	sellerID, err := parseUUIDParam(c, "sellerId")
	if err != nil {
		h.BadRequest(c, "Invalid seller ID")
		return
	}

	var req SellerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Update(c.Request.Context(), groupID, sellerID, req.Name, req.Location)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Delete removes a seller. Receipts referencing it keep their data and
// just lose the reference.
func (h *SellerHandler) Delete(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	sellerID, err := parseUUIDParam(c, "sellerId")
	if err != nil {
		h.BadRequest(c, "Invalid seller ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), groupID, sellerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
