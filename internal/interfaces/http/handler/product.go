package handler

import (
	financeapp "github.com/financetracking/backend/internal/application/finance"
	appgroup "github.com/financetracking/backend/internal/application/group"
	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler handles group-scoped product catalog endpoints.
// Products are created implicitly through receipts, so there is no
// create route.
type ProductHandler struct {
	BaseHandler
	service      *financeapp.ProductService
	groupService *appgroup.GroupService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *financeapp.ProductService, groupService *appgroup.GroupService) *ProductHandler {
	return &ProductHandler{
		service:      service,
		groupService: groupService,
	}
}

// RegisterRoutes registers product routes. Reads require membership,
// writes require Admin or higher.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	member := middleware.RequireGroupMembership(h.groupService)
	admin := middleware.RequireGroupRole(h.groupService, group.RoleAdmin)

	products := rg.Group("/groups/:groupId/products", member)
	products.GET("", h.List)
	products.GET("/:productId", h.Get)
	products.PATCH("/:productId", admin, h.Update)
	products.DELETE("/:productId", admin, h.Delete)
}

// UpdateProductRequest is the request body for patching a product.
// Omitted fields stay unchanged.
type UpdateProductRequest struct {
	Name        *string      `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string      `json:"description" binding:"omitempty,max=500"`
	CategoryIDs *[]uuid.UUID `json:"category_ids"`
}

// List lists the group's products ordered by name
func (h *ProductHandler) List(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	dtos, err := h.service.List(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dtos)
}

// Get returns one product with its category names
func (h *ProductHandler) Get(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), groupID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Update patches a product's name, description and category links
func (h *ProductHandler) Update(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Update(c.Request.Context(), financeapp.UpdateProductInput{
		GroupID:     groupID,
		ProductID:   productID,
		Name:        req.Name,
		Description: req.Description,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Delete removes a product that no receipt references anymore
func (h *ProductHandler) Delete(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), groupID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
