package handler

import (
	financeapp "github.com/financetracking/backend/internal/application/finance"
	appgroup "github.com/financetracking/backend/internal/application/group"
	"github.com/financetracking/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CategoryHandler handles group-scoped expense category endpoints
type CategoryHandler struct {
	BaseHandler
	service      *financeapp.CategoryService
	groupService *appgroup.GroupService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(service *financeapp.CategoryService, groupService *appgroup.GroupService) *CategoryHandler {
	return &CategoryHandler{
		service:      service,
		groupService: groupService,
	}
}

// RegisterRoutes registers category routes, all requiring group
// membership
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	member := middleware.RequireGroupMembership(h.groupService)

	categories := rg.Group("/groups/:groupId/categories", member)
	categories.POST("", h.Create)
	categories.GET("", h.List)
	categories.GET("/:categoryId", h.Get)
	categories.PUT("/:categoryId", h.Update)
	categories.DELETE("/:categoryId", h.Delete)
}

// CategoryRequest is the request body for creating or updating a
// category
type CategoryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	ColorHex string `json:"color_hex" binding:"required"`
}

// Create creates a category in the group
func (h *CategoryHandler) Create(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	var req CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Create(c.Request.Context(), groupID, req.Name, req.ColorHex)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto)
}

// List lists the group's categories
func (h *CategoryHandler) List(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	dtos, err := h.service.List(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dtos)
}

// Get returns one category
func (h *CategoryHandler) Get(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	categoryID, err := parseUUIDParam(c, "categoryId")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), groupID, categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Update changes a category's name and color
func (h *CategoryHandler) Update(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	categoryID, err := parseUUIDParam(c, "categoryId")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req CategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Update(c.Request.Context(), groupID, categoryID, req.Name, req.ColorHex)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Delete removes a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	categoryID, err := parseUUIDParam(c, "categoryId")
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), groupID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
