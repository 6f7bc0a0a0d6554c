package handler

import (
	"time"

	financeapp "github.com/financetracking/backend/internal/application/finance"
	appgroup "github.com/financetracking/backend/internal/application/group"
	"github.com/financetracking/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetGoalHandler handles group-scoped budget goal endpoints
type BudgetGoalHandler struct {
	BaseHandler
	service      *financeapp.BudgetGoalService
	groupService *appgroup.GroupService
}

// NewBudgetGoalHandler creates a new BudgetGoalHandler
func NewBudgetGoalHandler(service *financeapp.BudgetGoalService, groupService *appgroup.GroupService) *BudgetGoalHandler {
	return &BudgetGoalHandler{
		service:      service,
		groupService: groupService,
	}
}

// RegisterRoutes registers budget goal routes, all requiring group
// membership
func (h *BudgetGoalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	member := middleware.RequireGroupMembership(h.groupService)

	goals := rg.Group("/groups/:groupId/budget-goals", member)
	goals.POST("", h.Create)
	goals.GET("", h.List)
	goals.GET("/:goalId", h.Get)
	goals.PUT("/:goalId", h.Update)
	goals.DELETE("/:goalId", h.Delete)
}

// BudgetGoalRequest is the request body for creating or updating a
// budget goal
type BudgetGoalRequest struct {
	TargetAmount decimal.Decimal `json:"target_amount" binding:"required"`
	StartDate    time.Time       `json:"start_date" binding:"required"`
	EndDate      time.Time       `json:"end_date" binding:"required"`
}

// Create creates a budget goal in the group
func (h *BudgetGoalHandler) Create(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	var req BudgetGoalRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Create(c.Request.Context(), groupID, req.TargetAmount, req.StartDate, req.EndDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto)
}

// List lists the group's budget goals, newest period first
func (h *BudgetGoalHandler) List(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	dtos, err := h.service.List(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dtos)
}

// Get returns one budget goal
func (h *BudgetGoalHandler) Get(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	goalID, err := parseUUIDParam(c, "goalId")
	if err != nil {
		h.BadRequest(c, "Invalid budget goal ID")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), groupID, goalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Update changes a budget goal's amount and period
func (h *BudgetGoalHandler) Update(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	goalID, err := parseUUIDParam(c, "goalId")
	if err != nil {
		h.BadRequest(c, "Invalid budget goal ID")
		return
	}

	var req BudgetGoalRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Update(c.Request.Context(), groupID, goalID, req.TargetAmount, req.StartDate, req.EndDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Delete removes a budget goal
func (h *BudgetGoalHandler) Delete(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	goalID, err := parseUUIDParam(c, "goalId")
	if err != nil {
		h.BadRequest(c, "Invalid budget goal ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), groupID, goalID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
