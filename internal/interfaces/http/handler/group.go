package handler

import (
	appgroup "github.com/financetracking/backend/internal/application/group"
	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// GroupHandler handles group and membership endpoints
type GroupHandler struct {
	BaseHandler
	service *appgroup.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(service *appgroup.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

// RegisterRoutes registers group routes. Reads require membership,
// member management requires at least the admin role.
func (h *GroupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	member := middleware.RequireGroupMembership(h.service)
	admin := middleware.RequireGroupRole(h.service, group.RoleAdmin)

	rg.POST("/groups", h.Create)
	rg.GET("/groups", h.ListMine)

	groups := rg.Group("/groups/:groupId")
	groups.GET("", member, h.Get)
	groups.GET("/members", member, h.ListMembers)
	groups.GET("/history", member, h.ListHistory)
	groups.POST("/leave", member, h.Leave)
	groups.PUT("/members/:userId/role", admin, h.ChangeMemberRole)
	groups.DELETE("/members/:userId", admin, h.RemoveMember)
}

// CreateGroupRequest is the request body for creating a group.
// Personal groups are provisioned automatically and cannot be created
// through the API.
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// Create creates a group owned by the caller
func (h *GroupHandler) Create(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.CreateGroup(c.Request.Context(), userID, req.Name, false)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto)
}

// ListMine lists the groups where the caller is an active member
func (h *GroupHandler) ListMine(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dtos, err := h.service.ListUserGroups(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dtos)
}

// Get returns a single group
func (h *GroupHandler) Get(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	dto, err := h.service.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// ListMembers lists the group's active members
func (h *GroupHandler) ListMembers(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	dtos, err := h.service.ListMembers(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dtos)
}

// ListHistory returns the group's membership ledger, newest first
func (h *GroupHandler) ListHistory(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	dtos, err := h.service.ListHistory(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dtos)
}

// ChangeRoleRequest is the request body for changing a member's role
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeMemberRole changes a member's role within the group
func (h *GroupHandler) ChangeMemberRole(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)
	actingUserID, _ := getUserID(c)

	targetUserID, err := parseUUIDParam(c, "userId")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req ChangeRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}
	role, err := group.ParseRole(req.Role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.service.ChangeMemberRole(c.Request.Context(), groupID, targetUserID, actingUserID, role); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RemoveMember removes a member from the group
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)
	actingUserID, _ := getUserID(c)

	targetUserID, err := parseUUIDParam(c, "userId")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), groupID, targetUserID, actingUserID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Leave removes the caller's own membership
func (h *GroupHandler) Leave(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)
	userID, _ := getUserID(c)

	if err := h.service.LeaveGroup(c.Request.Context(), groupID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
