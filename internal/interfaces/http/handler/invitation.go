package handler

import (
	appgroup "github.com/financetracking/backend/internal/application/group"
	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// InvitationHandler handles the invitation lifecycle endpoints
type InvitationHandler struct {
	BaseHandler
	service      *appgroup.InvitationService
	groupService *appgroup.GroupService
}

// NewInvitationHandler creates a new InvitationHandler
func NewInvitationHandler(service *appgroup.InvitationService, groupService *appgroup.GroupService) *InvitationHandler {
	return &InvitationHandler{
		service:      service,
		groupService: groupService,
	}
}

// RegisterRoutes registers invitation routes. Group-side management
// requires the admin role; the target-side routes only require the
// caller to be the invitation's addressee, which the service enforces.
func (h *InvitationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	member := middleware.RequireGroupMembership(h.groupService)
	admin := middleware.RequireGroupRole(h.groupService, group.RoleAdmin)

	groups := rg.Group("/groups/:groupId/invitations")
	groups.POST("", admin, h.Create)
	groups.GET("", admin, h.ListForGroup)
	groups.DELETE("/:invitationId", member, h.Cancel)

	rg.GET("/invitations", h.ListMine)
	rg.GET("/invitations/:invitationId", h.Get)
	rg.POST("/invitations/:invitationId/accept", h.Accept)
	rg.POST("/invitations/:invitationId/reject", h.Reject)
}

// CreateInvitationRequest is the request body for inviting a user.
// The target is identified by email or username.
type CreateInvitationRequest struct {
	Identifier string `json:"identifier" binding:"required,min=1,max=200"`
	Note       string `json:"note" binding:"max=500"`
}

// Create invites a user into the group
func (h *InvitationHandler) Create(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)
	inviterID, _ := getUserID(c)

	var req CreateInvitationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	dto, err := h.service.Create(c.Request.Context(), appgroup.CreateInvitationInput{
		GroupID:          groupID,
		InviterID:        inviterID,
		TargetIdentifier: req.Identifier,
		Note:             req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto)
}

// ListForGroup lists the group's invitations, newest first
func (h *InvitationHandler) ListForGroup(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)

	dtos, err := h.service.ListForGroup(c.Request.Context(), groupID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dtos)
}

// Cancel settles a pending invitation as cancelled
func (h *InvitationHandler) Cancel(c *gin.Context) {
	groupID, _ := middleware.GetGroupID(c)
	actingUserID, _ := getUserID(c)

	invitationID, err := parseUUIDParam(c, "invitationId")
	if err != nil {
		h.BadRequest(c, "Invalid invitation ID")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), groupID, invitationID, actingUserID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListMine lists the caller's pending invitations
func (h *InvitationHandler) ListMine(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dtos, err := h.service.ListPendingForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dtos)
}

// Get returns one invitation visible to the caller
func (h *InvitationHandler) Get(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invitationID, err := parseUUIDParam(c, "invitationId")
	if err != nil {
		h.BadRequest(c, "Invalid invitation ID")
		return
	}

	dto, err := h.service.Get(c.Request.Context(), invitationID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto)
}

// Accept accepts an invitation addressed to the caller and joins them
// to the group
func (h *InvitationHandler) Accept(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invitationID, err := parseUUIDParam(c, "invitationId")
	if err != nil {
		h.BadRequest(c, "Invalid invitation ID")
		return
	}

	if err := h.service.Accept(c.Request.Context(), invitationID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Reject rejects an invitation addressed to the caller
func (h *InvitationHandler) Reject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	invitationID, err := parseUUIDParam(c, "invitationId")
	if err != nil {
		h.BadRequest(c, "Invalid invitation ID")
		return
	}

	if err := h.service.Reject(c.Request.Context(), invitationID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
