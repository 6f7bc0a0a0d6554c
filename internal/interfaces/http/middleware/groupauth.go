package middleware

import (
	"net/http"

	appgroup "github.com/financetracking/backend/internal/application/group"
	"github.com/financetracking/backend/internal/domain/group"
	"github.com/financetracking/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Group authorization context keys
const (
	GroupIDKey   = "group_id"
	GroupRoleKey = "group_role"
)

// GroupIDParam is the route parameter carrying the group ID
const GroupIDParam = "groupId"

// RequireGroupMembership admits only active members of the group named
// in the route. Non-members and members of other groups get the same
// 403, so responses do not reveal which groups exist.
func RequireGroupMembership(groups *appgroup.GroupService) gin.HandlerFunc {
	return requireGroupRole(groups, group.RoleMember)
}

// RequireGroupRole admits only active members holding at least the
// required role
func RequireGroupRole(groups *appgroup.GroupService, required group.Role) gin.HandlerFunc {
	return requireGroupRole(groups, required)
}

func requireGroupRole(groups *appgroup.GroupService, required group.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID, err := uuid.Parse(c.Param(GroupIDParam))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Invalid group ID"))
			return
		}

		userID, ok := GetAuthUserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		role, isMember, err := groups.RoleOf(c.Request.Context(), groupID, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
			return
		}
		if !isMember || !group.Satisfies(role, required) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "You are not allowed to access this group"))
			return
		}

		c.Set(GroupIDKey, groupID)
		c.Set(GroupRoleKey, role)
		c.Next()
	}
}

// GetGroupID retrieves the authorized group ID from the context
func GetGroupID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(GroupIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

// GetGroupRole retrieves the caller's role in the authorized group
func GetGroupRole(c *gin.Context) (group.Role, bool) {
	if v, exists := c.Get(GroupRoleKey); exists {
		if role, ok := v.(group.Role); ok {
			return role, true
		}
	}
	return 0, false
}
