package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guardrails/internal/services"
)

// UserHandler serves the read-only user directory.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers handles listing users.
// @Summary     List users
// @Description List users with their linked employee name, ordered by role then username
// @Tags        users
// @Produce     json
// @Success     200 {object} UserListResponse "Users"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}
