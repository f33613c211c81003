package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
	"github.com/jakemelvin/burApp/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) requirePermission(c *gin.Context, p models.Permission) bool {
	actorID, ok := currentUser(c)
	if !ok {
		return false
	}
	actor, err := h.userService.GetByID(actorID)
	if err != nil {
		abortWithError(c, err)
		return false
	}
	if !actor.HasPermission(p) {
		abortWithError(c, apperr.Forbidden("insufficient permissions"))
		return false
	}
	return true
}

func (h *UserHandler) GetAll(c *gin.Context) {
	if !h.requirePermission(c, models.PermissionViewAllUsers) {
		return
	}
	users, err := h.userService.GetAll()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	userID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetByID(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile lets users edit themselves; editing others requires the
// UPDATE_USER permission.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	targetID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	if actorID != targetID && !h.requirePermission(c, models.PermissionUpdateUser) {
		return
	}
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.userService.UpdateProfile(targetID, req.Username, req.Email)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if !h.requirePermission(c, models.PermissionDeleteUser) {
		return
	}
	userID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(userID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *UserHandler) AssignRole(c *gin.Context) {
	if !h.requirePermission(c, models.PermissionAssignRoles) {
		return
	}
	userID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	roleID, ok := uintParam(c, "roleId")
	if !ok {
		return
	}
	user, err := h.userService.AssignRole(userID, roleID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) RemoveRole(c *gin.Context) {
	if !h.requirePermission(c, models.PermissionAssignRoles) {
		return
	}
	userID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	roleID, ok := uintParam(c, "roleId")
	if !ok {
		return
	}
	user, err := h.userService.RemoveRole(userID, roleID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
