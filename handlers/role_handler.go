package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakemelvin/burApp/apperr"
	"github.com/jakemelvin/burApp/models"
	"github.com/jakemelvin/burApp/services"
)

type RoleHandler struct {
	roleService *services.RoleService
	userService *services.UserService
}

func NewRoleHandler(roleService *services.RoleService, userService *services.UserService) *RoleHandler {
	return &RoleHandler{roleService: roleService, userService: userService}
}

// requireAdmin gates role management behind the ASSIGN_ROLES permission.
func (h *RoleHandler) requireAdmin(c *gin.Context) bool {
	actorID, ok := currentUser(c)
	if !ok {
		return false
	}
	actor, err := h.userService.GetByID(actorID)
	if err != nil {
		abortWithError(c, err)
		return false
	}
	if !actor.HasPermission(models.PermissionAssignRoles) {
		abortWithError(c, apperr.Forbidden("insufficient permissions for role management"))
		return false
	}
	return true
}

func (h *RoleHandler) GetAll(c *gin.Context) {
	roles, err := h.roleService.GetAll()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

type roleRequest struct {
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Permissions []models.Permission `json:"permissions"`
}

func (h *RoleHandler) Create(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}
	role, err := h.roleService.Create(req.Name, description, req.Permissions)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

func (h *RoleHandler) Update(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	roleID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, err := h.roleService.Update(roleID, req.Description, req.Permissions)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *RoleHandler) Delete(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	roleID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.roleService.Delete(roleID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role deleted successfully"})
}
