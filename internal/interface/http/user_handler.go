package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/storecore/commerce/internal/application"
	"github.com/storecore/commerce/pkg/response"
	"github.com/storecore/commerce/pkg/validation"
)

// UserHandler owns the profile endpoints plus the admin-only account
// management routes.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type changeEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// GetProfile GET /api/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	view, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "profile", nil)
}

// UpdateProfile PUT /api/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString("userID"), req.FirstName, req.LastName)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "profile updated", nil)
}

// ChangeEmail PUT /api/users/me/email
func (h *UserHandler) ChangeEmail(c *gin.Context) {
	var req changeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.ChangeEmail(c.Request.Context(), c.GetString("userID"), req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "email changed", nil)
}

// ChangePassword PUT /api/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), c.GetString("userID"), req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"changed": true}, "password changed", nil)
}

// ChangeRole PUT /api/users/:id/role (admin)
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.ChangeRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "role changed", nil)
}

// Activate POST /api/users/:id/activate (admin)
func (h *UserHandler) Activate(c *gin.Context) {
	if err := h.Svc.Activate(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"active": true}, "account activated", nil)
}

// Deactivate DELETE /api/users/:id (admin)
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.Svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"active": false}, "account deactivated", nil)
}
