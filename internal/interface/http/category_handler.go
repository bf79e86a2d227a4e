package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/storecore/commerce/internal/application"
	"github.com/storecore/commerce/pkg/response"
	"github.com/storecore/commerce/pkg/validation"
)

type CategoryHandler struct {
	Svc    *application.CategoryService
	Logger *logrus.Logger
}

func NewCategoryHandler(svc *application.CategoryService, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Svc: svc, Logger: logger}
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required,min=3"`
	Description string `json:"description"`
}

// Create POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view, "category created", nil)
}

// Update PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "category updated", nil)
}

// Get GET /api/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	view, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "category", nil)
}

// List GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	views, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, views, "categories", map[string]any{"count": len(views)})
}

// Activate POST /api/categories/:id/activate
func (h *CategoryHandler) Activate(c *gin.Context) {
	if err := h.Svc.Activate(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"active": true}, "category activated", nil)
}

// Deactivate DELETE /api/categories/:id
func (h *CategoryHandler) Deactivate(c *gin.Context) {
	if err := h.Svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"active": false}, "category deactivated", nil)
}
