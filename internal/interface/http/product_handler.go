package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/storecore/commerce/internal/application"
	"github.com/storecore/commerce/pkg/response"
	"github.com/storecore/commerce/pkg/validation"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Stock       int    `json:"stock" binding:"gte=0"`
	CategoryID  string `json:"category_id" binding:"required,uuid"`
}

type updateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Stock       int    `json:"stock" binding:"gte=0"`
}

type adjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type changeCategoryRequest struct {
	CategoryID string `json:"category_id" binding:"required,uuid"`
}

type changePriceRequest struct {
	Price    string `json:"price" binding:"required"`
	Currency string `json:"currency" binding:"required,len=3"`
}

// Create POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.Create(c.Request.Context(), application.CreateProductCommand{
		Name:          req.Name,
		Description:   req.Description,
		PriceAmount:   req.Price,
		PriceCurrency: req.Currency,
		StockQuantity: req.Stock,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, view, "product created", nil)
}

// Update PUT /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.Update(c.Request.Context(), c.Param("id"), application.UpdateProductCommand{
		Name:          req.Name,
		Description:   req.Description,
		PriceAmount:   req.Price,
		PriceCurrency: req.Currency,
		StockQuantity: req.Stock,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "product updated", nil)
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	view, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "product", nil)
}

// ListByCategory GET /api/categories/:id/products
func (h *ProductHandler) ListByCategory(c *gin.Context) {
	views, err := h.Svc.ListByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, views, "products", map[string]any{"count": len(views)})
}

// AdjustStock POST /api/products/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "stock adjusted", nil)
}

// ChangeCategory PUT /api/products/:id/category
func (h *ProductHandler) ChangeCategory(c *gin.Context) {
	var req changeCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.ChangeCategory(c.Request.Context(), c.Param("id"), req.CategoryID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "category changed", nil)
}

// ChangePrice PUT /api/products/:id/price
func (h *ProductHandler) ChangePrice(c *gin.Context) {
	var req changePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	view, err := h.Svc.UpdatePrice(c.Request.Context(), c.Param("id"), req.Price, req.Currency)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "price updated", nil)
}

// Deactivate DELETE /api/products/:id
func (h *ProductHandler) Deactivate(c *gin.Context) {
	if err := h.Svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deactivated": true}, "product deactivated", nil)
}

// UploadImage POST /api/products/:id/image (multipart form, field "image")
func (h *ProductHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	src, err := file.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable image file", nil)
		return
	}
	defer func() { _ = src.Close() }()

	view, err := h.Svc.UploadImage(c.Request.Context(), c.Param("id"), src, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, view, "image uploaded", nil)
}

// Search GET /api/products/search?q=...&size=...
func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	views, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, views, "search results", map[string]any{"count": len(views)})
}
