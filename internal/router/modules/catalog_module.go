package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storecore/commerce/internal/container"
	handlers "github.com/storecore/commerce/internal/interface/http"
	"github.com/storecore/commerce/internal/interface/middleware"
	"github.com/storecore/commerce/pkg/helpers"
)

// CatalogModule wires the product and category routes. Reads are
// public; every mutation goes through Auth + RequireAdmin.

type CatalogModule struct {
	Products   *handlers.ProductHandler
	Categories *handlers.CategoryHandler
	JWT        *helpers.JWTManager
}

func NewCatalogModule(p *handlers.ProductHandler, c *handlers.CategoryHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Products: p, Categories: c, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/categories", readLimiter, m.Categories.List)
	rg.GET("/categories/:id", readLimiter, m.Categories.Get)
	rg.GET("/categories/:id/products", readLimiter, m.Products.ListByCategory)
	rg.GET("/products/search", readLimiter, m.Products.Search)
	rg.GET("/products/:id", readLimiter, m.Products.Get)

	admin := rg.Group("/")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT), middleware.RequireAdmin())
	admin.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		admin.POST("/categories", m.Categories.Create)
		admin.PUT("/categories/:id", m.Categories.Update)
		admin.POST("/categories/:id/activate", m.Categories.Activate)
		admin.DELETE("/categories/:id", m.Categories.Deactivate)

		admin.POST("/products", m.Products.Create)
		admin.PUT("/products/:id", m.Products.Update)
		admin.POST("/products/:id/stock", m.Products.AdjustStock)
		admin.PUT("/products/:id/category", m.Products.ChangeCategory)
		admin.PUT("/products/:id/price", m.Products.ChangePrice)
		admin.POST("/products/:id/image", m.Products.UploadImage)
		admin.DELETE("/products/:id", m.Products.Deactivate)
	}
}
