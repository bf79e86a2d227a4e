package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/storecore/commerce/internal/container"
	handlers "github.com/storecore/commerce/internal/interface/http"
	"github.com/storecore/commerce/internal/interface/middleware"
	"github.com/storecore/commerce/pkg/helpers"
)

// UserModule wires the profile routes plus the admin-only account
// management routes.
// Protected: GET/PUT /api/users/me, PUT /api/users/me/email,
// PUT /api/users/me/password
// Admin: PUT /api/users/:id/role, POST /api/users/:id/activate,
// DELETE /api/users/:id

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/users/me", m.Handler.GetProfile)
		auth.PUT("/users/me", m.Handler.UpdateProfile)
		auth.PUT("/users/me/email", m.Handler.ChangeEmail)
		auth.PUT("/users/me/password", m.Handler.ChangePassword)
	}

	admin := rg.Group("/")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT), middleware.RequireAdmin())
	{
		admin.PUT("/users/:id/role", m.Handler.ChangeRole)
		admin.POST("/users/:id/activate", m.Handler.Activate)
		admin.DELETE("/users/:id", m.Handler.Deactivate)
	}
}
