package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storecore/commerce/internal/domain/valueobject"
	"github.com/storecore/commerce/pkg/response"
)

// RequireAdmin guards management routes. Runs after Auth, which sets
// userRole from the session. ADMIN and MANAGER both pass.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := valueobject.NewRole(c.GetString("userRole"))
		if err != nil || !role.IsAdmin() {
			response.Error[any](c, http.StatusForbidden, "admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
