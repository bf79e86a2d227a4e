package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{name: "admin passes", role: "ADMIN", wantStatus: http.StatusOK},
		{name: "manager passes", role: "MANAGER", wantStatus: http.StatusOK},
		{name: "customer forbidden", role: "CUSTOMER", wantStatus: http.StatusForbidden},
		{name: "missing role forbidden", role: "", wantStatus: http.StatusForbidden},
		{name: "garbage role forbidden", role: "ROOT", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tt.role != "" {
					c.Set("userRole", tt.role)
				}
				c.Next()
			})
			r.GET("/guarded", RequireAdmin(), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
