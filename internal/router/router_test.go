// internal/router/router_test.go
package router

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artwithshyz/storefront/internal/config"
)

func TestSetupRouterRegistersRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Frontend: config.FrontendConfig{BaseURL: "http://localhost:3000"},
	}

	r, err := SetupRouter(nil, cfg)
	require.NoError(t, err)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/auth/verify-email/:token",
		"GET /api/auth/me",
		"GET /api/products",
		"GET /api/products/:id",
		"POST /api/products/:id/reviews",
		"GET /api/cart",
		"POST /api/cart/items",
		"PUT /api/cart/items/:productId",
		"DELETE /api/cart/items/:productId",
		"POST /api/orders",
		"GET /api/orders/:id",
		"POST /api/payments/confirm",
		"GET /api/admin/dashboard",
		"GET /api/admin/orders/export",
		"PUT /api/admin/orders/:id/status",
		"GET /api/admin/customers",
		"GET /api/admin/customers/:id",
		"PUT /api/admin/customers/:id/status",
		"GET /api/admin/customers/export",
		"GET /api/admin/products/low-stock",
	}

	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}
