package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ayesha-te/ims-backend/internal/platform/version"
)

// handleInfo catalogs the API surface for clients discovering the service.
func (s *Server) handleInfo(c echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]any{
		"service": serviceName,
		"version": version.Get().Version,
		"endpoints": map[string]any{
			"auth": map[string]string{
				"register": "POST /api/auth/register",
				"login":    "POST /api/auth/login",
				"refresh":  "POST /api/auth/refresh",
				"me":       "GET /api/auth/me",
			},
			"categories": map[string]string{
				"list":   "GET /api/categories",
				"create": "POST /api/categories",
				"get":    "GET /api/categories/:id",
				"update": "PUT /api/categories/:id",
				"delete": "DELETE /api/categories/:id",
			},
			"suppliers": map[string]string{
				"list":            "GET /api/suppliers",
				"create":          "POST /api/suppliers",
				"halal_certified": "GET /api/suppliers/halal-certified",
				"get":             "GET /api/suppliers/:id",
				"update":          "PUT /api/suppliers/:id",
				"delete":          "DELETE /api/suppliers/:id",
			},
			"products": map[string]string{
				"list":          "GET /api/products",
				"create":        "POST /api/products",
				"get":           "GET /api/products/:id",
				"update":        "PUT /api/products/:id",
				"delete":        "DELETE /api/products/:id",
				"scan":          "POST /api/products/scan",
				"expiring_soon": "GET /api/products/expiring-soon",
				"expired":       "GET /api/products/expired",
				"low_stock":     "GET /api/products/low-stock",
				"update_stock":  "POST /api/products/:id/stock",
				"ticket":        "POST /api/products/:id/ticket",
			},
			"tickets": map[string]string{
				"list": "GET /api/product-tickets",
				"get":  "GET /api/product-tickets/:id",
			},
			"stock_transactions": map[string]string{
				"list": "GET /api/stock-transactions",
			},
			"expiry_alerts": map[string]string{
				"list":     "GET /api/expiry-alerts",
				"read":     "POST /api/expiry-alerts/:id/read",
				"read_all": "POST /api/expiry-alerts/read-all",
				"generate": "POST /api/expiry-alerts/generate",
			},
			"dashboard": map[string]string{
				"stats":          "GET /api/dashboard/stats",
				"alerts_summary": "GET /api/dashboard/alerts-summary",
			},
			"imports": map[string]string{
				"excel": "POST /api/imports/excel",
				"image": "POST /api/imports/image",
			},
		},
	})
}
