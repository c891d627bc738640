package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Ayesha-te/ims-backend/internal/adapter/metrics"
)

const (
	authRatePerSecond = 5
	authBurst         = 10
)

func (s *Server) registerRoutes() {
	s.echo.Use(correlationMiddleware)
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(ErrorHandlingMiddleware(s.httpMetrics))
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            63072000, // 2 years; only sent over HTTPS
		HSTSPreloadEnabled:    true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))
	origins := s.config.OriginList()
	if len(origins) == 0 {
		// No configured allow-list means any storefront may call the API.
		origins = []string{"*"}
	}
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{echo.GET, echo.HEAD, echo.POST, echo.PUT, echo.DELETE},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	if hosts := s.config.HostList(); len(hosts) > 0 {
		s.echo.Use(allowedHostsMiddleware(hosts))
	}
	s.echo.Use(s.httpMetrics.Middleware())

	s.echo.GET("/", s.handleRoot)
	s.echo.HEAD("/", s.handleRoot)
	s.echo.GET("/healthz", s.handleHealthz)
	s.echo.GET("/health", s.handleHealthBanner)
	s.echo.GET("/info", s.handleInfo)
	s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))

	s.registerHealthRoutes()

	if s.config.StaticDir != "" {
		s.echo.Static("/static", s.config.StaticDir)
	}

	authLimiter := newRateLimiter(authRatePerSecond, authBurst)
	s.echo.POST("/api/auth/register", s.handleRegister, authLimiter)
	s.echo.POST("/api/auth/login", s.handleLogin, authLimiter)
	s.echo.POST("/api/auth/refresh", s.handleRefresh)

	api := s.echo.Group("/api", s.requireAuth)

	api.GET("/auth/me", s.handleMe)

	api.GET("/categories", s.handleListCategories)
	api.POST("/categories", s.handleCreateCategory)
	api.GET("/categories/:id", s.handleGetCategory)
	api.PUT("/categories/:id", s.handleUpdateCategory)
	api.DELETE("/categories/:id", s.handleDeleteCategory)

	api.GET("/suppliers", s.handleListSuppliers)
	api.POST("/suppliers", s.handleCreateSupplier)
	api.GET("/suppliers/halal-certified", s.handleListHalalSuppliers)
	api.GET("/suppliers/:id", s.handleGetSupplier)
	api.PUT("/suppliers/:id", s.handleUpdateSupplier)
	api.DELETE("/suppliers/:id", s.handleDeleteSupplier)

	api.GET("/products", s.handleListProducts)
	api.POST("/products", s.handleCreateProduct)
	api.POST("/products/scan", s.handleScanProduct)
	api.GET("/products/expiring-soon", s.handleListExpiringSoon)
	api.GET("/products/expired", s.handleListExpired)
	api.GET("/products/low-stock", s.handleListLowStock)
	api.GET("/products/:id", s.handleGetProduct)
	api.PUT("/products/:id", s.handleUpdateProduct)
	api.DELETE("/products/:id", s.handleDeleteProduct)
	api.POST("/products/:id/stock", s.handleUpdateStock)
	api.POST("/products/:id/ticket", s.handleGenerateTicket)

	api.GET("/product-tickets", s.handleListTickets)
	api.GET("/product-tickets/:id", s.handleGetTicket)
	api.GET("/stock-transactions", s.handleListTransactions)

	api.GET("/expiry-alerts", s.handleListAlerts)
	api.POST("/expiry-alerts/:id/read", s.handleMarkAlertRead)
	api.POST("/expiry-alerts/read-all", s.handleMarkAllAlertsRead)
	api.POST("/expiry-alerts/generate", s.handleGenerateAlerts)

	api.GET("/dashboard/stats", s.handleDashboardStats)
	api.GET("/dashboard/alerts-summary", s.handleAlertsSummary)

	api.POST("/imports/excel", s.handleImportExcel)
	api.POST("/imports/image", s.handleImportImage)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}
