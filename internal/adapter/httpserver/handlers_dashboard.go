package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleDashboardStats(c echo.Context) error {
	stats, err := s.app.DashboardStats(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, stats)
}

func (s *Server) handleAlertsSummary(c echo.Context) error {
	summary, err := s.app.AlertsSummary(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, summary)
}
