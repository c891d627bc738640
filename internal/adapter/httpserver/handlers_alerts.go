package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/Ayesha-te/ims-backend/internal/platform/errors"
)

func (s *Server) handleListAlerts(c echo.Context) error {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return apperrors.ValidationError("invalid limit parameter")
	}

	alerts, err := s.app.ListAlerts(c.Request().Context(), limit)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, alerts)
}

func (s *Server) handleMarkAlertRead(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	alert, err := s.app.MarkAlertRead(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, alert)
}

func (s *Server) handleMarkAllAlertsRead(c echo.Context) error {
	count, err := s.app.MarkAllAlertsRead(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, map[string]int{"marked_read": count})
}

func (s *Server) handleGenerateAlerts(c echo.Context) error {
	report, err := s.app.GenerateAlerts(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, report)
}
