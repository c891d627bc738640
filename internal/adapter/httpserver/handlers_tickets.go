package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleGenerateTicket(c echo.Context) error {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	accountID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	ticket, err := s.app.GenerateTicket(c.Request().Context(), productID, accountID)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusCreated, ticket)
}

func (s *Server) handleGetTicket(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ticket, err := s.app.GetTicket(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, ticket)
}

func (s *Server) handleListTickets(c echo.Context) error {
	productID, limit, err := parseActivityQuery(c)
	if err != nil {
		return err
	}

	tickets, err := s.app.ListTickets(c.Request().Context(), productID, limit)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, tickets)
}
