package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Ayesha-te/ims-backend/internal/domain"
	apperrors "github.com/Ayesha-te/ims-backend/internal/platform/errors"
)

type stockUpdateRequest struct {
	TransactionType string `json:"transaction_type"`
	Quantity        int    `json:"quantity"`
	Reason          string `json:"reason"`
}

type stockUpdateResponse struct {
	Product     *domain.Product          `json:"product"`
	Transaction *domain.StockTransaction `json:"transaction"`
}

func (s *Server) handleUpdateStock(c echo.Context) error {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req stockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	txType, err := domain.ParseTransactionType(req.TransactionType)
	if err != nil {
		return apperrors.ValidationError("transaction_type must be IN, OUT, ADJUSTMENT, or EXPIRED")
	}
	if req.Quantity < 0 {
		return apperrors.ValidationError("quantity must not be negative")
	}

	accountID, err := currentAccountID(c)
	if err != nil {
		return err
	}

	product, transaction, err := s.app.UpdateStock(c.Request().Context(), productID, txType, req.Quantity, req.Reason, accountID)
	if err != nil {
		return domainError(err)
	}

	return writeJSON(c, http.StatusOK, stockUpdateResponse{Product: product, Transaction: transaction})
}

func (s *Server) handleListTransactions(c echo.Context) error {
	productID, limit, err := parseActivityQuery(c)
	if err != nil {
		return err
	}

	transactions, err := s.app.ListTransactions(c.Request().Context(), productID, limit)
	if err != nil {
		return domainError(err)
	}
	return writeJSON(c, http.StatusOK, transactions)
}

// parseActivityQuery reads the optional product_id and limit query params
// shared by the transaction and ticket listings.
func parseActivityQuery(c echo.Context) (*uuid.UUID, int, error) {
	var limit int
	var rawProductID string
	if err := echo.QueryParamsBinder(c).
		Int("limit", &limit).
		String("product_id", &rawProductID).
		BindError(); err != nil {
		return nil, 0, apperrors.ValidationError("invalid query parameters")
	}

	var productID *uuid.UUID
	if rawProductID != "" {
		id, err := uuid.Parse(rawProductID)
		if err != nil {
			return nil, 0, apperrors.ValidationError("invalid product_id parameter")
		}
		productID = &id
	}

	return productID, limit, nil
}
