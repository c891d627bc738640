package httpserver

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ayesha-te/ims-backend/internal/domain"
)

func TestHandleGenerateTicket(t *testing.T) {
	productID := uuid.New()
	service := &mockAppService{
		generateTicketFn: func(_ context.Context, pid, accountID uuid.UUID) (*domain.ProductTicket, error) {
			assert.Equal(t, productID, pid)
			assert.NotEqual(t, uuid.Nil, accountID)
			return &domain.ProductTicket{
				ID:        1,
				ProductID: pid,
				CreatedBy: accountID,
				Data: domain.TicketData{
					ProductName: "Chicken Breast",
					HalalStatus: "HALAL CERTIFIED",
				},
			}, nil
		},
	}
	srv := newTestServer(t, service)
	_, token := bearerToken(t, srv)

	rec := authedRequest(srv, http.MethodPost, "/api/products/"+productID.String()+"/ticket", "", token)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "HALAL CERTIFIED")
}

func TestHandleGetTicket_NotFound(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})
	_, token := bearerToken(t, srv)

	rec := authedRequest(srv, http.MethodGet, "/api/product-tickets/5", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListTickets_ProductFilter(t *testing.T) {
	productID := uuid.New()
	var gotFilter *uuid.UUID
	service := &mockAppService{
		listTicketsFn: func(_ context.Context, pid *uuid.UUID, _ int) ([]domain.ProductTicket, error) {
			gotFilter = pid
			return []domain.ProductTicket{{ID: 1, ProductID: productID}}, nil
		},
	}
	srv := newTestServer(t, service)
	_, token := bearerToken(t, srv)

	rec := authedRequest(srv, http.MethodGet, "/api/product-tickets?product_id="+productID.String(), "", token)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotFilter)
	assert.Equal(t, productID, *gotFilter)
}

func TestHandleListTransactions(t *testing.T) {
	productID := uuid.New()
	service := &mockAppService{
		listTransactionsFn: func(_ context.Context, pid *uuid.UUID, limit int) ([]domain.StockTransaction, error) {
			assert.Nil(t, pid)
			assert.Equal(t, 25, limit)
			return []domain.StockTransaction{
				{ID: 1, ProductID: productID, Type: domain.TxIn, Quantity: 10},
			}, nil
		},
	}
	srv := newTestServer(t, service)
	_, token := bearerToken(t, srv)

	rec := authedRequest(srv, http.MethodGet, "/api/stock-transactions?limit=25", "", token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"transaction_type":"IN"`)
}

func TestHandleListTransactions_BadProductID(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})
	_, token := bearerToken(t, srv)

	rec := authedRequest(srv, http.MethodGet, "/api/stock-transactions?product_id=nope", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
