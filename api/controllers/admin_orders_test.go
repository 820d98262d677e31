package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cutiefy/cutiefy-backend/internal/orders"
	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/cutiefy/cutiefy-backend/pkg/enums"
	pkgerrors "github.com/cutiefy/cutiefy-backend/pkg/errors"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrdersService struct {
	orders        map[uuid.UUID]*models.Order
	dispatchErr   error
	lastDispatch  orders.DispatchInput
	checkoutOrder *models.Order
	checkoutErr   error
	lastSession   string
	lastDetails   orders.CustomerDetails
}

func newStubOrdersService() *stubOrdersService {
	return &stubOrdersService{orders: make(map[uuid.UUID]*models.Order)}
}

func (s *stubOrdersService) Checkout(_ context.Context, sessionID string, details orders.CustomerDetails) (*models.Order, error) {
	s.lastSession = sessionID
	s.lastDetails = details
	if s.checkoutErr != nil {
		return nil, s.checkoutErr
	}
	if s.checkoutOrder == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return s.checkoutOrder, nil
}

func (s *stubOrdersService) Dispatch(_ context.Context, orderID uuid.UUID, input orders.DispatchInput) (*models.Order, error) {
	if s.dispatchErr != nil {
		return nil, s.dispatchErr
	}
	order, ok := s.orders[orderID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	s.lastDispatch = input
	now := time.Now().UTC()
	order.Status = enums.OrderStatusDispatched
	order.PaymentReceived = input.PaymentReceived
	order.DeliveryCharges = input.DeliveryCharges
	order.DiscountApplied = input.DiscountApplied
	order.DispatchedAt = &now
	return order, nil
}

func (s *stubOrdersService) Get(_ context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func (s *stubOrdersService) List(_ context.Context, filters orders.ListFilters) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrdersService) ListDispatched(ctx context.Context) ([]models.Order, error) {
	status := enums.OrderStatusDispatched
	return s.List(ctx, orders.ListFilters{Status: &status})
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func storedOrder(status enums.OrderStatus) *models.Order {
	return &models.Order{
		ID:           uuid.New(),
		CustomerName: "Asha Rao",
		Contact:      "9876543210",
		Email:        "asha@example.com",
		Address:      "12 Rose Lane, Mumbai",
		Status:       status,
		OrderValue:   decimal.RequireFromString("1000.00"),
		Items: []models.OrderItem{
			{Name: "Velvet Scrunchie", Price: decimal.RequireFromString("500.00"), Quantity: 2},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func newAdminRouter(svc orders.Service) http.Handler {
	logg := testLogger()
	r := chi.NewRouter()
	r.Get("/admin/orders", AdminListOrders(svc, logg))
	r.Get("/admin/orders/export", AdminExportOrders(svc, logg))
	r.Get("/admin/orders/{orderID}", AdminGetOrder(svc, logg))
	r.Post("/admin/orders/{orderID}/dispatch", AdminDispatchOrder(svc, logg))
	return r
}

func TestAdminListOrdersFiltersByStatus(t *testing.T) {
	svc := newStubOrdersService()
	pending := storedOrder(enums.OrderStatusPending)
	dispatched := storedOrder(enums.OrderStatusDispatched)
	svc.orders[pending.ID] = pending
	svc.orders[dispatched.ID] = dispatched

	router := newAdminRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders?status=pending", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Orders []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"orders"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Orders, 1)
	assert.Equal(t, pending.ID.String(), body.Data.Orders[0].ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders?status=shipped", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminDispatchOrder(t *testing.T) {
	svc := newStubOrdersService()
	order := storedOrder(enums.OrderStatusPending)
	svc.orders[order.ID] = order

	router := newAdminRouter(svc)

	payload := `{"paymentReceived":"1100.00","deliveryCharges":"150.00","discountApplied":"50.00"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/orders/"+order.ID.String()+"/dispatch", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "1100", svc.lastDispatch.PaymentReceived.String())

	var body struct {
		Data struct {
			Order struct {
				Status       string `json:"status"`
				FinalPayable string `json:"finalPayable"`
			} `json:"order"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "dispatched", body.Data.Order.Status)
	assert.Equal(t, "1100", body.Data.Order.FinalPayable)
}

func TestAdminDispatchConflictSurfaces422(t *testing.T) {
	svc := newStubOrdersService()
	svc.dispatchErr = pkgerrors.New(pkgerrors.CodeStateConflict, "order already dispatched")

	router := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/admin/orders/"+uuid.NewString()+"/dispatch", strings.NewReader(`{"paymentReceived":"10"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAdminDispatchRejectsUnknownFields(t *testing.T) {
	svc := newStubOrdersService()
	router := newAdminRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/admin/orders/"+uuid.NewString()+"/dispatch", strings.NewReader(`{"paymentReceived":"10","surprise":true}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminExportOrders(t *testing.T) {
	svc := newStubOrdersService()
	order := storedOrder(enums.OrderStatusDispatched)
	now := time.Now().UTC()
	order.DispatchedAt = &now
	svc.orders[order.ID] = order

	router := newAdminRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/orders/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "dispatched-orders-")

	body := rec.Body.String()
	assert.Contains(t, body, "Order ID,Customer Name,Contact")
	assert.Contains(t, body, "Velvet Scrunchie x2")
}
