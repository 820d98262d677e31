package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cutiefy/cutiefy-backend/api/middleware"
	"github.com/cutiefy/cutiefy-backend/internal/cart"
	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	pkgerrors "github.com/cutiefy/cutiefy-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubItems struct {
	items map[uuid.UUID]*models.Item
}

func (s *stubItems) GetItem(_ context.Context, id uuid.UUID) (*models.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return item, nil
}

func withSession(sessionID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithSessionID(r.Context(), sessionID)))
		})
	}
}

func newCartRouter(t *testing.T, items ...*models.Item) http.Handler {
	t.Helper()
	reader := &stubItems{items: make(map[uuid.UUID]*models.Item)}
	for _, it := range items {
		reader.items[it.ID] = it
	}
	svc, err := cart.NewService(cart.NewMemoryStore(), reader)
	require.NoError(t, err)

	logg := testLogger()
	r := chi.NewRouter()
	r.Use(withSession("sess-test"))
	r.Get("/cart", GetCart(svc, logg))
	r.Post("/cart/items", AddCartItem(svc, logg))
	r.Patch("/cart/items/{itemID}", UpdateCartItem(svc, logg))
	r.Delete("/cart/items/{itemID}", RemoveCartItem(svc, logg))
	r.Delete("/cart", ClearCart(svc, logg))
	return r
}

type cartBody struct {
	Data struct {
		Lines []struct {
			ItemID   string `json:"item_id"`
			Quantity int    `json:"quantity"`
		} `json:"lines"`
		TotalItems int    `json:"totalItems"`
		TotalPrice string `json:"totalPrice"`
	} `json:"data"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartBody {
	t.Helper()
	var body cartBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCartFlow(t *testing.T) {
	item := &models.Item{ID: uuid.New(), Name: "Velvet Scrunchie", Price: decimal.RequireFromString("149.00"), InStock: true}
	router := newCartRouter(t, item)

	// empty cart comes back as an empty list, not null
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeCart(t, rec)
	assert.NotNil(t, body.Data.Lines)
	assert.Equal(t, 0, body.Data.TotalItems)

	// add twice
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"itemId":"`+item.ID.String()+`"}`))
		req.Header.Set("Content-Type", "application/json")
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	body = decodeCart(t, rec)
	require.Len(t, body.Data.Lines, 1)
	assert.Equal(t, 2, body.Data.Lines[0].Quantity)
	assert.Equal(t, "298", body.Data.TotalPrice)

	// set absolute quantity
	req := httptest.NewRequest(http.MethodPatch, "/cart/items/"+item.ID.String(), strings.NewReader(`{"quantity":5}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decodeCart(t, rec).Data.TotalItems)

	// zero quantity removes the line
	req = httptest.NewRequest(http.MethodPatch, "/cart/items/"+item.ID.String(), strings.NewReader(`{"quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Data.Lines)
}

func TestAddUnknownItemReturns404(t *testing.T) {
	router := newCartRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"itemId":"`+uuid.NewString()+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItemRejectsMalformedBody(t *testing.T) {
	router := newCartRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"itemId":"not-a-uuid"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
