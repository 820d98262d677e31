package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cutiefy/cutiefy-backend/api/responses"
	"github.com/cutiefy/cutiefy-backend/api/validators"
	"github.com/cutiefy/cutiefy-backend/internal/orders"
	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/cutiefy/cutiefy-backend/pkg/enums"
	pkgerrors "github.com/cutiefy/cutiefy-backend/pkg/errors"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type orderResponse struct {
	models.Order
	FinalPayable decimal.Decimal `json:"finalPayable"`
}

func toOrderResponses(list []models.Order) []orderResponse {
	out := make([]orderResponse, 0, len(list))
	for _, order := range list {
		out = append(out, orderResponse{Order: order, FinalPayable: order.FinalPayable()})
	}
	return out
}

func parseStatusFilter(r *http.Request) (orders.ListFilters, error) {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return orders.ListFilters{}, nil
	}
	status, err := enums.ParseOrderStatus(raw)
	if err != nil {
		return orders.ListFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
	}
	return orders.ListFilters{Status: &status}, nil
}

func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseStatusFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orders": toOrderResponses(list)})
	}
}

func AdminGetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderID"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"order": orderResponse{Order: *order, FinalPayable: order.FinalPayable()}})
	}
}

type dispatchRequest struct {
	PaymentReceived decimal.Decimal `json:"paymentReceived" validate:"required"`
	DeliveryCharges decimal.Decimal `json:"deliveryCharges"`
	DiscountApplied decimal.Decimal `json:"discountApplied"`
}

func AdminDispatchOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "orderID"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req dispatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Dispatch(r.Context(), id, orders.DispatchInput{
			PaymentReceived: req.PaymentReceived,
			DeliveryCharges: req.DeliveryCharges,
			DiscountApplied: req.DiscountApplied,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"order": orderResponse{Order: *order, FinalPayable: order.FinalPayable()}})
	}
}

// AdminOrdersFeed streams order snapshots over SSE so the console updates
// without polling from the browser.
func AdminOrdersFeed(watcher *orders.Watcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
			return
		}

		filters, err := parseStatusFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshots, cancel, err := watcher.Subscribe(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case snapshot, open := <-snapshots:
				if !open {
					return
				}
				payload, err := json.Marshal(map[string]any{"orders": toOrderResponses(snapshot)})
				if err != nil {
					logg.Error(r.Context(), "encoding orders feed snapshot", err)
					continue
				}
				fmt.Fprintf(w, "event: orders\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}

// AdminExportOrders downloads the dispatched-order report as CSV.
func AdminExportOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListDispatched(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", orders.ExportFilename(time.Now())))
		if err := orders.WriteDispatchedCSV(w, list); err != nil {
			logg.Error(r.Context(), "writing orders export", err)
		}
	}
}
