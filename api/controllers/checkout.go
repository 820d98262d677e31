package controllers

import (
	"net/http"

	"github.com/cutiefy/cutiefy-backend/api/middleware"
	"github.com/cutiefy/cutiefy-backend/api/responses"
	"github.com/cutiefy/cutiefy-backend/api/validators"
	"github.com/cutiefy/cutiefy-backend/internal/orders"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
)

type checkoutRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact" validate:"required,len=10,numeric"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
}

// Checkout turns the session cart into a pending order.
func Checkout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Checkout(r.Context(), middleware.SessionIDFromContext(r.Context()), orders.CustomerDetails{
			Name:    req.Name,
			Contact: req.Contact,
			Email:   req.Email,
			Address: req.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"order": order})
	}
}
