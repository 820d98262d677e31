package controllers

import (
	"net/http"

	"github.com/cutiefy/cutiefy-backend/api/responses"
	"github.com/cutiefy/cutiefy-backend/api/validators"
	"github.com/cutiefy/cutiefy-backend/internal/catalog"
	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// itemResponse flattens the image fallback so the storefront never has to
// care which image column a row was written with.
type itemResponse struct {
	ID            string          `json:"id"`
	SubcategoryID string          `json:"subcategoryId"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	InStock       bool            `json:"inStock"`
	Images        []string        `json:"images"`
	Description   string          `json:"description"`
	Order         int             `json:"order"`
}

func toItemResponse(item models.Item) itemResponse {
	return itemResponse{
		ID:            item.ID.String(),
		SubcategoryID: item.SubcategoryID.String(),
		Name:          item.Name,
		Price:         item.Price,
		InStock:       item.InStock,
		Images:        item.GalleryImages(),
		Description:   item.Description,
		Order:         item.SortOrder,
	}
}

func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

func ListSubcategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.OptionalUUIDQuery(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		subcategories, err := svc.ListSubcategories(r.Context(), categoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"subcategories": subcategories})
	}
}

func ListItems(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subcategoryID, err := validators.OptionalUUIDQuery(r, "subcategory_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListItems(r.Context(), subcategoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]itemResponse, 0, len(items))
		for _, item := range items {
			out = append(out, toItemResponse(item))
		}
		responses.WriteSuccess(w, map[string]any{"items": out})
	}
}

func GetItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "itemID"), "item id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"item": toItemResponse(*item)})
	}
}
