package orders

import (
	"context"

	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/cutiefy/cutiefy-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilters narrow the admin order listing.
type ListFilters struct {
	Status *enums.OrderStatus
}

// Repository exposes order persistence. All reads preload line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filters ListFilters) ([]models.Order, error)
	UpdateDispatch(ctx context.Context, order *models.Order) error
}
