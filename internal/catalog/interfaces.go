package catalog

import (
	"context"

	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes the read side of the catalog tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListCategories(ctx context.Context) ([]models.Category, error)
	ListSubcategories(ctx context.Context, categoryID *uuid.UUID) ([]models.Subcategory, error)
	ListItems(ctx context.Context, subcategoryID *uuid.UUID) ([]models.Item, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
}
