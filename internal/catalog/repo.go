package catalog

import (
	"context"

	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) ListSubcategories(ctx context.Context, categoryID *uuid.UUID) ([]models.Subcategory, error) {
	query := r.db.WithContext(ctx)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var subcategories []models.Subcategory
	err := query.
		Order("sort_order ASC, name ASC").
		Find(&subcategories).Error
	if err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (r *repository) ListItems(ctx context.Context, subcategoryID *uuid.UUID) ([]models.Item, error) {
	query := r.db.WithContext(ctx)
	if subcategoryID != nil {
		query = query.Where("subcategory_id = ?", *subcategoryID)
	}

	var items []models.Item
	err := query.
		Order("sort_order ASC, name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}
