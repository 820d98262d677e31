package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level grouping in the catalog.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// Subcategory nests under a category and owns items.
type Subcategory struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;index" json:"categoryId"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	SortOrder  int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
