package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a sellable catalog entry. Images holds the gallery; ImageURL is the
// legacy single-image column kept for older catalog rows.
type Item struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SubcategoryID uuid.UUID       `gorm:"column:subcategory_id;type:uuid;not null;index" json:"subcategoryId"`
	Name          string          `gorm:"column:name;not null" json:"name"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	InStock       bool            `gorm:"column:in_stock;not null;default:true" json:"inStock"`
	ImageURL      *string         `gorm:"column:image_url" json:"imageUrl,omitempty"`
	Images        []string        `gorm:"column:images;type:jsonb;serializer:json" json:"images,omitempty"`
	Description   string          `gorm:"column:description;not null;default:''" json:"description"`
	SortOrder     int             `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

const placeholderImage = "https://via.placeholder.com/400x400/F8D4DC/2C2C2C?text=No+Image"

// GalleryImages returns the displayable image URLs for the item: the images
// array when populated, then the legacy single URL, then a placeholder.
func (i Item) GalleryImages() []string {
	out := make([]string, 0, len(i.Images))
	for _, url := range i.Images {
		if url != "" {
			out = append(out, url)
		}
	}
	if len(out) > 0 {
		return out
	}
	if i.ImageURL != nil && *i.ImageURL != "" {
		return []string{*i.ImageURL}
	}
	return []string{placeholderImage}
}

// PrimaryImage returns the first displayable image.
func (i Item) PrimaryImage() string {
	return i.GalleryImages()[0]
}
