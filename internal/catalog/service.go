package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	pkgerrors "github.com/cutiefy/cutiefy-backend/pkg/errors"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	pkgredis "github.com/cutiefy/cutiefy-backend/pkg/redis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const cacheTTL = 5 * time.Minute

type listCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// Service is the read-only catalog browsed by the storefront. List results
// are served through a Redis read-through cache; cache failures fall back to
// the database.
type Service interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListSubcategories(ctx context.Context, categoryID *uuid.UUID) ([]models.Subcategory, error)
	ListItems(ctx context.Context, subcategoryID *uuid.UUID) ([]models.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

type service struct {
	repo  Repository
	cache listCache
	logg  *logger.Logger
}

// NewService builds a catalog service. The cache is optional; passing nil
// disables caching entirely.
func NewService(repo Repository, cache listCache, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, logg: logg}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var key string
	if s.cache != nil {
		key = s.cache.CacheKey("catalog", "categories")
		var cached []models.Category
		if s.readCache(ctx, key, &cached) {
			return cached, nil
		}
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	s.writeCache(ctx, key, categories)
	return categories, nil
}

func (s *service) ListSubcategories(ctx context.Context, categoryID *uuid.UUID) ([]models.Subcategory, error) {
	var key string
	if s.cache != nil {
		scope := "all"
		if categoryID != nil {
			scope = categoryID.String()
		}
		key = s.cache.CacheKey("catalog", "subcategories", scope)
		var cached []models.Subcategory
		if s.readCache(ctx, key, &cached) {
			return cached, nil
		}
	}

	subcategories, err := s.repo.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subcategories")
	}
	s.writeCache(ctx, key, subcategories)
	return subcategories, nil
}

func (s *service) ListItems(ctx context.Context, subcategoryID *uuid.UUID) ([]models.Item, error) {
	var key string
	if s.cache != nil {
		scope := "all"
		if subcategoryID != nil {
			scope = subcategoryID.String()
		}
		key = s.cache.CacheKey("catalog", "items", scope)
		var cached []models.Item
		if s.readCache(ctx, key, &cached) {
			return cached, nil
		}
	}

	items, err := s.repo.ListItems(ctx, subcategoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	s.writeCache(ctx, key, items)
	return items, nil
}

func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	item, err := s.repo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return item, nil
}

func (s *service) readCache(ctx context.Context, key string, out any) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != pkgredis.Nil {
			s.logg.Warn(ctx, "catalog cache read failed: "+err.Error())
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logg.Warn(ctx, "catalog cache entry corrupt: "+err.Error())
		return false
	}
	return true
}

func (s *service) writeCache(ctx context.Context, key string, value any) {
	if s.cache == nil || key == "" {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, cacheTTL); err != nil {
		s.logg.Warn(ctx, "catalog cache write failed: "+err.Error())
	}
}
