package catalog

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	pkgerrors "github.com/cutiefy/cutiefy-backend/pkg/errors"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	pkgredis "github.com/cutiefy/cutiefy-backend/pkg/redis"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRepo struct {
	categories    []models.Category
	subcategories []models.Subcategory
	items         []models.Item
	listCalls     int
	findErr       error
}

func (s *stubRepo) WithTx(*gorm.DB) Repository { return s }

func (s *stubRepo) ListCategories(context.Context) ([]models.Category, error) {
	s.listCalls++
	return s.categories, nil
}

func (s *stubRepo) ListSubcategories(context.Context, *uuid.UUID) ([]models.Subcategory, error) {
	s.listCalls++
	return s.subcategories, nil
}

func (s *stubRepo) ListItems(context.Context, *uuid.UUID) ([]models.Item, error) {
	s.listCalls++
	return s.items, nil
}

func (s *stubRepo) FindItemByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{values: make(map[string]string)} }

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = string(value.([]byte))
	return nil
}

func (f *fakeCache) CacheKey(parts ...string) string {
	key := "cutiefy:cache"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func TestServiceListCategoriesCachesResult(t *testing.T) {
	repo := &stubRepo{categories: []models.Category{{ID: uuid.New(), Name: "Hair"}}}
	cache := newFakeCache()
	svc, err := NewService(repo, cache, testLogger())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 1, repo.listCalls)
}

func TestServiceCorruptCacheFallsBack(t *testing.T) {
	repo := &stubRepo{items: []models.Item{{ID: uuid.New(), Name: "Clip", Price: decimal.New(99, 0)}}}
	cache := newFakeCache()
	cache.values[cache.CacheKey("catalog", "items", "all")] = "{not json"
	svc, err := NewService(repo, cache, testLogger())
	require.NoError(t, err)

	items, err := svc.ListItems(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, repo.listCalls)
}

func TestServiceNilCacheGoesStraightToRepo(t *testing.T) {
	repo := &stubRepo{categories: []models.Category{{ID: uuid.New(), Name: "Hair"}}}
	svc, err := NewService(repo, nil, testLogger())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	_, err = svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestServiceGetItem(t *testing.T) {
	item := models.Item{ID: uuid.New(), Name: "Bow", Price: decimal.New(199, 0)}
	repo := &stubRepo{items: []models.Item{item}}
	svc, err := NewService(repo, nil, testLogger())
	require.NoError(t, err)
	ctx := context.Background()

	found, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Name, found.Name)

	_, err = svc.GetItem(ctx, uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	_, err = svc.GetItem(ctx, uuid.Nil)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}
