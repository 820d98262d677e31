package cart

import (
	"context"
	"fmt"

	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	pkgerrors "github.com/cutiefy/cutiefy-backend/pkg/errors"
	"github.com/google/uuid"
)

type itemReader interface {
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

// Service exposes the cart operations backed by the session store. Each
// mutation persists the cart before returning, so a reload always sees the
// latest state.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*Cart, error)
	RemoveItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store Store
	items itemReader
}

// NewService builds a cart service with the required dependencies.
func NewService(store Store, items itemReader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if items == nil {
		return nil, fmt.Errorf("item reader required")
	}
	return &service{store: store, items: items}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	return s.store.Load(ctx, sessionID)
}

func (s *service) AddItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}

	item, err := s.items.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.InStock {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item is out of stock")
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.AddItem(LineItem{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		ImageURL: item.PrimaryImage(),
	})
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(itemID)
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.UpdateQuantity(itemID, quantity)
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	return s.store.Delete(ctx, sessionID)
}
