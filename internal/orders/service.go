package orders

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cutiefy/cutiefy-backend/internal/cart"
	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/cutiefy/cutiefy-backend/pkg/enums"
	pkgerrors "github.com/cutiefy/cutiefy-backend/pkg/errors"
	"github.com/cutiefy/cutiefy-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	contactPattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartAccess interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// Notifier publishes lifecycle events. Implementations are fire and forget;
// delivery failures never reach the caller.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *models.Order)
	OrderDispatched(ctx context.Context, order *models.Order)
}

type feed interface {
	Notify()
}

// Service owns the order lifecycle from checkout through dispatch.
type Service interface {
	Checkout(ctx context.Context, sessionID string, details CustomerDetails) (*models.Order, error)
	Dispatch(ctx context.Context, orderID uuid.UUID, input DispatchInput) (*models.Order, error)
	Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filters ListFilters) ([]models.Order, error)
	ListDispatched(ctx context.Context) ([]models.Order, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	carts    cartAccess
	notifier Notifier
	feed     feed
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the order service. The feed is optional; everything else
// is required.
func NewService(repo Repository, tx txRunner, carts cartAccess, notifier Notifier, feed feed, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart access required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		carts:    carts,
		notifier: notifier,
		feed:     feed,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func validateCustomerDetails(details CustomerDetails) error {
	fields := map[string]string{}
	if strings.TrimSpace(details.Name) == "" {
		fields["name"] = "name is required"
	}
	if !contactPattern.MatchString(details.Contact) {
		fields["contact"] = "contact must be exactly 10 digits"
	}
	if !emailPattern.MatchString(details.Email) {
		fields["email"] = "email is invalid"
	}
	if strings.TrimSpace(details.Address) == "" {
		fields["address"] = "address is required"
	}
	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid customer details").WithDetails(fields)
	}
	return nil
}

func (s *service) Checkout(ctx context.Context, sessionID string, details CustomerDetails) (*models.Order, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if err := validateCustomerDetails(details); err != nil {
		return nil, err
	}

	sessionCart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sessionCart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := &models.Order{
		ID:           uuid.New(),
		CustomerName: strings.TrimSpace(details.Name),
		Contact:      details.Contact,
		Email:        details.Email,
		Address:      strings.TrimSpace(details.Address),
		Status:       enums.OrderStatusPending,
		OrderValue:   sessionCart.TotalPrice(),
	}
	for _, line := range sessionCart.Lines {
		order.Items = append(order.Items, models.OrderItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	// The order is placed at this point; a failed cart wipe only means the
	// customer sees a stale cart.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logg.Warn(s.logg.WithOrderID(ctx, order.ID.String()), "clearing cart after checkout failed: "+err.Error())
	}

	s.notifier.OrderPlaced(ctx, order)
	s.notifyFeed()
	return order, nil
}

func (s *service) Dispatch(ctx context.Context, orderID uuid.UUID, input DispatchInput) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.PaymentReceived.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment received must be greater than zero")
	}
	if input.DeliveryCharges.IsNegative() || input.DiscountApplied.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "charges and discount cannot be negative")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.Status == enums.OrderStatusDispatched {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already dispatched")
	}

	dispatchedAt := s.now().UTC()
	order.Status = enums.OrderStatusDispatched
	order.PaymentReceived = input.PaymentReceived
	order.DeliveryCharges = input.DeliveryCharges
	order.DiscountApplied = input.DiscountApplied
	order.DispatchedAt = &dispatchedAt

	if err := s.repo.UpdateDispatch(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}

	s.notifier.OrderDispatched(ctx, order)
	s.notifyFeed()
	return order, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	orders, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) ListDispatched(ctx context.Context) ([]models.Order, error) {
	status := enums.OrderStatusDispatched
	return s.List(ctx, ListFilters{Status: &status})
}

func (s *service) notifyFeed() {
	if s.feed != nil {
		s.feed.Notify()
	}
}
