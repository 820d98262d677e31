package notifications

import (
	"time"

	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/cutiefy/cutiefy-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// eventTypeAttribute is the message attribute consumers filter on.
const eventTypeAttribute = "event_type"

// EventItem is one order line carried in the event payload.
type EventItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// OrderEvent is the payload published for both lifecycle events. Dispatch
// amounts are zero for order-placed events.
type OrderEvent struct {
	EventID         uuid.UUID              `json:"event_id"`
	Kind            enums.NotificationKind `json:"kind"`
	OrderID         uuid.UUID              `json:"order_id"`
	CustomerName    string                 `json:"customer_name"`
	CustomerEmail   string                 `json:"customer_email"`
	Contact         string                 `json:"contact"`
	OrderValue      decimal.Decimal        `json:"order_value"`
	DeliveryCharges decimal.Decimal        `json:"delivery_charges"`
	DiscountApplied decimal.Decimal        `json:"discount_applied"`
	PaymentReceived decimal.Decimal        `json:"payment_received"`
	Items           []EventItem            `json:"items"`
	OccurredAt      time.Time              `json:"occurred_at"`
}

func eventFromOrder(kind enums.NotificationKind, order *models.Order, now time.Time) OrderEvent {
	event := OrderEvent{
		EventID:         uuid.New(),
		Kind:            kind,
		OrderID:         order.ID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.Email,
		Contact:         order.Contact,
		OrderValue:      order.OrderValue,
		DeliveryCharges: order.DeliveryCharges,
		DiscountApplied: order.DiscountApplied,
		PaymentReceived: order.PaymentReceived,
		OccurredAt:      now.UTC(),
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, EventItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return event
}
