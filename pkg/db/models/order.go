package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cutiefy/cutiefy-backend/pkg/enums"
)

// Order is the frozen result of a checkout. Items are a value copy of the cart
// lines at checkout time; later cart mutations never touch a placed order.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerName    string            `gorm:"column:customer_name;not null" json:"customerName"`
	Contact         string            `gorm:"column:contact;not null" json:"contact"`
	Email           string            `gorm:"column:email;not null" json:"email"`
	Address         string            `gorm:"column:address;not null" json:"address"`
	Status          enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	OrderValue      decimal.Decimal   `gorm:"column:order_value;type:numeric(12,2);not null" json:"orderValue"`
	DeliveryCharges decimal.Decimal   `gorm:"column:delivery_charges;type:numeric(12,2);not null;default:0" json:"deliveryCharges"`
	DiscountApplied decimal.Decimal   `gorm:"column:discount_applied;type:numeric(12,2);not null;default:0" json:"discountApplied"`
	PaymentReceived decimal.Decimal   `gorm:"column:payment_received;type:numeric(12,2);not null;default:0" json:"paymentReceived"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"cartItems"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	DispatchedAt    *time.Time        `gorm:"column:dispatched_at" json:"dispatchedAt,omitempty"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// FinalPayable is advisory: order value plus delivery charges minus discount.
// It is recomputed on read and never stored.
func (o Order) FinalPayable() decimal.Decimal {
	return o.OrderValue.Add(o.DeliveryCharges).Sub(o.DiscountApplied)
}

// OrderItem snapshots one cart line. Image URLs are dropped at checkout.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"-"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"-"`
	ItemID    uuid.UUID       `gorm:"column:item_id;type:uuid;not null" json:"itemId"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
}
