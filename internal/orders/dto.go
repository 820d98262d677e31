package orders

import (
	"github.com/shopspring/decimal"
)

// CustomerDetails is the checkout form captured from the storefront.
type CustomerDetails struct {
	Name    string
	Contact string
	Email   string
	Address string
}

// DispatchInput carries the amounts entered by the admin when marking an
// order dispatched. Charges and discount default to zero when omitted.
type DispatchInput struct {
	PaymentReceived decimal.Decimal
	DeliveryCharges decimal.Decimal
	DiscountApplied decimal.Decimal
}
