package orders

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
)

// csvDateLayout renders dates the way the admin spreadsheet expects.
const csvDateLayout = "02/01/2006"

var exportHeaders = []string{
	"Order ID",
	"Customer Name",
	"Contact",
	"Email",
	"Address",
	"Items",
	"Order Value",
	"Delivery Charges",
	"Discount Applied",
	"Payment Received",
	"Order Date",
	"Dispatch Date",
}

// ExportFilename names the download after the day it was generated.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("dispatched-orders-%s.csv", now.Format("2006-01-02"))
}

// WriteDispatchedCSV streams the dispatched-order report. Callers are
// expected to pass only dispatched orders; rows without a dispatch date get
// an empty cell rather than a zero time.
func WriteDispatchedCSV(w io.Writer, orders []models.Order) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, order := range orders {
		dispatchDate := ""
		if order.DispatchedAt != nil {
			dispatchDate = order.DispatchedAt.Format(csvDateLayout)
		}

		row := []string{
			order.ID.String(),
			order.CustomerName,
			order.Contact,
			order.Email,
			order.Address,
			formatItems(order.Items),
			order.OrderValue.String(),
			order.DeliveryCharges.String(),
			order.DiscountApplied.String(),
			order.PaymentReceived.String(),
			order.CreatedAt.Format(csvDateLayout),
			dispatchDate,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatItems joins line items as "name xQty; name xQty".
func formatItems(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}
	return strings.Join(parts, "; ")
}
