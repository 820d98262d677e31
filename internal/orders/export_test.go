package orders

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/cutiefy/cutiefy-backend/pkg/db/models"
	"github.com/cutiefy/cutiefy-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dispatchedOrder(t *testing.T) models.Order {
	t.Helper()
	created := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)
	dispatched := time.Date(2026, 8, 16, 18, 0, 0, 0, time.UTC)
	return models.Order{
		ID:              uuid.MustParse("7b1de1c2-91d3-4a5f-9a93-0d6f4f1f2a10"),
		CustomerName:    "Asha Rao",
		Contact:         "9876543210",
		Email:           "asha@example.com",
		Address:         `Flat 4B, "Rose Villa", MG Road, Mumbai`,
		Status:          enums.OrderStatusDispatched,
		OrderValue:      decimal.RequireFromString("1000"),
		DeliveryCharges: decimal.RequireFromString("150"),
		DiscountApplied: decimal.RequireFromString("50"),
		PaymentReceived: decimal.RequireFromString("1100"),
		Items: []models.OrderItem{
			{Name: "Velvet Scrunchie", Quantity: 2},
			{Name: "Pearl Clip", Quantity: 1},
		},
		CreatedAt:    created,
		DispatchedAt: &dispatched,
	}
}

func TestWriteDispatchedCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDispatchedCSV(&buf, []models.Order{dispatchedOrder(t)}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"Order ID", "Customer Name", "Contact", "Email", "Address", "Items",
		"Order Value", "Delivery Charges", "Discount Applied", "Payment Received",
		"Order Date", "Dispatch Date",
	}, records[0])

	row := records[1]
	assert.Equal(t, "7b1de1c2-91d3-4a5f-9a93-0d6f4f1f2a10", row[0])
	assert.Equal(t, "Asha Rao", row[1])
	assert.Equal(t, `Flat 4B, "Rose Villa", MG Road, Mumbai`, row[4])
	assert.Equal(t, "Velvet Scrunchie x2; Pearl Clip x1", row[5])
	assert.Equal(t, "1000", row[6])
	assert.Equal(t, "150", row[7])
	assert.Equal(t, "50", row[8])
	assert.Equal(t, "1100", row[9])
	assert.Equal(t, "14/08/2026", row[10])
	assert.Equal(t, "16/08/2026", row[11])
}

func TestWriteDispatchedCSVQuotesSpecialCharacters(t *testing.T) {
	order := dispatchedOrder(t)

	var buf bytes.Buffer
	require.NoError(t, WriteDispatchedCSV(&buf, []models.Order{order}))

	raw := buf.String()
	assert.Contains(t, raw, `"Flat 4B, ""Rose Villa"", MG Road, Mumbai"`)
}

func TestWriteDispatchedCSVEmptyReportStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDispatchedCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "dispatched-orders-2026-09-01.csv", ExportFilename(now))
}
