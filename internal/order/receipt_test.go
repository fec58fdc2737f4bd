package order

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *Order {
	o := &Order{
		ID:           "4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a",
		CustomerName: "Asha",
		Mobile:       "9876543210",
		TableNumber:  "4",
		Items: []Line{
			{Name: "Butter Naan", Price: decimal.RequireFromString("100"), Quantity: 2},
			{Name: "Masala Chai", Price: decimal.RequireFromString("50"), Quantity: 1},
		},
		Status:    StatusPending,
		CreatedAt: time.Date(2024, 3, 1, 14, 15, 0, 0, time.UTC),
	}
	o.TotalAmount = o.LinesTotal()
	return o
}

func TestShortCode(t *testing.T) {
	assert.Equal(t, "4F9F2B2A", ShortCode("4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"))
	assert.Equal(t, "ABC", ShortCode("abc"))
}

func TestNewReceipt(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	r := NewReceipt(sampleOrder(), ist)
	assert.Equal(t, "#4F9F2B2A", r.ShortCode)
	assert.Equal(t, "Mar 1, 2024, 7:45 PM", r.Date)
	assert.Equal(t, "₹250.00", r.Total)
	require.Len(t, r.Lines, 2)
	assert.Equal(t, "₹200.00", r.Lines[0].Subtotal)
	assert.Equal(t, "₹100.00", r.Lines[0].Price)
}

func TestQRPayload(t *testing.T) {
	raw, err := QRPayload(sampleOrder())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a", got["orderId"])
	assert.Equal(t, float64(250), got["total"])
	assert.Equal(t, "2024-03-01T14:15:00Z", got["date"])
}

func TestQRCode_PNG(t *testing.T) {
	png, err := QRCode(sampleOrder(), 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
