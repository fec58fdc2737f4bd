package order

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/MikeMC777/swadishta/internal/money"
)

const (
	RestaurantName    = "Swadishta"
	RestaurantTagline = "Premium Indian Cuisine"

	receiptDateLayout = "Jan 2, 2006, 3:04 PM"
	DefaultQRSize     = 256
)

// ShortCode is the last eight characters of id, upper-cased.
func ShortCode(id string) string {
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// ReceiptLine is one printable row.
type ReceiptLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

// Receipt is the display model of a submitted order.
// swagger:model Receipt
type Receipt struct {
	Restaurant   string        `json:"restaurant"`
	Tagline      string        `json:"tagline"`
	OrderID      string        `json:"orderId"`
	ShortCode    string        `json:"shortCode" example:"#9F2B2A1C"`
	Date         string        `json:"date"      example:"Mar 1, 2024, 7:45 PM"`
	CustomerName string        `json:"customerName"`
	Mobile       string        `json:"mobile"`
	TableNumber  string        `json:"tableNumber"`
	Lines        []ReceiptLine `json:"lines"`
	Total        string        `json:"total"     example:"₹250.00"`
	Status       Status        `json:"status"`
}

// NewReceipt renders o with dates shown in loc.
func NewReceipt(o *Order, loc *time.Location) Receipt {
	if loc == nil {
		loc = time.UTC
	}
	lines := make([]ReceiptLine, len(o.Items))
	for i, l := range o.Items {
		lines[i] = ReceiptLine{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    money.Format(l.Price),
			Subtotal: money.Format(l.Subtotal()),
		}
	}
	return Receipt{
		Restaurant:   RestaurantName,
		Tagline:      RestaurantTagline,
		OrderID:      o.ID,
		ShortCode:    "#" + ShortCode(o.ID),
		Date:         o.CreatedAt.In(loc).Format(receiptDateLayout),
		CustomerName: o.CustomerName,
		Mobile:       o.Mobile,
		TableNumber:  o.TableNumber,
		Lines:        lines,
		Total:        money.Format(o.TotalAmount),
		Status:       o.Status,
	}
}

type qrPayload struct {
	OrderID string      `json:"orderId"`
	Total   json.Number `json:"total"`
	Date    string      `json:"date"`
}

// QRPayload is the JSON embedded in the receipt's scannable code. It is for
// display only and never read back.
func QRPayload(o *Order) ([]byte, error) {
	return json.Marshal(qrPayload{
		OrderID: o.ID,
		Total:   json.Number(o.TotalAmount.String()),
		Date:    o.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

// QRCode renders QRPayload as a PNG with high error correction.
func QRCode(o *Order, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	payload, err := QRPayload(o)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(string(payload), qrcode.High, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
