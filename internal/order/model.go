package order

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/swadishta/internal/cart"
	"github.com/MikeMC777/swadishta/internal/validate"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// CanTransitionTo reports whether next is a legal successor of s. The only
// edge is pending -> completed.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next == StatusCompleted
}

// Line is a price-frozen copy of a cart line. It never refers back to the
// menu, so later menu edits leave past orders untouched.
type Line struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price" swaggertype:"string" example:"100.00"`
	Quantity int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customerName"`
	Mobile       string          `json:"mobile"`
	TableNumber  string          `json:"tableNumber"`
	Items        []Line          `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount" swaggertype:"string" example:"250.00"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
}

// LinesTotal recomputes the sum of the order's own line subtotals.
func (o *Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Items {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (o *Order) ItemCount() int {
	n := 0
	for _, l := range o.Items {
		n += l.Quantity
	}
	return n
}

// Customer is what the diner types into the checkout form.
type Customer struct {
	Name        string `json:"customerName" example:"Asha"`
	Mobile      string `json:"mobile"       example:"9876543210"`
	TableNumber string `json:"tableNumber"  example:"4"`
}

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

const (
	maxCustomerNameLen = 100
	maxTableNumberLen  = 10
)

// Normalize trims surrounding whitespace from every field.
func (c Customer) Normalize() Customer {
	return Customer{
		Name:        strings.TrimSpace(c.Name),
		Mobile:      strings.TrimSpace(c.Mobile),
		TableNumber: strings.TrimSpace(c.TableNumber),
	}
}

func (c Customer) Validate() error {
	var errs validate.Errors
	switch {
	case c.Name == "":
		errs.Add("customerName", "customer name is required")
	case len(c.Name) > maxCustomerNameLen:
		errs.Add("customerName", "customer name must not exceed 100 characters")
	}
	if !mobilePattern.MatchString(c.Mobile) {
		errs.Add("mobile", "mobile must be exactly 10 digits")
	}
	switch {
	case c.TableNumber == "":
		errs.Add("tableNumber", "table number is required")
	case len(c.TableNumber) > maxTableNumberLen:
		errs.Add("tableNumber", "table number must not exceed 10 characters")
	}
	return errs.Err()
}

// Freeze copies name, price and quantity out of each cart line.
func Freeze(lines []cart.Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Name: l.Name, Price: l.Price, Quantity: l.Quantity}
	}
	return out
}
