// Package report derives the staff views (live orders, history and sales
// analysis) from a fetched set of orders. Every function is pure and reads
// only the orders' own frozen lines, never the live menu.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/swadishta/internal/order"
)

// NoSalesLabel is shown in place of a top seller when nothing was sold.
const NoSalesLabel = "No sales yet"

const dayLayout = "2006-01-02"

// Day is a calendar date without a zone.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return DayOf(t, time.UTC), nil
}

// DayOf is the calendar day t falls on in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Day{Year: y, Month: m, Day: d}
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// LiveOrders keeps pending orders in their source order.
func LiveOrders(orders []order.Order) []order.Order {
	out := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == order.StatusPending {
			out = append(out, o)
		}
	}
	return out
}

// History returns completed orders, newest first. A non-nil day keeps only
// orders created on that calendar day in loc.
func History(orders []order.Order, day *Day, loc *time.Location) []order.Order {
	out := make([]order.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status != order.StatusCompleted {
			continue
		}
		if day != nil && DayOf(o.CreatedAt, loc) != *day {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// TotalRevenue sums completed orders over all time.
func TotalRevenue(orders []order.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status == order.StatusCompleted {
			total = total.Add(o.TotalAmount)
		}
	}
	return total
}

// TodayRevenue sums completed orders created on now's calendar day in loc.
func TodayRevenue(orders []order.Order, now time.Time, loc *time.Location) decimal.Decimal {
	today := DayOf(now, loc)
	total := decimal.Zero
	for _, o := range orders {
		if o.Status == order.StatusCompleted && DayOf(o.CreatedAt, loc) == today {
			total = total.Add(o.TotalAmount)
		}
	}
	return total
}

type ItemSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ItemSalesBreakdown totals units sold per item name across completed
// orders, highest first. Equal quantities keep first-encountered order.
func ItemSalesBreakdown(orders []order.Order) []ItemSales {
	idx := map[string]int{}
	var out []ItemSales
	for _, o := range orders {
		if o.Status != order.StatusCompleted {
			continue
		}
		for _, l := range o.Items {
			i, ok := idx[l.Name]
			if !ok {
				i = len(out)
				idx[l.Name] = i
				out = append(out, ItemSales{Name: l.Name})
			}
			out[i].Quantity += l.Quantity
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	if out == nil {
		out = []ItemSales{}
	}
	return out
}

// TopSeller is the head of a breakdown; ok is false when nothing was sold.
func TopSeller(breakdown []ItemSales) (ItemSales, bool) {
	if len(breakdown) == 0 {
		return ItemSales{Name: NoSalesLabel}, false
	}
	return breakdown[0], true
}

// Analysis is the bundle behind the sales analysis screen.
// swagger:model Analysis
type Analysis struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue" swaggertype:"string"`
	TodayRevenue    decimal.Decimal `json:"todayRevenue" swaggertype:"string"`
	CompletedOrders int             `json:"completedOrders"`
	PendingOrders   int             `json:"pendingOrders"`
	TopSeller       ItemSales       `json:"topSeller"`
	HasSales        bool            `json:"hasSales"`
	Items           []ItemSales     `json:"items"`
}

func Analyze(orders []order.Order, now time.Time, loc *time.Location) Analysis {
	a := Analysis{
		TotalRevenue: TotalRevenue(orders),
		TodayRevenue: TodayRevenue(orders, now, loc),
		Items:        ItemSalesBreakdown(orders),
	}
	for _, o := range orders {
		switch o.Status {
		case order.StatusCompleted:
			a.CompletedOrders++
		case order.StatusPending:
			a.PendingOrders++
		}
	}
	a.TopSeller, a.HasSales = TopSeller(a.Items)
	return a
}
