// Package cart holds the per-session cart ledger and the registry of open
// cart sessions.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/swadishta/internal/menu"
)

// Line is a menu item snapshot plus how many of it were picked. Quantity is
// always at least 1.
type Line struct {
	menu.Item
	Quantity int `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ledger keeps lines in insertion order with at most one line per item id.
// It is not safe for concurrent use; Sessions serialises access.
type Ledger struct {
	lines []Line
}

func (l *Ledger) index(id string) int {
	for i := range l.lines {
		if l.lines[i].ID == id {
			return i
		}
	}
	return -1
}

// Add puts one more of it in the cart.
func (l *Ledger) Add(it menu.Item) {
	if i := l.index(it.ID); i >= 0 {
		l.lines[i].Quantity++
		return
	}
	l.lines = append(l.lines, Line{Item: it, Quantity: 1})
}

func (l *Ledger) Increment(id string) {
	if i := l.index(id); i >= 0 {
		l.lines[i].Quantity++
	}
}

// Decrement drops the line when its quantity would reach zero.
func (l *Ledger) Decrement(id string) {
	i := l.index(id)
	if i < 0 {
		return
	}
	if l.lines[i].Quantity > 1 {
		l.lines[i].Quantity--
		return
	}
	l.Remove(id)
}

func (l *Ledger) Remove(id string) {
	if i := l.index(id); i >= 0 {
		l.lines = append(l.lines[:i], l.lines[i+1:]...)
	}
}

// Quantity reports 0 for items not in the cart.
func (l *Ledger) Quantity(id string) int {
	if i := l.index(id); i >= 0 {
		return l.lines[i].Quantity
	}
	return 0
}

func (l *Ledger) TotalItems() int {
	n := 0
	for _, ln := range l.lines {
		n += ln.Quantity
	}
	return n
}

func (l *Ledger) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, ln := range l.lines {
		total = total.Add(ln.Subtotal())
	}
	return total
}

// Lines returns a copy in insertion order.
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Ledger) Len() int      { return len(l.lines) }
func (l *Ledger) IsEmpty() bool { return len(l.lines) == 0 }
func (l *Ledger) Clear()        { l.lines = nil }
