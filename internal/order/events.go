package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type EventType string

const (
	EventSubmitted EventType = "order.submitted"
	EventCompleted EventType = "order.completed"
)

// Event is the message other back-office systems receive about an order.
type Event struct {
	Type        EventType       `json:"type"`
	OrderID     string          `json:"orderId"`
	Status      Status          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TableNumber string          `json:"tableNumber"`
	ItemCount   int             `json:"itemCount"`
	OccurredAt  time.Time       `json:"occurredAt"`
}

func newEvent(t EventType, o *Order, at time.Time) Event {
	return Event{
		Type:        t,
		OrderID:     o.ID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		TableNumber: o.TableNumber,
		ItemCount:   o.ItemCount(),
		OccurredAt:  at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// LogPublisher writes events to the service log only.
type LogPublisher struct{ log *zap.Logger }

func NewLogPublisher(log *zap.Logger) *LogPublisher { return &LogPublisher{log: log} }

func (p *LogPublisher) Publish(_ context.Context, ev Event) error {
	p.log.Info("order event",
		zap.String("type", string(ev.Type)),
		zap.String("order_id", ev.OrderID),
		zap.String("status", string(ev.Status)),
		zap.String("total", ev.TotalAmount.StringFixed(2)),
		zap.String("table", ev.TableNumber),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
