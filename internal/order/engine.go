// Package order turns cart snapshots into persisted orders and drives the
// single pending -> completed transition.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MikeMC777/swadishta/internal/cart"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Transition reports the outcome of Complete.
type Transition struct {
	Order            *Order
	AlreadyCompleted bool
}

// Engine holds no order state of its own; every read goes to the repository.
type Engine struct {
	repo Repository
	pub  Publisher
	log  *zap.Logger
	now  func() time.Time
}

type Option func(*Engine)

// WithClock replaces the clock used for creation and completion times.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithPublisher(p Publisher) Option {
	return func(e *Engine) { e.pub = p }
}

func NewEngine(repo Repository, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{repo: repo, pub: NopPublisher{}, log: log, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Submit freezes the lines, stores a pending order and returns it with its
// assigned id. Nothing is stored when validation fails or the cart is empty.
func (e *Engine) Submit(ctx context.Context, c Customer, lines []cart.Line) (*Order, error) {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		CustomerName: c.Name,
		Mobile:       c.Mobile,
		TableNumber:  c.TableNumber,
		Items:        Freeze(lines),
		Status:       StatusPending,
		CreatedAt:    e.now().UTC(),
	}
	o.TotalAmount = o.LinesTotal()

	if err := e.repo.Create(ctx, o); err != nil {
		e.log.Error("submit order failed",
			zap.String("customer", o.CustomerName),
			zap.String("table", o.TableNumber),
			zap.Error(err))
		return nil, fmt.Errorf("store order: %w", err)
	}
	e.log.Info("order submitted",
		zap.String("order_id", o.ID),
		zap.String("table", o.TableNumber),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.Int("lines", len(o.Items)))

	e.publish(ctx, newEvent(EventSubmitted, o, o.CreatedAt))
	return o, nil
}

// Complete moves a pending order to completed. Completing an order that is
// already completed writes nothing and sets AlreadyCompleted.
func (e *Engine) Complete(ctx context.Context, id string) (Transition, error) {
	o, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return Transition{}, err
	}
	if o.Status == StatusCompleted {
		e.log.Warn("order already completed", zap.String("order_id", id))
		return Transition{Order: o, AlreadyCompleted: true}, nil
	}
	if !o.Status.CanTransitionTo(StatusCompleted) {
		return Transition{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, StatusCompleted)
	}

	at := e.now().UTC()
	if err := e.repo.MarkCompleted(ctx, id, at); err != nil {
		e.log.Error("complete order failed", zap.String("order_id", id), zap.Error(err))
		return Transition{}, fmt.Errorf("store status: %w", err)
	}

	// re-read what the store now holds
	updated, err := e.repo.GetByID(ctx, id)
	if err != nil {
		e.log.Warn("re-read after completion failed", zap.String("order_id", id), zap.Error(err))
		o.Status = StatusCompleted
		o.CompletedAt = &at
		updated = o
	}
	e.log.Info("order completed", zap.String("order_id", id))
	e.publish(ctx, newEvent(EventCompleted, updated, at))
	return Transition{Order: updated}, nil
}

func (e *Engine) Get(ctx context.Context, id string) (*Order, error) {
	return e.repo.GetByID(ctx, id)
}

// List fetches every order, newest first.
func (e *Engine) List(ctx context.Context) ([]Order, error) {
	return e.repo.List(ctx)
}

// publish never fails the caller; the order is already stored.
func (e *Engine) publish(ctx context.Context, ev Event) {
	if err := e.pub.Publish(ctx, ev); err != nil {
		e.log.Warn("publish order event failed",
			zap.String("type", string(ev.Type)),
			zap.String("order_id", ev.OrderID),
			zap.Error(err))
	}
}
