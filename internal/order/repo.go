package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MikeMC777/swadishta/internal/docstore"
)

const Collection = "orders"

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	MarkCompleted(ctx context.Context, id string, at time.Time) error
}

type DocRepo struct{ store docstore.Store }

func NewDocRepo(store docstore.Store) *DocRepo { return &DocRepo{store: store} }

// Create stores o and sets its ID.
func (r *DocRepo) Create(ctx context.Context, o *Order) error {
	fields, err := docstore.Encode(o)
	if err != nil {
		return err
	}
	id, err := r.store.Insert(ctx, Collection, fields)
	if err != nil {
		return err
	}
	o.ID = id
	return nil
}

func (r *DocRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	rec, err := r.store.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o, err := decodeOrder(rec)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns every order newest first.
func (r *DocRepo) List(ctx context.Context) ([]Order, error) {
	recs, err := r.store.ListAll(ctx, Collection, "createdAt", docstore.Desc)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(recs))
	for _, rec := range recs {
		o, err := decodeOrder(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// MarkCompleted writes the status flip as one single-document update.
func (r *DocRepo) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	err := r.store.UpdateFields(ctx, Collection, id, docstore.Fields{
		"status":      string(StatusCompleted),
		"completedAt": at.UTC().Format(time.RFC3339Nano),
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// decodeOrder refuses documents whose status is outside the lifecycle.
func decodeOrder(rec docstore.Record) (Order, error) {
	var o Order
	if err := docstore.Decode(rec, &o); err != nil {
		return Order{}, err
	}
	if !o.Status.Valid() {
		return Order{}, fmt.Errorf("order %s: unknown status %q", rec.ID, o.Status)
	}
	return o, nil
}
