// Package menu is the catalog store: CRUD over menu entries kept in the
// menuItems collection.
package menu

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MikeMC777/swadishta/internal/docstore"
	"github.com/MikeMC777/swadishta/internal/money"
)

const Collection = "menuItems"

var (
	ErrNotFound = errors.New("menu item not found")
)

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]Item, error)
	Update(ctx context.Context, id string, req UpdateItemRequest) (*Item, error)
	Delete(ctx context.Context, id string) error
}

type DocRepo struct {
	store docstore.Store
	now   func() time.Time
}

func NewDocRepo(store docstore.Store) *DocRepo {
	return &DocRepo{store: store, now: time.Now}
}

// Create assigns ID and CreatedAt on it.
func (r *DocRepo) Create(ctx context.Context, it *Item) error {
	it.CreatedAt = r.now().UTC()
	fields, err := docstore.Encode(it)
	if err != nil {
		return err
	}
	id, err := r.store.Insert(ctx, Collection, fields)
	if err != nil {
		return err
	}
	it.ID = id
	return nil
}

func (r *DocRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	rec, err := r.store.Get(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var it Item
	if err := docstore.Decode(rec, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// List returns the catalog newest first.
func (r *DocRepo) List(ctx context.Context) ([]Item, error) {
	recs, err := r.store.ListAll(ctx, Collection, "createdAt", docstore.Desc)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(recs))
	for _, rec := range recs {
		var it Item
		if err := docstore.Decode(rec, &it); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// Update writes only the fields present in req and returns the re-read item.
func (r *DocRepo) Update(ctx context.Context, id string, req UpdateItemRequest) (*Item, error) {
	patch := docstore.Fields{}
	if req.Name != nil {
		patch["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		patch["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		p, err := money.Parse(*req.Price)
		if err != nil {
			return nil, err
		}
		patch["price"] = p.String()
	}
	if req.ImageURL != nil {
		patch["imageUrl"] = strings.TrimSpace(*req.ImageURL)
	}

	err := r.store.UpdateFields(ctx, Collection, id, patch)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *DocRepo) Delete(ctx context.Context, id string) error {
	err := r.store.Delete(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
