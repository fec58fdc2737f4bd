package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memDoc struct {
	seq  uint64
	body []byte
}

// MemoryStore keeps documents in process memory as serialised JSON, so
// callers never share maps with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	seq  uint64
	docs map[string]map[string]memDoc
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]map[string]memDoc{}}
}

func (m *MemoryStore) ListAll(ctx context.Context, collection, orderBy string, dir Direction) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	type entry struct {
		id string
		d  memDoc
	}
	entries := make([]entry, 0, len(m.docs[collection]))
	for id, d := range m.docs[collection] {
		entries = append(entries, entry{id, d})
	}
	m.mu.RUnlock()

	// insertion order first, then the requested field
	sort.Slice(entries, func(i, j int) bool { return entries[i].d.seq < entries[j].d.seq })
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		f, err := unmarshalFields(e.d.body)
		if err != nil {
			return nil, err
		}
		out = append(out, Record{ID: e.id, Fields: f})
	}
	SortRecords(out, orderBy, dir)
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, collection, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	d, ok := m.docs[collection][id]
	m.mu.RUnlock()
	if !ok {
		return Record{}, ErrNotFound
	}
	f, err := unmarshalFields(d.body)
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, Fields: f}, nil
}

func (m *MemoryStore) Insert(ctx context.Context, collection string, fields Fields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	body, err := json.Marshal(merge(Fields{}, fields))
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[collection] == nil {
		m.docs[collection] = map[string]memDoc{}
	}
	m.seq++
	m.docs[collection][id] = memDoc{seq: m.seq, body: body}
	return id, nil
}

func (m *MemoryStore) UpdateFields(ctx context.Context, collection, id string, patch Fields) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[collection][id]
	if !ok {
		return ErrNotFound
	}
	f, err := unmarshalFields(d.body)
	if err != nil {
		return err
	}
	body, err := json.Marshal(merge(f, patch))
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	d.body = body
	m.docs[collection][id] = d
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.docs[collection], id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
