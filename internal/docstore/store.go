// Package docstore is the persistence boundary of the service: schemaless
// documents grouped in named collections, addressed by a store-assigned id.
//
// Three drivers implement Store: an in-process memory store, a Postgres
// JSONB table and Redis. Ordering is applied in Go after the fetch so every
// driver sorts the same way.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrNotFound = errors.New("document not found")
)

// queryTimeout bounds every single store round trip.
const queryTimeout = 5 * time.Second

// Fields is the body of a document. Values are JSON-compatible.
type Fields map[string]any

// Record is a document plus the id the store assigned to it.
type Record struct {
	ID     string
	Fields Fields
}

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// Store is the document-store contract consumed by the catalog and the
// order engine. Writes are atomic per document; there are no transactions
// spanning documents.
type Store interface {
	ListAll(ctx context.Context, collection, orderBy string, dir Direction) ([]Record, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Insert(ctx context.Context, collection string, fields Fields) (string, error)
	UpdateFields(ctx context.Context, collection, id string, patch Fields) error
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

// Encode turns a tagged struct into Fields through its JSON form. The "id"
// key is dropped: ids live outside the document body.
func Encode(v any) (Fields, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	f, err := unmarshalFields(raw)
	if err != nil {
		return nil, err
	}
	delete(f, "id")
	return f, nil
}

// Decode fills dst from the record, exposing the record id as "id".
func Decode(rec Record, dst any) error {
	body := make(Fields, len(rec.Fields)+1)
	for k, v := range rec.Fields {
		body[k] = v
	}
	body["id"] = rec.ID
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("decode document %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode document %s: %w", rec.ID, err)
	}
	return nil
}

func unmarshalFields(raw []byte) (Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var f Fields
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("document body: %w", err)
	}
	if f == nil {
		f = Fields{}
	}
	return f, nil
}

func merge(dst, patch Fields) Fields {
	if dst == nil {
		dst = Fields{}
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		dst[k] = v
	}
	return dst
}

// SortRecords orders recs by the orderBy field. Timestamps compare as
// instants, numbers numerically and everything else as text. Records that
// lack the field sort last in either direction. The sort is stable.
func SortRecords(recs []Record, orderBy string, dir Direction) {
	if orderBy == "" {
		return
	}
	sort.SliceStable(recs, func(i, j int) bool {
		a, aok := recs[i].Fields[orderBy]
		b, bok := recs[j].Fields[orderBy]
		switch {
		case !aok || a == nil:
			return false
		case !bok || b == nil:
			return true
		}
		c := compareValues(a, b)
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
}

func compareValues(a, b any) int {
	if ta, ok := asTime(a); ok {
		if tb, ok := asTime(b); ok {
			return ta.Compare(tb)
		}
	}
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		ts, err := time.Parse(time.RFC3339Nano, t)
		return ts, err == nil
	}
	return time.Time{}, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
