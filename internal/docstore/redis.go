package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// maxUpdateRetries bounds optimistic WATCH retries on a contended document.
const maxUpdateRetries = 5

// RedisStore keeps each document as a JSON string at docstore:<col>:<id>
// and indexes ids in a sorted set scored by insertion sequence.
type RedisStore struct{ rdb *redis.Client }

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func OpenRedis(ctx context.Context, opts *redis.Options) (*RedisStore, error) {
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(rdb), nil
}

func docKey(collection, id string) string { return "docstore:" + collection + ":" + id }
func indexKey(collection string) string   { return "docstore:" + collection }
func seqKey(collection string) string     { return "docstore:" + collection + ":_seq" }

func (s *RedisStore) ListAll(ctx context.Context, collection, orderBy string, dir Direction) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	ids, err := s.rdb.ZRange(ctx, indexKey(collection), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Record{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = docKey(collection, id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(ids))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			// index entry without a body: deleted concurrently
			continue
		}
		f, err := unmarshalFields([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, Record{ID: ids[i], Fields: f})
	}
	SortRecords(out, orderBy, dir)
	return out, nil
}

func (s *RedisStore) Get(ctx context.Context, collection, id string) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	raw, err := s.rdb.Get(ctx, docKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	f, err := unmarshalFields(raw)
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, Fields: f}, nil
}

func (s *RedisStore) Insert(ctx context.Context, collection string, fields Fields) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	body, err := json.Marshal(merge(Fields{}, fields))
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	seq, err := s.rdb.Incr(ctx, seqKey(collection)).Result()
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, docKey(collection, id), body, 0)
		p.ZAdd(ctx, indexKey(collection), redis.Z{Score: float64(seq), Member: id})
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateFields is a read-merge-write guarded by WATCH on the document key.
func (s *RedisStore) UpdateFields(ctx context.Context, collection, id string, patch Fields) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	key := docKey(collection, id)
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		f, err := unmarshalFields(raw)
		if err != nil {
			return err
		}
		body, err := json.Marshal(merge(f, patch))
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", collection, id, err)
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, body, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update %s/%s: too much contention", collection, id)
}

func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var del *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, docKey(collection, id))
		p.ZRem(ctx, indexKey(collection), id)
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
