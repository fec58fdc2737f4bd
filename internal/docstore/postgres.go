package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	data       JSONB       NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, id)
)`

// PGStore keeps every collection in one JSONB table.
type PGStore struct{ db *sql.DB }

func NewPGStore(db *sql.DB) *PGStore { return &PGStore{db: db} }

// OpenPostgres opens a pool through the pgx database/sql driver and checks
// the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PGStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewPGStore(db), nil
}

func (s *PGStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *PGStore) ListAll(ctx context.Context, collection, orderBy string, dir Direction) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, data FROM documents
		WHERE collection = $1
		ORDER BY created_at, id
	`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		f, err := unmarshalFields(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, Record{ID: id, Fields: f})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	SortRecords(out, orderBy, dir)
	return out, nil
}

func (s *PGStore) Get(ctx context.Context, collection, id string) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var raw []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM documents WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
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

func (s *PGStore) Insert(ctx context.Context, collection string, fields Fields) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	body, err := json.Marshal(merge(Fields{}, fields))
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, collection, id, body); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateFields merges patch into the stored document in one statement.
func (s *PGStore) UpdateFields(ctx context.Context, collection, id string, patch Fields) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	body, err := json.Marshal(merge(Fields{}, patch))
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = NOW()
		WHERE collection = $1 AND id = $2
	`, collection, id, body)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (s *PGStore) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (s *PGStore) Close() error { return s.db.Close() }

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
