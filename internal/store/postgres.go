package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `CREATE TABLE IF NOT EXISTS records (
	key   TEXT PRIMARY KEY,
	value JSONB NOT NULL
)`

// PGStore keeps every record in a single key/value table. It exists for
// deployments that want the collections to outlive the host filesystem; the
// record layout is identical to the file backend.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(ctx context.Context, dbURL string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Close() { s.pool.Close() }

func (s *PGStore) Get(key string, v any) bool {
	var data []byte
	err := s.pool.QueryRow(context.Background(),
		`SELECT value FROM records WHERE key = $1`, key,
	).Scan(&data)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (s *PGStore) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.pool.Exec(context.Background(),
		`INSERT INTO records (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, data,
	)
	return err
}

func (s *PGStore) Remove(key string) error {
	_, err := s.pool.Exec(context.Background(),
		`DELETE FROM records WHERE key = $1`, key)
	return err
}
