package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgKVExecutor is the subset of pgxpool.Pool used by PgKVStore.
type pgKVExecutor interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgKVStore keeps values in the kv_store table created by the goose migrations.
type PgKVStore struct {
	pool    pgKVExecutor
	timeout time.Duration
}

func NewPgKVStore(pool *pgxpool.Pool, timeout time.Duration) *PgKVStore {
	if pool == nil {
		return nil
	}
	return newPgKVStore(pool, timeout)
}

func newPgKVStore(pool pgKVExecutor, timeout time.Duration) *PgKVStore {
	if timeout <= 0 {
		timeout = defaultKVTimeout
	}
	return &PgKVStore{pool: pool, timeout: timeout}
}

func (s *PgKVStore) Get(key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	const query = `
		SELECT value
		FROM kv_store
		WHERE key = $1
	`
	var value string
	err = s.pool.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *PgKVStore) Set(key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	const query = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = EXCLUDED.updated_at
	`
	_, err = s.pool.Exec(ctx, query, key, value, time.Now().UTC())
	return err
}

func (s *PgKVStore) Delete(key string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	const query = `DELETE FROM kv_store WHERE key = $1`
	_, err = s.pool.Exec(ctx, query, key)
	return err
}
