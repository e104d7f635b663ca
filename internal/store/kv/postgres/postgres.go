// Package postgres is a kv backend on PostgreSQL via the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/knowyourrights/cards/server/internal/store/kv"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    namespace   TEXT        NOT NULL,
    entry_key   TEXT        NOT NULL,
    value       BYTEA       NOT NULL,
    update_time TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (namespace, entry_key)
)`

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type Backend struct{ db *sql.DB }

// New connects to dsn and ensures the schema exists.
func New(ctx context.Context, dsn string) (*Backend, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	b, err := NewWithDB(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// NewWithDB wires an existing connection and ensures the schema exists.
func NewWithDB(ctx context.Context, db *sql.DB) (*Backend, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("postgres schema: %w", err)
	}
	return &Backend{db: db}, nil
}

func (b *Backend) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var v []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE namespace=$1 AND entry_key=$2`, namespace, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (b *Backend) Set(ctx context.Context, namespace, key string, value []byte) error {
	_, err := b.db.ExecContext(ctx, `
        INSERT INTO kv_entries (namespace, entry_key, value) VALUES ($1,$2,$3)
        ON CONFLICT (namespace, entry_key) DO UPDATE SET value = EXCLUDED.value, update_time = now()
    `, namespace, key, value)
	return err
}

func (b *Backend) Delete(ctx context.Context, namespace, key string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE namespace=$1 AND entry_key=$2`, namespace, key)
	return err
}

func (b *Backend) Scan(ctx context.Context, namespace string, fn func(key string, value []byte) bool) error {
	rows, err := b.db.QueryContext(ctx, `SELECT entry_key, value FROM kv_entries WHERE namespace=$1`, namespace)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			k string
			v []byte
		)
		if err := rows.Scan(&k, &v); err != nil {
			return err
		}
		if !fn(k, v) {
			return nil
		}
	}
	return rows.Err()
}

// Ping implements kv.Pinger.
func (b *Backend) Ping(ctx context.Context) error { return b.db.PingContext(ctx) }

func (b *Backend) Close() error { return b.db.Close() }
