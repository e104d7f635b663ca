// Package sqlite is a file-backed kv backend using the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/knowyourrights/cards/server/internal/store/kv"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    namespace   TEXT NOT NULL,
    entry_key   TEXT NOT NULL,
    value       BLOB NOT NULL,
    update_time TIMESTAMP NOT NULL,
    PRIMARY KEY (namespace, entry_key)
)`

// Open opens (or creates) a SQLite database at the given path and enables WAL journal mode.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; keep one connection to avoid SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type Backend struct{ db *sql.DB }

// New opens path and ensures the schema exists.
func New(ctx context.Context, path string) (*Backend, error) {
	db, err := Open(path)
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
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &Backend{db: db}, nil
}

func (b *Backend) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	var v []byte
	err := b.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE namespace = ? AND entry_key = ?`, namespace, key).Scan(&v)
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
        INSERT INTO kv_entries (namespace, entry_key, value, update_time) VALUES (?,?,?,?)
        ON CONFLICT (namespace, entry_key) DO UPDATE SET value = excluded.value, update_time = excluded.update_time
    `, namespace, key, value, time.Now().UTC())
	return err
}

func (b *Backend) Delete(ctx context.Context, namespace, key string) error {
	_, err := b.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE namespace = ? AND entry_key = ?`, namespace, key)
	return err
}

// Scan reads the namespace fully before calling fn; the single connection
// would otherwise be held while fn runs.
func (b *Backend) Scan(ctx context.Context, namespace string, fn func(key string, value []byte) bool) error {
	rows, err := b.db.QueryContext(ctx, `SELECT entry_key, value FROM kv_entries WHERE namespace = ?`, namespace)
	if err != nil {
		return err
	}
	type row struct {
		key string
		val []byte
	}
	var all []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.key, &r.val); err != nil {
			_ = rows.Close()
			return err
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	if err := rows.Close(); err != nil {
		return err
	}
	for _, r := range all {
		if !fn(r.key, r.val) {
			return nil
		}
	}
	return nil
}

func (b *Backend) Ping(ctx context.Context) error { return b.db.PingContext(ctx) }

func (b *Backend) Close() error { return b.db.Close() }
