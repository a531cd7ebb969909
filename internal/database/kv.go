package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"
)

// KV is a typed get/set pair over a single SQLite table. Load fails soft:
// any read error yields the caller's default instead of propagating. Save
// overwrites the full value at the key; last writer wins.
type KV struct {
	db *sql.DB
}

func NewKV(db *sql.DB) *KV { return &KV{db: db} }

func (k *KV) Migrate(ctx context.Context) error {
	_, err := k.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS kv_snapshots (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	taken_at TIMESTAMP NOT NULL
);
`)
	return err
}

// Load returns the value stored at key, or def when the key is absent or the
// read fails for any reason.
func (k *KV) Load(ctx context.Context, key string, def []byte) []byte {
	var value string
	err := k.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[kv] read %q failed, falling back to default: %v", key, err)
		}
		return def
	}
	return []byte(value)
}

// Save overwrites the value stored at key.
func (k *KV) Save(ctx context.Context, key string, value []byte) error {
	_, err := k.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (k *KV) Delete(ctx context.Context, key string) error {
	_, err := k.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Snapshot copies the current value at key into the snapshot table. A missing
// key is a no-op.
func (k *KV) Snapshot(ctx context.Context, key string) error {
	res, err := k.db.ExecContext(ctx, `
		INSERT INTO kv_snapshots (key, value, taken_at)
		SELECT key, value, ? FROM kv WHERE key = ?`,
		time.Now().UTC(), key,
	)
	if err != nil {
		return fmt.Errorf("snapshot %q: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Printf("[kv] snapshot skipped, nothing stored at %q", key)
	}
	return nil
}
