package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Postgres persists snapshot keys in a key/value table. All keys of one
// snapshot are upserted inside a single transaction so the snapshot lands
// as a unit.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps an existing database handle.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the snapshot table when it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS school_snapshots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return nil
}

// Load returns the stored value for key.
func (p *Postgres) Load(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `SELECT value FROM school_snapshots WHERE key = $1`
	var value string
	if err := p.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Save upserts every key of the snapshot within one transaction.
func (p *Postgres) Save(ctx context.Context, snapshot map[string][]byte) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	const query = `INSERT INTO school_snapshots (key, value, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	now := time.Now().UTC()
	for key, value := range snapshot {
		if _, err := tx.ExecContext(ctx, query, key, string(value), now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert snapshot %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}
