package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the postgres backend uses
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	selectSnapshotSQL = `SELECT value FROM snapshots WHERE key = $1`
	upsertSnapshotSQL = `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// PostgresKV stores snapshots in the snapshots table as JSONB
type PostgresKV struct {
	db Querier
}

// NewPostgres wraps a pool; the snapshots table must already be migrated
func NewPostgres(db Querier) *PostgresKV {
	return &PostgresKV{db: db}
}

func (p *PostgresKV) Name() string { return "postgres" }

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRow(ctx, selectSnapshotSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select snapshot %s: %w", key, err)
	}
	return value, nil
}

func (p *PostgresKV) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	// string keeps pgx from encoding the document as bytea
	if _, err := p.db.Exec(ctx, upsertSnapshotSQL, key, string(value)); err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", key, err)
	}
	return nil
}
