package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	op := "internal/storage/db.go Connect"

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: parse dsn: %w", op, err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: create pool: %w", op, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS logs (
	id              TEXT PRIMARY KEY,
	log_date        DATE NOT NULL,
	food_input      TEXT[] NOT NULL DEFAULT '{}',
	alcohol         BOOLEAN NOT NULL DEFAULT FALSE,
	bowel_movements TEXT NOT NULL,
	stress          SMALLINT NOT NULL DEFAULT 1 CHECK (stress BETWEEN 1 AND 10),
	pain            BOOLEAN NOT NULL DEFAULT FALSE,
	nausea          BOOLEAN NOT NULL DEFAULT FALSE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS logs_log_date_idx ON logs (log_date DESC, created_at DESC);

CREATE TABLE IF NOT EXISTS rapports (
	id           TEXT PRIMARY KEY,
	rapport_date DATE NOT NULL,
	result       TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates the tables when missing. It is safe to run on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	op := "internal/storage/db.go Migrate"

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
