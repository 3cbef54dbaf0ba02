package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// entity disimpan utuh sebagai jsonb, seq menjaga urutan insert
var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id   TEXT PRIMARY KEY,
		seq  BIGSERIAL,
		data JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS video_content (
		id   TEXT PRIMARY KEY,
		seq  BIGSERIAL,
		data JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS video_content_product_idx ON video_content ((data->>'productId'))`,
	`CREATE TABLE IF NOT EXISTS orders (
		id   TEXT PRIMARY KEY,
		seq  BIGSERIAL,
		data JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS documents (
		name       TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
