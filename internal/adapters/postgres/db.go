package postgres

import (
	"context"
	"fmt"
	"time"

	"yt-tracker/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func InitDB(ctx context.Context, databaseURL string, log logger.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	cfg.MaxConns = 4
	cfg.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database not responding: %w", err)
	}

	log.Info("postgres connection established successfully")

	if err := runMigration(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func runMigration(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
	CREATE TABLE IF NOT EXISTS table_rows (
		id BIGSERIAL PRIMARY KEY,
		table_id TEXT NOT NULL,
		cells TEXT[] NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_table_rows_table_id ON table_rows (table_id, id);
	`
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to migrate table_rows table: %w", err)
	}
	return nil
}
