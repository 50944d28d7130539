package postgres

import (
	"context"
	"fmt"

	"yt-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Provider struct {
	db *pgxpool.Pool
}

func NewProvider(db *pgxpool.Pool) *Provider {
	return &Provider{db: db}
}

func (p *Provider) Open(ctx context.Context, tableID string) (domain.Table, error) {
	return &TableRepository{db: p.db, tableID: tableID}, nil
}

type TableRepository struct {
	db      *pgxpool.Pool
	tableID string
}

func (r *TableRepository) ReadAll(ctx context.Context) ([][]string, error) {
	query := `SELECT cells FROM table_rows WHERE table_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, r.tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowTo[[]string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan rows: %w", err)
	}

	return out, nil
}

func (r *TableRepository) Append(ctx context.Context, row []any, mode domain.InputMode) error {
	query := `INSERT INTO table_rows (table_id, cells) VALUES ($1, $2)`

	if _, err := r.db.Exec(ctx, query, r.tableID, domain.TextCells(row)); err != nil {
		return fmt.Errorf("failed to insert row: %w", err)
	}

	return nil
}

func (r *TableRepository) Clear(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM table_rows WHERE table_id = $1`, r.tableID); err != nil {
		return fmt.Errorf("failed to clear rows: %w", err)
	}
	return nil
}
