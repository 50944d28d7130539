package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"yt-tracker/internal/domain"
)

// Provider serves every table id out of one database file.
type Provider struct {
	db *sql.DB
}

func NewProvider(db *sql.DB) *Provider {
	return &Provider{db: db}
}

func (p *Provider) Open(ctx context.Context, tableID string) (domain.Table, error) {
	return &TableRepository{db: p.db, tableID: tableID}, nil
}

type TableRepository struct {
	db      *sql.DB
	tableID string
}

func (r *TableRepository) ReadAll(ctx context.Context) ([][]string, error) {
	query := `SELECT cells FROM table_rows WHERE table_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, r.tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}

		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("failed to decode row cells: %w", err)
		}
		out = append(out, cells)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// Append stores every value as its text form. RAW and USER_ENTERED look
// the same here.
func (r *TableRepository) Append(ctx context.Context, row []any, mode domain.InputMode) error {
	raw, err := json.Marshal(domain.TextCells(row))
	if err != nil {
		return fmt.Errorf("failed to encode row cells: %w", err)
	}

	query := `INSERT INTO table_rows (table_id, cells) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, r.tableID, string(raw)); err != nil {
		return fmt.Errorf("failed to insert row: %w", err)
	}

	return nil
}

func (r *TableRepository) Clear(ctx context.Context) error {
	query := `DELETE FROM table_rows WHERE table_id = ?`

	if _, err := r.db.ExecContext(ctx, query, r.tableID); err != nil {
		return fmt.Errorf("failed to execute delete query: %w", err)
	}

	return nil
}
