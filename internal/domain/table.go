package domain

import (
	"context"
	"fmt"
)

// InputMode tells the table service how to interpret appended values.
type InputMode string

const (
	// InputRaw stores values as given.
	InputRaw InputMode = "RAW"
	// InputUserEntered lets the service coerce values as if typed by a user.
	InputUserEntered InputMode = "USER_ENTERED"
)

// Table is the persisted, append-only store. Rows are returned as the
// service formats them, header included.
type Table interface {
	ReadAll(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, row []any, mode InputMode) error
	Clear(ctx context.Context) error
}

// TableProvider hands out authenticated table handles.
type TableProvider interface {
	Open(ctx context.Context, tableID string) (Table, error)
}

// TextCells renders a row the way a plain text store keeps it.
func TextCells(row []any) []string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = fmt.Sprint(v)
	}
	return cells
}
