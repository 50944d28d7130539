// Package memory is an in-process table backend. It formats appended values
// the way a spreadsheet echoes them back, as plain strings.
package memory

import (
	"context"
	"slices"
	"sync"

	"yt-tracker/internal/domain"
)

type Call struct {
	Op   string
	Row  []any
	Mode domain.InputMode
}

type Table struct {
	mu    sync.Mutex
	rows  [][]string
	calls []Call

	// ReadErr, when set, is returned by ReadAll.
	ReadErr error
}

func NewTable(rows ...[]string) *Table {
	t := &Table{}
	for _, r := range rows {
		t.rows = append(t.rows, slices.Clone(r))
	}
	return t
}

func (t *Table) ReadAll(ctx context.Context) ([][]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.calls = append(t.calls, Call{Op: "read"})
	if t.ReadErr != nil {
		return nil, t.ReadErr
	}

	return cloneRows(t.rows), nil
}

func (t *Table) Append(ctx context.Context, row []any, mode domain.InputMode) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = append(t.rows, domain.TextCells(row))
	t.calls = append(t.calls, Call{Op: "append", Row: row, Mode: mode})
	return nil
}

func (t *Table) Clear(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = nil
	t.calls = append(t.calls, Call{Op: "clear"})
	return nil
}

// Rows returns a copy of the current contents.
func (t *Table) Rows() [][]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return cloneRows(t.rows)
}

// Calls returns the operations performed so far, in order.
func (t *Table) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.calls)
}

// Provider hands out tables keyed by id, creating empty ones on first use.
type Provider struct {
	mu     sync.Mutex
	tables map[string]*Table

	// OpenErr, when set, is returned by Open.
	OpenErr error
}

func NewProvider() *Provider {
	return &Provider{tables: map[string]*Table{}}
}

func (p *Provider) Put(tableID string, t *Table) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tables[tableID] = t
}

func (p *Provider) Table(tableID string) *Table {
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.tables[tableID]
	if !ok {
		t = NewTable()
		p.tables[tableID] = t
	}
	return t
}

func (p *Provider) Open(ctx context.Context, tableID string) (domain.Table, error) {
	if p.OpenErr != nil {
		return nil, p.OpenErr
	}
	return p.Table(tableID), nil
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out
}
