// Package sheets stores the snapshot table in the first worksheet of a
// Google Sheets spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"yt-tracker/internal/domain"
	"yt-tracker/internal/logger"
)

type Provider struct {
	opts []option.ClientOption
	log  logger.Logger
}

// NewServiceAccountProvider authenticates with a service account key file.
// The viewer only needs read access.
func NewServiceAccountProvider(credentialsFile string, readOnly bool, log logger.Logger) *Provider {
	scopes := []string{gsheets.SpreadsheetsScope, gsheets.DriveScope}
	if readOnly {
		scopes = []string{gsheets.SpreadsheetsReadonlyScope, gsheets.DriveReadonlyScope}
	}

	return NewProvider(log,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(scopes...),
	)
}

func NewProvider(log logger.Logger, opts ...option.ClientOption) *Provider {
	return &Provider{opts: opts, log: log}
}

func (p *Provider) Open(ctx context.Context, tableID string) (domain.Table, error) {
	svc, err := gsheets.NewService(ctx, p.opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	doc, err := svc.Spreadsheets.Get(tableID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: open spreadsheet %s: %w", tableID, err)
	}

	if len(doc.Sheets) == 0 || doc.Sheets[0].Properties == nil {
		return nil, errors.New("sheets: spreadsheet has no worksheets")
	}

	title := doc.Sheets[0].Properties.Title
	p.log.Debug("sheets: worksheet opened", "spreadsheet_id", tableID, "worksheet", title)

	return &Table{
		values: svc.Spreadsheets.Values,
		id:     tableID,
		sheet:  quote(title),
	}, nil
}

type Table struct {
	values *gsheets.SpreadsheetsValuesService
	id     string
	sheet  string
}

func (t *Table) ReadAll(ctx context.Context) ([][]string, error) {
	resp, err := t.values.Get(t.id, t.sheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read values: %w", err)
	}

	rows := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		row := make([]string, len(r))
		for j, v := range r {
			row[j] = fmt.Sprint(v)
		}
		rows[i] = row
	}

	return rows, nil
}

func (t *Table) Append(ctx context.Context, row []any, mode domain.InputMode) error {
	vr := &gsheets.ValueRange{Values: [][]any{row}}

	_, err := t.values.Append(t.id, t.sheet+"!A1", vr).
		ValueInputOption(string(mode)).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}

	return nil
}

func (t *Table) Clear(ctx context.Context) error {
	if _, err := t.values.Clear(t.id, t.sheet, &gsheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets: clear: %w", err)
	}
	return nil
}

// quote turns a worksheet title into an A1 range covering the whole sheet.
func quote(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
