package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"yt-tracker/internal/domain"
	"yt-tracker/internal/logger"
)

// fakeSheets serves the handful of Sheets v4 endpoints the table uses.
type fakeSheets struct {
	mu    sync.Mutex
	rows  [][]string
	modes []string
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	const prefix = "/v4/spreadsheets/sheet-123"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, prefix)

	w.Header().Set("Content-Type", "application/json")

	switch {
	case rest == "" && r.Method == http.MethodGet:
		fmt.Fprint(w, `{"sheets":[{"properties":{"title":"Sayfa1"}}]}`)

	case strings.HasSuffix(rest, ":append") && r.Method == http.MethodPost:
		var body struct {
			Values [][]any `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for _, row := range body.Values {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = fmt.Sprint(v)
			}
			f.rows = append(f.rows, cells)
		}
		f.modes = append(f.modes, r.URL.Query().Get("valueInputOption"))
		fmt.Fprint(w, `{}`)

	case strings.HasSuffix(rest, ":clear") && r.Method == http.MethodPost:
		f.rows = nil
		fmt.Fprint(w, `{}`)

	case strings.HasPrefix(rest, "/values/") && r.Method == http.MethodGet:
		json.NewEncoder(w).Encode(map[string]any{"values": f.rows})

	default:
		http.Error(w, "unexpected "+r.Method+" "+r.URL.Path, http.StatusBadRequest)
	}
}

func newTestProvider(t *testing.T, f *fakeSheets) *Provider {
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	return NewProvider(logger.Nop(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
		option.WithoutAuthentication(),
	)
}

func TestTableAppendReadClear(t *testing.T) {
	f := &fakeSheets{}
	p := newTestProvider(t, f)
	ctx := context.Background()

	tbl, err := p.Open(ctx, "sheet-123")
	require.NoError(t, err)

	rows, err := tbl.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, tbl.Append(ctx, []any{"Tarih", "Toplam Izlenme"}, domain.InputRaw))
	require.NoError(t, tbl.Append(ctx, []any{"2024-01-01", int64(1000)}, domain.InputUserEntered))

	rows, err = tbl.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Tarih", "Toplam Izlenme"}, {"2024-01-01", "1000"}}, rows)
	assert.Equal(t, []string{"RAW", "USER_ENTERED"}, f.modes)

	require.NoError(t, tbl.Clear(ctx))

	rows, err = tbl.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOpenUnknownSpreadsheet(t *testing.T) {
	p := newTestProvider(t, &fakeSheets{})

	_, err := p.Open(context.Background(), "missing")
	assert.Error(t, err)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'Sheet1'", quote("Sheet1"))
	assert.Equal(t, "'Bob''s data'", quote("Bob's data"))
}
