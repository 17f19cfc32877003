package tracker

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// fakeStore is an in-test RowStore/ViewReader double with programmable
// failures, in the style of the handler mocks used across the repo.
type fakeStore struct {
	rows    [][]string
	appends [][][]string // batches received by Append

	appendErr error
	rangeErr  error
	columnErr error

	views   map[string][][]string
	viewErr map[string]error
}

func (f *fakeStore) Append(ctx context.Context, rows [][]string) (int, error) {
	if f.appendErr != nil {
		return 0, f.appendErr
	}
	f.appends = append(f.appends, rows)
	f.rows = append(f.rows, rows...)
	return len(rows), nil
}

func (f *fakeStore) ReadColumn(ctx context.Context, sel string) ([]string, error) {
	if f.columnErr != nil {
		return nil, f.columnErr
	}
	idx := 0
	if i := strings.IndexByte(sel, '!'); i >= 0 && i+1 < len(sel) {
		idx = int(sel[i+1] - 'A')
	}
	col := make([]string, 0, len(f.rows))
	for _, row := range f.rows {
		if idx < len(row) {
			col = append(col, row[idx])
		} else {
			col = append(col, "")
		}
	}
	return col, nil
}

func (f *fakeStore) ReadRange(ctx context.Context, sel string) ([][]string, error) {
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	return f.rows, nil
}

func (f *fakeStore) ReadView(ctx context.Context, sel string) ([][]string, error) {
	if err := f.viewErr[sel]; err != nil {
		return nil, err
	}
	return f.views[sel], nil
}

var testTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// newTestService wires a service over the fake store with a frozen clock.
func newTestService(store *fakeStore, cfg Config) *Service {
	s := New(store, cfg, zerolog.Nop())
	s.now = func() time.Time { return testTime }
	return s
}

// storedRow builds one raw record in storage column order.
func storedRow(ts, client, date, status, model, batch, qty string) []string {
	return []string{ts, client, date, status, model, batch, qty}
}
