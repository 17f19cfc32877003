// Package memstore provides an in-memory tracker.RowStore for tests and
// local development. Data is lost on restart - for persistence, use the
// Google Sheets store.
package memstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rpatwari/replacement-tracker/internal/tracker"
)

// Store keeps the transaction grid in memory and is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	rows [][]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Append implements tracker.RowStore. Rows are copied so later mutation by
// the caller cannot reach the stored data.
func (s *Store) Append(ctx context.Context, rows [][]string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range rows {
		s.rows = append(s.rows, append([]string(nil), row...))
	}
	return len(rows), nil
}

// ReadColumn implements tracker.RowStore. The selector's column letter
// picks the column; rows too short for it yield a blank cell.
func (s *Store) ReadColumn(ctx context.Context, sel string) ([]string, error) {
	idx, err := columnIndex(sel)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	col := make([]string, 0, len(s.rows))
	for _, row := range s.rows {
		if idx < len(row) {
			col = append(col, row[idx])
		} else {
			col = append(col, "")
		}
	}
	return col, nil
}

// ReadRange implements tracker.RowStore. The store holds a single grid, so
// any range selector returns the full log in append order.
func (s *Store) ReadRange(ctx context.Context, sel string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([][]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// columnIndex resolves the column letter of an A1 selector such as
// "Sheet1!B2:B" to a zero-based index. Only single-letter columns occur in
// this application's layout.
func columnIndex(sel string) (int, error) {
	rng := sel
	if i := strings.IndexByte(rng, '!'); i >= 0 {
		rng = rng[i+1:]
	}
	if rng == "" || rng[0] < 'A' || rng[0] > 'Z' {
		return 0, fmt.Errorf("unsupported column selector %q", sel)
	}
	return int(rng[0] - 'A'), nil
}

// Ensure Store implements the RowStore interface.
var _ tracker.RowStore = (*Store)(nil)
