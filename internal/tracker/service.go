package tracker

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config carries the range selectors the service reads. ModelView and
// BatchView are optional; when both are set and the store can read views,
// the overall summary is served from them instead of re-scanning the log.
type Config struct {
	DataRange    string // full transaction log, e.g. "Sheet1!A2:G"
	ClientColumn string // client name column, e.g. "Sheet1!B2:B"
	ModelView    string // pre-aggregated per-model totals, e.g. "ModelSummary!A2:C"
	BatchView    string // pre-aggregated per-batch totals, e.g. "BatchSummary!A2:C"
}

// ConfigForSheet builds selectors for a transaction log held on the given
// tab, laid out the way the entry form writes it (header row, columns A..G).
func ConfigForSheet(name string) Config {
	return Config{
		DataRange:    name + "!A2:G",
		ClientColumn: name + "!B2:B",
	}
}

// Service implements the aggregation and reconciliation core on top of a
// RowStore. Every call pulls fresh from the store and reduces in place;
// there is no cache and no shared state between calls.
type Service struct {
	store RowStore
	views ViewReader
	cfg   Config
	log   zerolog.Logger

	now func() time.Time
}

// New creates a tracker service. If the store also implements ViewReader,
// the rollup-view path becomes available for the overall summary.
func New(store RowStore, cfg Config, log zerolog.Logger) *Service {
	s := &Service{
		store: store,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
	if v, ok := store.(ViewReader); ok {
		s.views = v
	}
	return s
}

// readRows pulls the full transaction log.
func (s *Service) readRows(ctx context.Context) ([]Row, error) {
	recs, err := s.store.ReadRange(ctx, s.cfg.DataRange)
	if err != nil {
		return nil, &StorageError{Op: "read " + s.cfg.DataRange, Err: err}
	}
	rows := make([]Row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, rowFromRecord(rec))
	}
	return rows, nil
}

// parseQty parses a stored quantity. Bad or missing values count as zero so
// one bad historical cell never blocks aggregation of the rest.
func parseQty(q string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
	if err != nil {
		return 0
	}
	return v
}
