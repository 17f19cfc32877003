package tracker

import "context"

// OverallSummary produces the global per-model and per-batch balances
// across all clients. When both rollup views are configured and readable it
// serves them as-is, preserving the view row order; otherwise it recomputes
// from the full log in first-occurrence order. Both tables come from the
// same call: if either side cannot be obtained the whole request fails
// rather than returning half a dashboard.
func (s *Service) OverallSummary(ctx context.Context) (*Summary, error) {
	if s.views != nil && s.cfg.ModelView != "" && s.cfg.BatchView != "" {
		return s.summaryFromViews(ctx)
	}
	return s.summaryFromLog(ctx)
}

func (s *Service) summaryFromViews(ctx context.Context) (*Summary, error) {
	modelRecs, err := s.views.ReadView(ctx, s.cfg.ModelView)
	if err != nil {
		return nil, &StorageError{Op: "read " + s.cfg.ModelView, Err: err}
	}
	batchRecs, err := s.views.ReadView(ctx, s.cfg.BatchView)
	if err != nil {
		return nil, &StorageError{Op: "read " + s.cfg.BatchView, Err: err}
	}

	sum := &Summary{
		ByModel: make([]ModelSummary, 0, len(modelRecs)),
		ByBatch: make([]BatchSummary, 0, len(batchRecs)),
	}
	for _, rec := range modelRecs {
		key, in, out := splitViewRecord(rec)
		if key == "" {
			continue
		}
		sum.ByModel = append(sum.ByModel, ModelSummary{ModelNo: key, In: in, Out: out, Pending: in - out})
	}
	for _, rec := range batchRecs {
		key, in, out := splitViewRecord(rec)
		if key == "" {
			continue
		}
		sum.ByBatch = append(sum.ByBatch, BatchSummary{BatchNo: key, In: in, Out: out, Pending: in - out})
	}
	return sum, nil
}

// splitViewRecord reads one key/in/out view row, padding short rows.
func splitViewRecord(rec []string) (string, float64, float64) {
	cells := make([]string, 3)
	copy(cells, rec)
	return cells[0], parseQty(cells[1]), parseQty(cells[2])
}

func (s *Service) summaryFromLog(ctx context.Context) (*Summary, error) {
	rows, err := s.readRows(ctx)
	if err != nil {
		return nil, err
	}

	type acc struct{ in, out float64 }
	modelAcc := make(map[string]*acc)
	batchAcc := make(map[string]*acc)
	var modelOrder, batchOrder []string

	tally := func(m map[string]*acc, order *[]string, key string, r Row) {
		if key == "" {
			return
		}
		a := m[key]
		if a == nil {
			a = &acc{}
			m[key] = a
			*order = append(*order, key)
		}
		switch r.Status {
		case StatusIn:
			a.in += parseQty(r.Qty)
		case StatusOut:
			a.out += parseQty(r.Qty)
		}
	}

	for _, r := range rows {
		tally(modelAcc, &modelOrder, r.ModelNo, r)
		tally(batchAcc, &batchOrder, r.BatchNo, r)
	}

	sum := &Summary{
		ByModel: make([]ModelSummary, 0, len(modelOrder)),
		ByBatch: make([]BatchSummary, 0, len(batchOrder)),
	}
	for _, key := range modelOrder {
		a := modelAcc[key]
		sum.ByModel = append(sum.ByModel, ModelSummary{ModelNo: key, In: a.in, Out: a.out, Pending: a.in - a.out})
	}
	for _, key := range batchOrder {
		a := batchAcc[key]
		sum.ByBatch = append(sum.ByBatch, BatchSummary{BatchNo: key, In: a.in, Out: a.out, Pending: a.in - a.out})
	}
	return sum, nil
}
