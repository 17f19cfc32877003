package tracker

import (
	"context"
	"sort"
)

// SummarizeClient reduces one client's transactions to per-model IN/OUT
// totals. Client matching is case-sensitive and rows without a model number
// contribute nothing. Results are sorted by model number; a client with no
// rows yields an empty slice, not an error.
func (s *Service) SummarizeClient(ctx context.Context, client string) ([]ModelTotal, error) {
	rows, err := s.readRows(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*ModelTotal)
	for _, r := range rows {
		if r.ClientName != client || r.ModelNo == "" {
			continue
		}
		t := totals[r.ModelNo]
		if t == nil {
			t = &ModelTotal{ModelNo: r.ModelNo}
			totals[r.ModelNo] = t
		}
		switch r.Status {
		case StatusIn:
			t.In += parseQty(r.Qty)
		case StatusOut:
			t.Out += parseQty(r.Qty)
		}
	}

	out := make([]ModelTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModelNo < out[j].ModelNo })
	return out, nil
}

// ClientDetails returns the client's raw transaction lines in store append
// order. Timestamps can tie within a batch, so append order is the only
// reliable chronology and is never re-sorted.
func (s *Service) ClientDetails(ctx context.Context, client string) ([]Detail, error) {
	rows, err := s.readRows(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]Detail, 0)
	for _, r := range rows {
		if r.ClientName != client {
			continue
		}
		details = append(details, Detail{
			Timestamp: r.Timestamp,
			Date:      r.Date,
			ModelNo:   r.ModelNo,
			BatchNo:   r.BatchNo,
			Qty:       r.Qty,
			Status:    r.Status,
		})
	}
	return details, nil
}
