package tracker

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Submit validates and appends one form submission. Incomplete lines are
// dropped per list; a submission with no complete line at all is rejected
// without touching the store. All retained lines share a single
// server-assigned timestamp and go to the store in one append call, so
// partial visibility is bounded by whatever atomicity the store offers.
func (s *Service) Submit(ctx context.Context, sub Submission) (int, error) {
	incoming := completeLines(sub.Incoming)
	outgoing := completeLines(sub.Outgoing)
	if len(incoming) == 0 && len(outgoing) == 0 {
		return 0, &ValidationError{Reason: "no valid product lines"}
	}

	// One timestamp per batch. This is a display/audit field, not a logical
	// clock; rapid successive submissions may tie.
	ts := s.now().UTC().Format(time.RFC3339)

	rows := make([][]string, 0, len(incoming)+len(outgoing))
	for _, item := range incoming {
		rows = append(rows, Row{
			Timestamp:  ts,
			ClientName: sub.ClientName,
			Date:       sub.Date,
			Status:     StatusIn,
			ModelNo:    item.ModelNo,
			BatchNo:    item.BatchNo,
			Qty:        item.Qty,
		}.Values())
	}
	for _, item := range outgoing {
		rows = append(rows, Row{
			Timestamp:  ts,
			ClientName: sub.ClientName,
			Date:       sub.Date,
			Status:     StatusOut,
			ModelNo:    item.ModelNo,
			BatchNo:    item.BatchNo,
			Qty:        item.Qty,
		}.Values())
	}

	batchID := uuid.New().String()
	inserted, err := s.store.Append(ctx, rows)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("batch_id", batchID).
			Str("client", sub.ClientName).
			Int("rows", len(rows)).
			Msg("Append to store failed")
		return 0, &StorageError{Op: "append", Err: err}
	}

	s.log.Info().
		Str("batch_id", batchID).
		Str("client", sub.ClientName).
		Int("inserted", inserted).
		Msg("Submission stored")

	return inserted, nil
}

// completeLines keeps only lines with model, batch and quantity all present.
// "0" is a present quantity; only empty fields drop a line.
func completeLines(items []LineItem) []LineItem {
	var kept []LineItem
	for _, item := range items {
		if item.ModelNo != "" && item.BatchNo != "" && item.Qty != "" {
			kept = append(kept, item)
		}
	}
	return kept
}
