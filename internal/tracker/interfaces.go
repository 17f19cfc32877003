package tracker

import "context"

// RowStore is the append-only tabular store the tracker runs against.
// Selectors are A1-notation range strings from Config. Implementations:
// internal/sheets for the live spreadsheet, memstore for tests and local
// development.
type RowStore interface {
	// Append appends rows after the last table row and returns the number
	// of rows written.
	Append(ctx context.Context, rows [][]string) (int, error)

	// ReadColumn returns the cells of a single-column range, top to bottom.
	ReadColumn(ctx context.Context, sel string) ([]string, error)

	// ReadRange returns the cells of a rectangular range in row order.
	ReadRange(ctx context.Context, sel string) ([][]string, error)
}

// ViewReader reads an externally maintained pre-aggregated range, such as a
// formula tab on the same spreadsheet. Optional: the overall summary falls
// back to scanning the raw log when no views are configured.
type ViewReader interface {
	ReadView(ctx context.Context, sel string) ([][]string, error)
}
