// Package sheets implements the tracker row store on the Google Sheets API,
// against the same spreadsheet the original entry form wrote to.
package sheets

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/rpatwari/replacement-tracker/internal/tracker"
)

// Store reads and appends rows on one spreadsheet. It implements both
// tracker.RowStore and tracker.ViewReader; rollup views are plain ranges on
// formula tabs of the same spreadsheet.
type Store struct {
	svc           *sheets.Service
	spreadsheetID string
	appendRange   string
}

// New creates a store for the given spreadsheet. Credentials come from a
// service-account JSON key file, matching the original deployment.
// appendRange is the table the entry rows are appended to, e.g. "Sheet1!A:G".
func New(ctx context.Context, spreadsheetID, credentialsFile, appendRange string) (*Store, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets.New: create service: %w", err)
	}
	return &Store{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		appendRange:   appendRange,
	}, nil
}

// Append implements tracker.RowStore. USER_ENTERED keeps the sheet's own
// value coercion, the same mode the original server used, and INSERT_ROWS
// makes the whole batch land as one contiguous block.
func (s *Store) Append(ctx context.Context, rows [][]string) (int, error) {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	resp, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, s.appendRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("sheets append %s: %w", s.appendRange, err)
	}
	if resp.Updates == nil {
		return len(rows), nil
	}
	return int(resp.Updates.UpdatedRows), nil
}

// ReadColumn implements tracker.RowStore.
func (s *Store) ReadColumn(ctx context.Context, sel string) ([]string, error) {
	recs, err := s.read(ctx, sel)
	if err != nil {
		return nil, err
	}
	col := make([]string, 0, len(recs))
	for _, rec := range recs {
		if len(rec) > 0 {
			col = append(col, rec[0])
		} else {
			col = append(col, "")
		}
	}
	return col, nil
}

// ReadRange implements tracker.RowStore.
func (s *Store) ReadRange(ctx context.Context, sel string) ([][]string, error) {
	return s.read(ctx, sel)
}

// ReadView implements tracker.ViewReader. A rollup view is just another
// range on the spreadsheet, maintained externally by sheet formulas.
func (s *Store) ReadView(ctx context.Context, sel string) ([][]string, error) {
	return s.read(ctx, sel)
}

func (s *Store) read(ctx context.Context, sel string) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, sel).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets get %s: %w", sel, err)
	}

	recs := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		rec := make([]string, len(row))
		for j, cell := range row {
			rec[j] = cellString(cell)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// cellString renders a cell the way the sheet displays it. The API returns
// strings for text cells, but numeric cells can come back as float64.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Ensure Store implements the storage interfaces.
var (
	_ tracker.RowStore   = (*Store)(nil)
	_ tracker.ViewReader = (*Store)(nil)
)
