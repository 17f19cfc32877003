package tracker

// Status values recognized by the aggregators. Historical rows carrying any
// other status contribute to neither inflow nor outflow.
const (
	StatusIn  = "IN"
	StatusOut = "OUT"
)

// numCols is the width of one stored row: timestamp, clientName, date,
// status, modelNo, batchNo, qty (sheet columns A..G).
const numCols = 7

// LineItem is one product line as submitted by the entry form. Qty stays a
// string until aggregation time; the store holds whatever was entered.
type LineItem struct {
	ModelNo string `json:"modelNo"`
	BatchNo string `json:"batchNo"`
	Qty     string `json:"qty"`
}

// Submission is one form submission: a client, a business date and the
// incoming/outgoing product lines.
type Submission struct {
	ClientName string
	Date       string // YYYY-MM-DD, client-supplied
	Incoming   []LineItem
	Outgoing   []LineItem
}

// Row is one immutable IN or OUT movement as stored. There is no update or
// delete in this system; rows live for the life of the store.
type Row struct {
	Timestamp  string
	ClientName string
	Date       string
	Status     string
	ModelNo    string
	BatchNo    string
	Qty        string
}

// Values returns the row in storage column order.
func (r Row) Values() []string {
	return []string{r.Timestamp, r.ClientName, r.Date, r.Status, r.ModelNo, r.BatchNo, r.Qty}
}

// rowFromRecord maps a raw store record back into a Row. Short records are
// padded with blanks so one malformed historical row never aborts a scan.
func rowFromRecord(rec []string) Row {
	cells := make([]string, numCols)
	copy(cells, rec)
	return Row{
		Timestamp:  cells[0],
		ClientName: cells[1],
		Date:       cells[2],
		Status:     cells[3],
		ModelNo:    cells[4],
		BatchNo:    cells[5],
		Qty:        cells[6],
	}
}

// ModelTotal is one row of the per-client summary. The per-client view
// reports no pending balance; only the overall view does.
type ModelTotal struct {
	ModelNo string  `json:"modelNo"`
	In      float64 `json:"in"`
	Out     float64 `json:"out"`
}

// Detail is one audit-trail line for a client, projected in display order
// with the status visible per line. Qty keeps the raw stored string.
type Detail struct {
	Timestamp string `json:"timestamp"`
	Date      string `json:"date"`
	ModelNo   string `json:"modelNo"`
	BatchNo   string `json:"batchNo"`
	Qty       string `json:"qty"`
	Status    string `json:"status"`
}

// ModelSummary is one row of the overall per-model table.
// Pending = In - Out and may be negative.
type ModelSummary struct {
	ModelNo string  `json:"modelNo"`
	In      float64 `json:"in"`
	Out     float64 `json:"out"`
	Pending float64 `json:"pending"`
}

// BatchSummary is one row of the overall per-batch table.
type BatchSummary struct {
	BatchNo string  `json:"batchNo"`
	In      float64 `json:"in"`
	Out     float64 `json:"out"`
	Pending float64 `json:"pending"`
}

// Summary holds both overall tables. The two are produced together: a
// one-sided dashboard is worse than an explicit error.
type Summary struct {
	ByModel []ModelSummary `json:"modelSummary"`
	ByBatch []BatchSummary `json:"batchSummary"`
}
