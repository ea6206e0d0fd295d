// pkg/model/cleaning.go
package model

// CellDiff records one modified cell: its before/after value plus the
// named operations that produced the change. Cells without a diff entry
// were not touched. Row uses report-space coordinates (first data row is 2).
type CellDiff struct {
	Row           int      `json:"row"`
	Column        int      `json:"column"`
	ColumnName    string   `json:"columnName"`
	OriginalValue string   `json:"originalValue"`
	CleanedValue  string   `json:"cleanedValue"`
	Operations    []string `json:"operations"`
}

// RowDecision is the per-row cleaning outcome.
type RowDecision string

const (
	RowRejected  RowDecision = "rejected"
	RowCleaned   RowDecision = "cleaned"
	RowUnchanged RowDecision = "unchanged"
)

// RowRecord captures the disposition of a single input row.
type RowRecord struct {
	Decision      RowDecision `json:"decision"`
	RejectReasons []string    `json:"rejectReasons,omitempty"`
}

// RejectedRow is an input row excluded from the cleaned output, with the
// key fields that caused the rejection. Index is the 0-based position in
// the input slice.
type RejectedRow struct {
	Index   int      `json:"index"`
	Row     []string `json:"row"`
	Reasons []string `json:"reasons"`
}

// CleanSummary aggregates the outcome of one cleaning run.
// OperationCounts tallies how many cells each named operation touched.
type CleanSummary struct {
	TotalRows          int            `json:"totalRows"`
	CleanedRows        int            `json:"cleanedRows"`
	RejectedRows       int            `json:"rejectedRows"`
	UnchangedRows      int            `json:"unchangedRows"`
	TotalCellsModified int            `json:"totalCellsModified"`
	OperationCounts    map[string]int `json:"operationCounts"`
}

// CleanResult is the full output of the cleaning engine. CleanedRows
// holds all non-rejected rows (cleaned and unchanged) in original order.
type CleanResult struct {
	Headers      []string      `json:"headers"`
	CleanedRows  [][]string    `json:"cleanedRows"`
	RejectedRows []RejectedRow `json:"rejectedRows"`
	AllRows      []RowRecord   `json:"allRows"`
	DiffReport   []CellDiff    `json:"diffReport"`
	Summary      CleanSummary  `json:"summary"`
}
