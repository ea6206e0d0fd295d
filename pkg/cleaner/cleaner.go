// pkg/cleaner/cleaner.go
package cleaner

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rosterdata/ingest-quality/pkg/model"
)

// Options controls one cleaning run. Start from DefaultOptions: all
// normalization stages enabled, no key or text fields.
//
// Note that stripBOM and replaceHiddenChars overlap on U+FEFF; the
// hidden-character stage removes it anywhere in the value, so disabling
// stripBOM alone does not preserve a literal BOM. All stages must be off
// to keep one.
type Options struct {
	StripBOM           bool
	ReplaceHiddenChars bool
	TrimWhitespace     bool

	// KeyFields are column names (matched case-insensitively) whose
	// error-severity issues reject the whole row. TextFields are exempt
	// from that trigger: normalized like any other column, never blocking.
	KeyFields  []string
	TextFields []string
}

// DefaultOptions returns the cleaning defaults.
func DefaultOptions() Options {
	return Options{
		StripBOM:           true,
		ReplaceHiddenChars: true,
		TrimWhitespace:     true,
	}
}

// Cleaner applies the normalization pipeline and the row disposition
// policy. It reads the analysis report but never writes to it, and
// holds no state across calls.
type Cleaner struct {
	logger *zap.Logger
}

// New creates a Cleaner. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) *Cleaner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cleaner{logger: logger}
}

// CleanData normalizes rows cell by cell and partitions them into
// cleaned and rejected sets. A row is rejected when any key field has
// an error-severity issue at that row in the supplied report; otherwise
// it is cleaned if at least one cell changed, and unchanged if none did.
// Rejected rows keep their original values and produce no diff entries.
//
// Rows are the parser's data rows; data row i corresponds to report
// row i+2. Short rows are processed best-effort, never failed.
func (c *Cleaner) CleanData(rows [][]string, headers []string, report *model.AnalysisReport, opts Options) *model.CleanResult {
	result := &model.CleanResult{
		Headers:      headers,
		CleanedRows:  [][]string{},
		RejectedRows: []model.RejectedRow{},
		AllRows:      make([]model.RowRecord, 0, len(rows)),
		DiffReport:   []model.CellDiff{},
		Summary: model.CleanSummary{
			TotalRows:       len(rows),
			OperationCounts: map[string]int{},
		},
	}

	errorCells := indexErrorCells(report)
	keyColumns := resolveKeyColumns(headers, opts)

	for i, row := range rows {
		reportRow := i + 2

		if reasons := rejectReasons(errorCells[reportRow], keyColumns, headers); len(reasons) > 0 {
			result.RejectedRows = append(result.RejectedRows, model.RejectedRow{
				Index:   i,
				Row:     row,
				Reasons: reasons,
			})
			result.AllRows = append(result.AllRows, model.RowRecord{
				Decision:      model.RowRejected,
				RejectReasons: reasons,
			})
			result.Summary.RejectedRows++
			continue
		}

		cleanedRow := make([]string, len(row))
		rowModified := false
		for col, value := range row {
			cleaned, ops := cleanCell(value, opts)
			cleanedRow[col] = cleaned
			if len(ops) == 0 {
				continue
			}
			rowModified = true
			result.Summary.TotalCellsModified++
			for _, op := range ops {
				result.Summary.OperationCounts[op]++
			}
			result.DiffReport = append(result.DiffReport, model.CellDiff{
				Row:           reportRow,
				Column:        col,
				ColumnName:    columnName(headers, col),
				OriginalValue: value,
				CleanedValue:  cleaned,
				Operations:    ops,
			})
		}

		result.CleanedRows = append(result.CleanedRows, cleanedRow)
		if rowModified {
			result.AllRows = append(result.AllRows, model.RowRecord{Decision: model.RowCleaned})
			result.Summary.CleanedRows++
		} else {
			result.AllRows = append(result.AllRows, model.RowRecord{Decision: model.RowUnchanged})
			result.Summary.UnchangedRows++
		}
	}

	c.logger.Info("cleaning complete",
		zap.Int("totalRows", result.Summary.TotalRows),
		zap.Int("cleaned", result.Summary.CleanedRows),
		zap.Int("rejected", result.Summary.RejectedRows),
		zap.Int("unchanged", result.Summary.UnchangedRows),
		zap.Int("cellsModified", result.Summary.TotalCellsModified))

	return result
}

// indexErrorCells builds a report-row -> column lookup of error-severity
// issues so the per-row rejection check is O(key fields).
func indexErrorCells(report *model.AnalysisReport) map[int]map[int]bool {
	cells := make(map[int]map[int]bool)
	if report == nil {
		return cells
	}
	for _, issue := range report.Issues {
		if issue.Severity != model.SeverityError || issue.Row <= 0 || issue.Column < 0 {
			continue
		}
		if cells[issue.Row] == nil {
			cells[issue.Row] = make(map[int]bool)
		}
		cells[issue.Row][issue.Column] = true
	}
	return cells
}

// resolveKeyColumns maps the configured key fields to column indices,
// excluding any column also listed as a text field.
func resolveKeyColumns(headers []string, opts Options) []int {
	keySet := lowerSet(opts.KeyFields)
	textSet := lowerSet(opts.TextFields)

	var cols []int
	for i, header := range headers {
		name := strings.ToLower(strings.TrimSpace(header))
		if keySet[name] && !textSet[name] {
			cols = append(cols, i)
		}
	}
	return cols
}

func rejectReasons(errorCols map[int]bool, keyColumns []int, headers []string) []string {
	if len(errorCols) == 0 {
		return nil
	}
	var reasons []string
	for _, col := range keyColumns {
		if errorCols[col] {
			reasons = append(reasons, fmt.Sprintf("error in key field %q", headers[col]))
		}
	}
	return reasons
}

func lowerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[strings.ToLower(strings.TrimSpace(name))] = true
	}
	return set
}

func columnName(headers []string, col int) string {
	if col < len(headers) {
		return headers[col]
	}
	return fmt.Sprintf("Column %d", col+1)
}
