// pkg/analyzer/analyzer.go
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/rosterdata/ingest-quality/pkg/charset"
	"github.com/rosterdata/ingest-quality/pkg/csvparse"
	"github.com/rosterdata/ingest-quality/pkg/model"
	"github.com/rosterdata/ingest-quality/pkg/scanner"
	"github.com/rosterdata/ingest-quality/pkg/validator"
)

// Options controls a single analysis run. Use DefaultOptions as the
// starting point; HasHeaders defaults to true and MaxRows of 0 means
// unbounded. ColumnMapping entries are matched case-insensitively
// against header names and take precedence over pattern inference.
type Options struct {
	Delimiter     rune
	HasHeaders    bool
	MaxRows       int
	ColumnMapping map[string]model.FieldType
}

// DefaultOptions returns the analyzer defaults.
func DefaultOptions() Options {
	return Options{HasHeaders: true}
}

// Analyzer orchestrates encoding detection, parsing, per-cell scanning
// and duplicate detection into a unified report. It holds no state
// across calls; every AnalyzeFile invocation builds a fresh report.
type Analyzer struct {
	logger *zap.Logger
}

// New creates an Analyzer. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// AnalyzeFile inspects an uploaded file and reports every data-quality
// problem found. It never fails on malformed input: detection problems
// degrade to recorded issues and the report is always returned.
//
// Report coordinates follow the spreadsheet convention: parser row i is
// reported as i+2 (1 for 1-indexing plus 1 for the header row), and
// file-level findings use row 0 with column -1.
func (a *Analyzer) AnalyzeFile(buf []byte, opts Options) *model.AnalysisReport {
	report := &model.AnalysisReport{
		Issues:       []model.Issue{},
		FieldReports: []model.FieldReport{},
	}

	enc := charset.DetectEncoding(buf)
	report.Encoding = enc
	a.recordEncodingIssues(report, enc)

	text := string(charset.StripBOM(buf))
	parsed := csvparse.Parse(text, csvparse.Options{
		Delimiter:  opts.Delimiter,
		HasHeaders: opts.HasHeaders,
	})

	rows := parsed.Rows
	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		rows = rows[:opts.MaxRows]
	}

	report.FileInfo = model.FileInfo{
		SizeBytes:    len(buf),
		TotalRows:    len(rows),
		TotalColumns: len(parsed.Headers),
		Delimiter:    string(parsed.Delimiter),
	}

	fieldTypes := a.buildFieldReports(report, parsed.Headers, opts.ColumnMapping)
	a.scanCells(report, rows, fieldTypes)
	a.detectDuplicateIDs(report, rows, fieldTypes)

	for _, issue := range report.Issues {
		switch issue.Severity {
		case model.SeverityError:
			report.Summary.ErrorCount++
		case model.SeverityWarning:
			report.Summary.WarningCount++
		case model.SeverityInfo:
			report.Summary.InfoCount++
		}
	}
	report.Summary.TotalIssues = len(report.Issues)

	a.logger.Info("file analysis complete",
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(parsed.Headers)),
		zap.String("encoding", enc.Encoding),
		zap.Int("issues", report.Summary.TotalIssues),
		zap.Int("errors", report.Summary.ErrorCount))

	return report
}

// recordEncodingIssues surfaces BOM presence and non-UTF-8 encodings as
// file-level issues. A BOM is informational; a non-UTF-8 encoding is a
// warning because the text is decoded as UTF-8 regardless, and low
// UTF-8 confidence is merely informational.
func (a *Analyzer) recordEncodingIssues(report *model.AnalysisReport, enc model.EncodingInfo) {
	if enc.HasBOM {
		report.Issues = append(report.Issues, model.Issue{
			Row:          0,
			Column:       -1,
			Type:         model.IssueBOM,
			Severity:     model.SeverityInfo,
			SuggestedFix: "strip the byte order mark before import",
			Description:  fmt.Sprintf("file begins with a %s byte order mark", enc.BOMType),
		})
	}
	if enc.Encoding != charset.EncodingUTF8 {
		report.Issues = append(report.Issues, model.Issue{
			Row:      0,
			Column:   -1,
			Type:     model.IssueEncoding,
			Severity: model.SeverityWarning,
			Description: fmt.Sprintf("file appears to be %s encoded (confidence %.2f); content is decoded as UTF-8 without conversion",
				enc.Encoding, enc.Confidence),
		})
	} else if enc.Confidence < 0.8 {
		report.Issues = append(report.Issues, model.Issue{
			Row:         0,
			Column:      -1,
			Type:        model.IssueEncoding,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("UTF-8 detected with low confidence %.2f", enc.Confidence),
		})
	}
}

// buildFieldReports creates one FieldReport per header and returns the
// resolved field type for each column.
func (a *Analyzer) buildFieldReports(report *model.AnalysisReport, headers []string, mapping map[string]model.FieldType) []model.FieldType {
	explicit := lowerMapping(mapping)
	fieldTypes := make([]model.FieldType, len(headers))
	for i, header := range headers {
		fieldTypes[i] = resolveFieldType(header, explicit)
		report.FieldReports = append(report.FieldReports, model.FieldReport{
			ColumnIndex: i,
			ColumnName:  header,
			FieldType:   fieldTypes[i],
			Issues:      []model.Issue{},
		})
	}
	return fieldTypes
}

// scanCells runs the hidden-character scanner over every cell and the
// field validator over cells in typed columns, accumulating issues into
// the global list and the owning field report.
func (a *Analyzer) scanCells(report *model.AnalysisReport, rows [][]string, fieldTypes []model.FieldType) {
	for i, row := range rows {
		reportRow := i + 2
		for col := 0; col < len(row) && col < len(fieldTypes); col++ {
			value := row[col]
			fr := &report.FieldReports[col]
			fr.TotalValues++
			if strings.TrimSpace(value) == "" {
				fr.EmptyValues++
			}

			for _, issue := range scanner.DetectHiddenCharacters(value, reportRow, col) {
				report.Issues = append(report.Issues, issue)
				fr.Issues = append(fr.Issues, issue)
			}

			if fieldTypes[col] == model.FieldNone {
				continue
			}
			res := validator.ValidateField(value, fieldTypes[col], validator.DefaultFieldOptions())
			if len(res.Errors) > 0 {
				fr.InvalidValues++
			}
			for _, f := range res.Errors {
				issue := findingToIssue(f, model.SeverityError, reportRow, col, value)
				report.Issues = append(report.Issues, issue)
				fr.Issues = append(fr.Issues, issue)
			}
			for _, f := range res.Warnings {
				issue := findingToIssue(f, model.SeverityWarning, reportRow, col, value)
				report.Issues = append(report.Issues, issue)
				fr.Issues = append(fr.Issues, issue)
			}
		}
	}
}

// detectDuplicateIDs runs the full-column duplicate pass over every
// employee-ID column. Each occurrence gets its own error issue whose
// description names all conflicting report rows.
func (a *Analyzer) detectDuplicateIDs(report *model.AnalysisReport, rows [][]string, fieldTypes []model.FieldType) {
	for col, ft := range fieldTypes {
		if ft != model.FieldEmployeeID {
			continue
		}

		values := make([]string, len(rows))
		for i, row := range rows {
			if col < len(row) {
				values[i] = row[col]
			}
		}

		dupes := validator.FindDuplicates(values)
		keys := make([]string, 0, len(dupes))
		for key := range dupes {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			indices := dupes[key]
			rowNums := make([]string, len(indices))
			for i, idx := range indices {
				rowNums[i] = fmt.Sprintf("%d", idx+2)
			}
			desc := fmt.Sprintf("duplicate employee ID %q appears in rows %s", values[indices[0]], strings.Join(rowNums, ", "))

			for _, idx := range indices {
				issue := model.Issue{
					Row:           idx + 2,
					Column:        col,
					Type:          model.IssueDuplicate,
					Severity:      model.SeverityError,
					OriginalValue: values[idx],
					Description:   desc,
				}
				report.Issues = append(report.Issues, issue)
				report.FieldReports[col].Issues = append(report.FieldReports[col].Issues, issue)
			}
		}
	}
}

func findingToIssue(f validator.Finding, severity model.IssueSeverity, row, col int, value string) model.Issue {
	return model.Issue{
		Row:           row,
		Column:        col,
		Type:          f.Type,
		Severity:      severity,
		OriginalValue: value,
		SuggestedFix:  f.Suggestion,
		Description:   f.Message,
	}
}
