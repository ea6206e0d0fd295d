// pkg/model/report.go
package model

// IssueSeverity classifies how an issue affects downstream processing.
// Errors on key fields drive row rejection during cleaning; warnings are
// surfaced for review but never block; info entries are observational.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
	SeverityInfo    IssueSeverity = "info"
)

// IssueType identifies the kind of data-quality problem found.
type IssueType string

const (
	IssueBOM             IssueType = "bom"
	IssueEncoding        IssueType = "encoding"
	IssueNBSP            IssueType = "nbsp"
	IssueZeroWidth       IssueType = "zero_width"
	IssueSmartQuote      IssueType = "smart_quote"
	IssueInvalidFormat   IssueType = "invalid_format"
	IssueMissingRequired IssueType = "missing_required"
	IssueOutOfRange      IssueType = "out_of_range"
	IssueDuplicate       IssueType = "duplicate"
	IssueCustom          IssueType = "custom"
)

// FieldType is the semantic type assigned to a column, either by an
// explicit caller-supplied mapping or by header-name inference. Columns
// with FieldNone receive no semantic validation.
type FieldType string

const (
	FieldNone       FieldType = ""
	FieldEmployeeID FieldType = "employee_id"
	FieldEmail      FieldType = "email"
	FieldCurrency   FieldType = "currency"
	FieldDate       FieldType = "date"
	FieldNumber     FieldType = "number"
	FieldText       FieldType = "text"
)

// Issue is a single data-quality finding. Row is the 1-indexed data row
// as seen in a spreadsheet (the header row counts as row 1, so the first
// data row is 2); Column is 0-indexed. File-level issues such as BOM and
// encoding findings use Row 0 and Column -1. Issues are append-only.
type Issue struct {
	Row           int           `json:"row"`
	Column        int           `json:"column"`
	Type          IssueType     `json:"type"`
	Severity      IssueSeverity `json:"severity"`
	OriginalValue string        `json:"originalValue,omitempty"`
	SuggestedFix  string        `json:"suggestedFix,omitempty"`
	Description   string        `json:"description"`
}

// FieldReport is the per-column aggregate built during the cell scan.
type FieldReport struct {
	ColumnIndex   int       `json:"columnIndex"`
	ColumnName    string    `json:"columnName"`
	FieldType     FieldType `json:"fieldType,omitempty"`
	TotalValues   int       `json:"totalValues"`
	EmptyValues   int       `json:"emptyValues"`
	InvalidValues int       `json:"invalidValues"`
	Issues        []Issue   `json:"issues"`
}

// BOMInfo describes a detected byte order mark.
type BOMInfo struct {
	HasBOM    bool   `json:"hasBOM"`
	BOMType   string `json:"bomType"`
	BOMLength int    `json:"bomLength"`
}

// EncodingInfo is the result of encoding classification over raw bytes.
type EncodingInfo struct {
	Encoding   string  `json:"encoding"`
	Confidence float64 `json:"confidence"`
	HasBOM     bool    `json:"hasBOM"`
	BOMType    string  `json:"bomType"`
}

// FileInfo holds structural facts about the analyzed file.
type FileInfo struct {
	SizeBytes    int    `json:"sizeBytes"`
	TotalRows    int    `json:"totalRows"`
	TotalColumns int    `json:"totalColumns"`
	Delimiter    string `json:"delimiter"`
}

// Summary counts issues by severity.
type Summary struct {
	TotalIssues  int `json:"totalIssues"`
	ErrorCount   int `json:"errorCount"`
	WarningCount int `json:"warningCount"`
	InfoCount    int `json:"infoCount"`
}

// AnalysisReport is the full output of file analysis. It is built once
// per call and treated as read-only by downstream consumers; the cleaning
// engine reads it but never writes to it.
type AnalysisReport struct {
	FileInfo     FileInfo      `json:"fileInfo"`
	Encoding     EncodingInfo  `json:"encoding"`
	Issues       []Issue       `json:"issues"`
	Summary      Summary       `json:"summary"`
	FieldReports []FieldReport `json:"fieldReports"`
}
