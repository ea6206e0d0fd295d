// pkg/analyzer/analyzer_test.go
package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterdata/ingest-quality/pkg/model"
)

const cleanFile = `Employee_ID,Full Name,Email,Hire Date,Salary,Currency
E001,Alice Smith,alice@example.com,2023-04-15,85000,USD
E002,Bob Jones,bob@example.com,2022-11-01,92500.50,EUR
E003,Carol White,carol@example.com,2024-01-08,78000,GBP
E004,Dan Brown,dan@example.com,15-Mar-2021,64000,CHF
E005,Eve Green,eve@example.com,2020-07-30,"1,250,000",JPY
`

func TestAnalyzeFileCleanInput(t *testing.T) {
	a := New(nil)
	report := a.AnalyzeFile([]byte(cleanFile), DefaultOptions())

	assert.Equal(t, 0, report.Summary.TotalIssues)
	assert.Empty(t, report.Issues)

	assert.Equal(t, 5, report.FileInfo.TotalRows)
	assert.Equal(t, 6, report.FileInfo.TotalColumns)
	assert.Equal(t, ",", report.FileInfo.Delimiter)
	assert.Equal(t, len(cleanFile), report.FileInfo.SizeBytes)

	assert.Equal(t, "UTF-8", report.Encoding.Encoding)
	assert.False(t, report.Encoding.HasBOM)

	require.Len(t, report.FieldReports, 6)
	wantTypes := []model.FieldType{
		model.FieldEmployeeID,
		model.FieldNone,
		model.FieldEmail,
		model.FieldDate,
		model.FieldNumber,
		model.FieldCurrency,
	}
	for i, fr := range report.FieldReports {
		assert.Equal(t, wantTypes[i], fr.FieldType, fr.ColumnName)
		assert.Equal(t, 5, fr.TotalValues)
		assert.Equal(t, 0, fr.EmptyValues)
		assert.Equal(t, 0, fr.InvalidValues)
	}
}

func TestAnalyzeFileBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(cleanFile)...)
	report := New(nil).AnalyzeFile(data, DefaultOptions())

	require.NotEmpty(t, report.Issues)
	bom := report.Issues[0]
	assert.Equal(t, model.IssueBOM, bom.Type)
	assert.Equal(t, model.SeverityInfo, bom.Severity)
	assert.Equal(t, 0, bom.Row)
	assert.Equal(t, -1, bom.Column)
	assert.Equal(t, 1, report.Summary.InfoCount)

	// The BOM must not leak into the first header.
	assert.Equal(t, "Employee_ID", report.FieldReports[0].ColumnName)
	assert.Equal(t, 5, report.FileInfo.TotalRows)
}

func TestAnalyzeFileNonUTF8Warning(t *testing.T) {
	data := []byte("Employee_ID,Name\nE001,Sm\x93th\n")
	report := New(nil).AnalyzeFile(data, DefaultOptions())

	assert.Equal(t, "Windows-1252", report.Encoding.Encoding)
	var found bool
	for _, issue := range report.Issues {
		if issue.Type == model.IssueEncoding {
			found = true
			assert.Equal(t, model.SeverityWarning, issue.Severity)
			assert.Equal(t, 0, issue.Row)
			assert.Equal(t, -1, issue.Column)
		}
	}
	assert.True(t, found, "expected an encoding issue")
}

func TestAnalyzeFileHiddenCharacters(t *testing.T) {
	data := []byte("Employee_ID,Full Name\nE001,Alice\u00A0Smith\n")
	report := New(nil).AnalyzeFile(data, DefaultOptions())

	require.Len(t, report.Issues, 1)
	issue := report.Issues[0]
	assert.Equal(t, model.IssueNBSP, issue.Type)
	assert.Equal(t, 2, issue.Row)
	assert.Equal(t, 1, issue.Column)
	assert.Equal(t, model.SeverityWarning, issue.Severity)

	// The finding lands on the owning field report too.
	require.Len(t, report.FieldReports[1].Issues, 1)
	assert.Equal(t, model.IssueNBSP, report.FieldReports[1].Issues[0].Type)
}

func TestAnalyzeFileValidation(t *testing.T) {
	data := []byte("Employee_ID,Email,Hire Date,Salary\n" +
		"E001,not-an-email,2023-04-15,85000\n" +
		"E002,,03/04/2024,90000\n")
	report := New(nil).AnalyzeFile(data, DefaultOptions())

	byType := map[model.IssueType][]model.Issue{}
	for _, issue := range report.Issues {
		byType[issue.Type] = append(byType[issue.Type], issue)
	}

	require.Len(t, byType[model.IssueInvalidFormat], 2)
	bad := byType[model.IssueInvalidFormat][0]
	assert.Equal(t, 2, bad.Row)
	assert.Equal(t, 1, bad.Column)
	assert.Equal(t, model.SeverityError, bad.Severity)
	assert.Equal(t, "not-an-email", bad.OriginalValue)

	// Row 3's ambiguous slash date is a warning, not an error.
	ambiguous := byType[model.IssueInvalidFormat][1]
	assert.Equal(t, 3, ambiguous.Row)
	assert.Equal(t, model.SeverityWarning, ambiguous.Severity)

	require.Len(t, byType[model.IssueMissingRequired], 1)
	missing := byType[model.IssueMissingRequired][0]
	assert.Equal(t, 3, missing.Row)
	assert.Equal(t, 1, missing.Column)

	assert.Equal(t, 1, report.FieldReports[1].EmptyValues)
	assert.Equal(t, 2, report.FieldReports[1].InvalidValues)
}

func TestAnalyzeFileDuplicateIDs(t *testing.T) {
	data := []byte("Employee_ID,Name\nE001,Alice\nE002,Bob\ne001,Alice Again\n")
	report := New(nil).AnalyzeFile(data, DefaultOptions())

	var dupes []model.Issue
	for _, issue := range report.Issues {
		if issue.Type == model.IssueDuplicate {
			dupes = append(dupes, issue)
		}
	}
	require.Len(t, dupes, 2)
	assert.Equal(t, 2, dupes[0].Row)
	assert.Equal(t, 4, dupes[1].Row)
	for _, d := range dupes {
		assert.Equal(t, 0, d.Column)
		assert.Equal(t, model.SeverityError, d.Severity)
		assert.Contains(t, d.Description, "rows 2, 4")
	}
	assert.Equal(t, 2, report.Summary.ErrorCount)
}

func TestAnalyzeFileColumnMappingOverride(t *testing.T) {
	opts := DefaultOptions()
	opts.ColumnMapping = map[string]model.FieldType{
		"Code":      model.FieldEmployeeID,
		"HIRE DATE": model.FieldText,
	}
	data := []byte("Code,Hire Date\nE 01,whatever\n")
	report := New(nil).AnalyzeFile(data, opts)

	assert.Equal(t, model.FieldEmployeeID, report.FieldReports[0].FieldType)
	// Explicit mapping suppresses the date inference, so "whatever" passes.
	assert.Equal(t, model.FieldText, report.FieldReports[1].FieldType)

	require.Len(t, report.Issues, 1)
	assert.Equal(t, model.IssueInvalidFormat, report.Issues[0].Type)
	assert.Equal(t, "E 01", report.Issues[0].OriginalValue)
}

func TestAnalyzeFileMaxRows(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Employee_ID,Name\n")
	for i := 0; i < 10; i++ {
		sb.WriteString("E00")
		sb.WriteByte(byte('0' + i))
		sb.WriteString(",Person\n")
	}

	opts := DefaultOptions()
	opts.MaxRows = 4
	report := New(nil).AnalyzeFile([]byte(sb.String()), opts)

	assert.Equal(t, 4, report.FileInfo.TotalRows)
	assert.Equal(t, 4, report.FieldReports[0].TotalValues)
}

func TestAnalyzeFileHeaderless(t *testing.T) {
	opts := DefaultOptions()
	opts.HasHeaders = false
	report := New(nil).AnalyzeFile([]byte("E001,Alice\nE002,Bob\n"), opts)

	assert.Equal(t, 2, report.FileInfo.TotalRows)
	require.Len(t, report.FieldReports, 2)
	assert.Equal(t, "Column 1", report.FieldReports[0].ColumnName)
	assert.Equal(t, model.FieldNone, report.FieldReports[0].FieldType)
}

func TestAnalyzeFileEmptyInput(t *testing.T) {
	report := New(nil).AnalyzeFile(nil, DefaultOptions())
	assert.Equal(t, 0, report.FileInfo.TotalRows)
	assert.Equal(t, 0, report.Summary.TotalIssues)
	assert.NotNil(t, report.Issues)
	assert.NotNil(t, report.FieldReports)
}

func TestResolveFieldType(t *testing.T) {
	tests := []struct {
		header string
		want   model.FieldType
	}{
		{"Employee_ID", model.FieldEmployeeID},
		{"emp id", model.FieldEmployeeID},
		{"staff_id", model.FieldEmployeeID},
		{"Email Address", model.FieldEmail},
		{"E-Mail", model.FieldEmail},
		{"Currency", model.FieldCurrency},
		{"ccy", model.FieldCurrency},
		{"Hire Date", model.FieldDate},
		{"DOB", model.FieldDate},
		{"Annual Salary", model.FieldNumber},
		{"bonus_amount", model.FieldNumber},
		{"Full Name", model.FieldNone},
		{"Department", model.FieldNone},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveFieldType(tt.header, nil))
		})
	}
}
