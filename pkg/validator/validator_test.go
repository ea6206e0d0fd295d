// pkg/validator/validator_test.go
package validator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterdata/ingest-quality/pkg/model"
)

func float64Ptr(f float64) *float64 { return &f }

func TestValidateFieldRequired(t *testing.T) {
	res := ValidateField("", model.FieldEmail, DefaultFieldOptions())
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, model.IssueMissingRequired, res.Errors[0].Type)

	// Whitespace-only counts as empty.
	res = ValidateField("   ", model.FieldEmployeeID, DefaultFieldOptions())
	assert.False(t, res.Valid)

	res = ValidateField("", model.FieldEmail, FieldOptions{Required: false})
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateEmployeeID(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"EMP001", true},
		{"emp-001_A", true},
		{"12345", true},
		{"EMP 001", false},
		{"EMP@001", false},
		{"E#1", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			res := ValidateField(tt.value, model.FieldEmployeeID, DefaultFieldOptions())
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, model.IssueInvalidFormat, res.Errors[0].Type)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"alice@example.com", true},
		{"a.b+tag@sub.domain.co", true},
		{"no-at-sign.example.com", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"missing@tld", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			res := ValidateField(tt.value, model.FieldEmail, DefaultFieldOptions())
			assert.Equal(t, tt.valid, res.Valid)
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"USD", true},
		{"eur", true},
		{"GBP", true},
		{"US", false},
		{"DOLLARS", false},
		{"ZZZ", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			res := ValidateField(tt.value, model.FieldCurrency, DefaultFieldOptions())
			assert.Equal(t, tt.valid, res.Valid)
		})
	}

	t.Run("caller-supplied codes extend the set", func(t *testing.T) {
		opts := DefaultFieldOptions()
		opts.CurrencyCodes = []string{"XBT"}
		res := ValidateField("xbt", model.FieldCurrency, opts)
		assert.True(t, res.Valid)
	})
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		valid    bool
		warnings int
	}{
		{"iso", "2024-03-15", true, 0},
		{"iso leap day", "2024-02-29", true, 0},
		{"iso impossible leap day", "2023-02-29", false, 0},
		{"iso month 13", "2024-13-01", false, 0},
		{"dd-mon-yyyy", "15-Jan-2024", true, 0},
		{"dd-mon-yy pivots to 2000s", "15-Jan-24", true, 0},
		{"dd-mon overflow day", "32-Jan-2024", false, 0},
		{"unknown month abbreviation", "15-Foo-2024", false, 0},
		{"slash unambiguous us", "04/15/2024", true, 0},
		{"slash unambiguous day-first", "15/04/2024", true, 0},
		{"slash ambiguous", "03/04/2024", true, 1},
		{"slash both too large", "13/13/2024", false, 0},
		{"slash impossible day", "02/30/2024", false, 0},
		{"free text", "March 15, 2024", false, 0},
		{"iso-ish with time", "2024-03-15T00:00:00", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateField(tt.value, model.FieldDate, DefaultFieldOptions())
			assert.Equal(t, tt.valid, res.Valid)
			assert.Len(t, res.Warnings, tt.warnings)
			if tt.warnings > 0 {
				assert.Contains(t, res.Warnings[0].Message, "ambiguous")
			}
		})
	}
}

func TestValidateNumber(t *testing.T) {
	t.Run("plain and US-grouped accepted silently", func(t *testing.T) {
		for _, v := range []string{"1234", "-42", "1234.56", "1,234,567.89", "-1,000"} {
			res := ValidateField(v, model.FieldNumber, DefaultFieldOptions())
			assert.True(t, res.Valid, v)
			assert.Empty(t, res.Warnings, v)
		}
	})

	t.Run("european formats warn with normalized suggestion", func(t *testing.T) {
		res := ValidateField("1.234,56", model.FieldNumber, DefaultFieldOptions())
		assert.True(t, res.Valid)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, "1234.56", res.Warnings[0].Suggestion)

		res = ValidateField("1234,56", model.FieldNumber, DefaultFieldOptions())
		assert.True(t, res.Valid)
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, "1234.56", res.Warnings[0].Suggestion)
	})

	t.Run("non-numbers rejected", func(t *testing.T) {
		for _, v := range []string{"abc", "12a", "1.2.3", "--5", "1,2,3"} {
			res := ValidateField(v, model.FieldNumber, DefaultFieldOptions())
			assert.False(t, res.Valid, v)
			assert.Equal(t, model.IssueInvalidFormat, res.Errors[0].Type)
		}
	})

	t.Run("range bounds", func(t *testing.T) {
		opts := DefaultFieldOptions()
		opts.Min = float64Ptr(0)
		opts.Max = float64Ptr(1000000)

		res := ValidateField("50000", model.FieldNumber, opts)
		assert.True(t, res.Valid)

		res = ValidateField("-1", model.FieldNumber, opts)
		assert.False(t, res.Valid)
		assert.Equal(t, model.IssueOutOfRange, res.Errors[0].Type)

		res = ValidateField("2,000,000", model.FieldNumber, opts)
		assert.False(t, res.Valid)
		assert.Equal(t, model.IssueOutOfRange, res.Errors[0].Type)
	})
}

func TestValidateText(t *testing.T) {
	opts := DefaultFieldOptions()
	opts.MinLength = 2
	opts.MaxLength = 5
	opts.Pattern = regexp.MustCompile(`^[a-z]+$`)

	assert.True(t, ValidateField("abc", model.FieldText, opts).Valid)
	assert.False(t, ValidateField("a", model.FieldText, opts).Valid)
	assert.False(t, ValidateField("abcdef", model.FieldText, opts).Valid)
	assert.False(t, ValidateField("ABC", model.FieldText, opts).Valid)

	// Unconstrained text accepts anything non-empty.
	assert.True(t, ValidateField("anything at all", model.FieldText, DefaultFieldOptions()).Valid)
}

func TestValidateUntypedField(t *testing.T) {
	res := ValidateField("anything", model.FieldNone, DefaultFieldOptions())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestFindDuplicates(t *testing.T) {
	t.Run("case-insensitive grouping", func(t *testing.T) {
		dupes := FindDuplicates([]string{"a", "A", "", "b"})
		require.Len(t, dupes, 1)
		assert.Equal(t, []int{0, 1}, dupes["a"])
	})

	t.Run("whitespace normalized", func(t *testing.T) {
		dupes := FindDuplicates([]string{" E001 ", "E001", "E002"})
		require.Len(t, dupes, 1)
		assert.Equal(t, []int{0, 1}, dupes["e001"])
	})

	t.Run("blanks never group", func(t *testing.T) {
		assert.Empty(t, FindDuplicates([]string{"", "  ", ""}))
	})

	t.Run("no duplicates", func(t *testing.T) {
		assert.Empty(t, FindDuplicates([]string{"a", "b", "c"}))
	})

	t.Run("triple occurrence", func(t *testing.T) {
		dupes := FindDuplicates([]string{"x", "y", "X", "x"})
		assert.Equal(t, []int{0, 2, 3}, dupes["x"])
	})
}
