// pkg/validator/validator.go
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rosterdata/ingest-quality/pkg/model"
)

// FieldOptions carries per-field validation constraints. The zero value
// is not useful; start from DefaultFieldOptions, which marks the field
// required.
type FieldOptions struct {
	Required      bool
	MinLength     int
	MaxLength     int
	Pattern       *regexp.Regexp
	Min           *float64
	Max           *float64
	CurrencyCodes []string
}

// DefaultFieldOptions returns the validation defaults.
func DefaultFieldOptions() FieldOptions {
	return FieldOptions{Required: true}
}

// Finding is a single validation outcome, either an error or a warning
// depending on which list it lands in.
type Finding struct {
	Type       model.IssueType
	Message    string
	Suggestion string
}

// Result is the outcome of validating one value. Valid is false exactly
// when Errors is non-empty; warnings flag ambiguity or non-canonical
// form without failing the value.
type Result struct {
	Valid    bool
	Errors   []Finding
	Warnings []Finding
}

var (
	employeeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	currencyPattern   = regexp.MustCompile(`^[A-Za-z]{3}$`)

	plainNumberPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	usGroupedPattern   = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)
	euGroupedPattern   = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+(,\d+)?$`)
	euDecimalPattern   = regexp.MustCompile(`^-?\d+,\d+$`)

	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monDatePattern   = regexp.MustCompile(`^(\d{1,2})-([A-Za-z]{3})-(\d{2}|\d{4})$`)
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// ValidateField runs the rule set for the declared field type over a
// single cell value. Empty values fail with a missing-required error
// when the field is required and pass otherwise; no other rule sees an
// empty value.
func ValidateField(value string, fieldType model.FieldType, opts FieldOptions) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if opts.Required {
			return errorResult(model.IssueMissingRequired, "required value is missing", "")
		}
		return Result{Valid: true}
	}

	switch fieldType {
	case model.FieldEmployeeID:
		return validateEmployeeID(trimmed)
	case model.FieldEmail:
		return validateEmail(trimmed)
	case model.FieldCurrency:
		return validateCurrency(trimmed, opts)
	case model.FieldDate:
		return validateDate(trimmed)
	case model.FieldNumber:
		return validateNumber(trimmed, opts)
	case model.FieldText:
		return validateText(trimmed, opts)
	default:
		return Result{Valid: true}
	}
}

func errorResult(t model.IssueType, msg, suggestion string) Result {
	return Result{Errors: []Finding{{Type: t, Message: msg, Suggestion: suggestion}}}
}

func validateEmployeeID(value string) Result {
	if !employeeIDPattern.MatchString(value) {
		return errorResult(model.IssueInvalidFormat,
			"employee ID may only contain letters, digits, hyphens and underscores", "")
	}
	return Result{Valid: true}
}

func validateEmail(value string) Result {
	if !emailPattern.MatchString(value) {
		return errorResult(model.IssueInvalidFormat,
			"not a valid email address (expected local@domain.tld with no whitespace)", "")
	}
	return Result{Valid: true}
}

func validateCurrency(value string, opts FieldOptions) Result {
	upper := strings.ToUpper(value)
	for _, code := range opts.CurrencyCodes {
		if strings.EqualFold(code, value) {
			return Result{Valid: true}
		}
	}
	if currencyPattern.MatchString(value) && isoCurrencyCodes[upper] {
		return Result{Valid: true}
	}
	return errorResult(model.IssueInvalidFormat,
		fmt.Sprintf("%q is not a recognized ISO 4217 currency code", value), "")
}

func validateDate(value string) Result {
	switch {
	case isoDatePattern.MatchString(value):
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return errorResult(model.IssueInvalidFormat,
				fmt.Sprintf("%q is not a possible calendar date", value), "")
		}
		return Result{Valid: true}

	case monDatePattern.MatchString(value):
		m := monDatePattern.FindStringSubmatch(value)
		day, _ := strconv.Atoi(m[1])
		month, ok := monthAbbreviations[strings.ToLower(m[2])]
		if !ok {
			return errorResult(model.IssueInvalidFormat,
				fmt.Sprintf("unknown month abbreviation %q", m[2]), "")
		}
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		if !validCalendarDate(year, month, day) {
			return errorResult(model.IssueInvalidFormat,
				fmt.Sprintf("%q is not a possible calendar date", value), "")
		}
		return Result{Valid: true}

	case slashDatePattern.MatchString(value):
		m := slashDatePattern.FindStringSubmatch(value)
		first, _ := strconv.Atoi(m[1])
		second, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		month, day := first, second
		ambiguous := false
		switch {
		case first > 12 && second > 12:
			return errorResult(model.IssueInvalidFormat,
				fmt.Sprintf("%q is not a possible calendar date", value), "")
		case first > 12:
			// First component can only be the day.
			month, day = second, first
		case second > 12:
			month, day = first, second
		default:
			ambiguous = true
		}

		if !validCalendarDate(year, month, day) {
			return errorResult(model.IssueInvalidFormat,
				fmt.Sprintf("%q is not a possible calendar date", value), "")
		}
		res := Result{Valid: true}
		if ambiguous {
			res.Warnings = append(res.Warnings, Finding{
				Type:    model.IssueInvalidFormat,
				Message: fmt.Sprintf("ambiguous date format: %q could be MM/DD/YYYY or DD/MM/YYYY", value),
			})
		}
		return res

	default:
		return errorResult(model.IssueInvalidFormat,
			fmt.Sprintf("unrecognized date format %q (expected YYYY-MM-DD, DD-Mon-YYYY or MM/DD/YYYY)", value), "")
	}
}

func validateNumber(value string, opts FieldOptions) Result {
	var parsed float64
	var warnings []Finding

	switch {
	case plainNumberPattern.MatchString(value):
		parsed, _ = strconv.ParseFloat(value, 64)
	case usGroupedPattern.MatchString(value):
		parsed, _ = strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	case euGroupedPattern.MatchString(value) || euDecimalPattern.MatchString(value):
		normalized := strings.ReplaceAll(value, ".", "")
		normalized = strings.Replace(normalized, ",", ".", 1)
		parsed, _ = strconv.ParseFloat(normalized, 64)
		warnings = append(warnings, Finding{
			Type:       model.IssueInvalidFormat,
			Message:    fmt.Sprintf("%q uses European number formatting; interpreted as %s", value, strconv.FormatFloat(parsed, 'f', -1, 64)),
			Suggestion: strconv.FormatFloat(parsed, 'f', -1, 64),
		})
	default:
		return errorResult(model.IssueInvalidFormat,
			fmt.Sprintf("%q is not a number", value), "")
	}

	var errs []Finding
	if opts.Min != nil && parsed < *opts.Min {
		errs = append(errs, Finding{
			Type:    model.IssueOutOfRange,
			Message: fmt.Sprintf("value %s is below the minimum of %s", formatFloat(parsed), formatFloat(*opts.Min)),
		})
	}
	if opts.Max != nil && parsed > *opts.Max {
		errs = append(errs, Finding{
			Type:    model.IssueOutOfRange,
			Message: fmt.Sprintf("value %s exceeds the maximum of %s", formatFloat(parsed), formatFloat(*opts.Max)),
		})
	}

	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warnings}
}

func validateText(value string, opts FieldOptions) Result {
	var errs []Finding
	if opts.MinLength > 0 && len(value) < opts.MinLength {
		errs = append(errs, Finding{
			Type:    model.IssueInvalidFormat,
			Message: fmt.Sprintf("value is shorter than the minimum length of %d", opts.MinLength),
		})
	}
	if opts.MaxLength > 0 && len(value) > opts.MaxLength {
		errs = append(errs, Finding{
			Type:    model.IssueInvalidFormat,
			Message: fmt.Sprintf("value is longer than the maximum length of %d", opts.MaxLength),
		})
	}
	if opts.Pattern != nil && !opts.Pattern.MatchString(value) {
		errs = append(errs, Finding{
			Type:    model.IssueInvalidFormat,
			Message: fmt.Sprintf("value does not match the required pattern %s", opts.Pattern.String()),
		})
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func validCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	// Day zero of the next month is the last day of this one.
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return day <= last
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var monthAbbreviations = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// isoCurrencyCodes covers the actively traded ISO 4217 codes. Callers
// with non-standard codes supply them through FieldOptions.CurrencyCodes.
var isoCurrencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CHF": true,
	"CAD": true, "AUD": true, "NZD": true, "CNY": true, "HKD": true,
	"SGD": true, "SEK": true, "NOK": true, "DKK": true, "INR": true,
	"BRL": true, "MXN": true, "ZAR": true, "KRW": true, "PLN": true,
	"CZK": true, "HUF": true, "ILS": true, "AED": true, "SAR": true,
	"THB": true, "TWD": true, "TRY": true, "RUB": true, "IDR": true,
	"MYR": true, "PHP": true, "VND": true, "CLP": true, "COP": true,
	"ARS": true, "PEN": true, "EGP": true, "NGN": true, "KES": true,
}
