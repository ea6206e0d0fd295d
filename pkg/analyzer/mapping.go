// pkg/analyzer/mapping.go
package analyzer

import (
	"regexp"
	"strings"

	"github.com/rosterdata/ingest-quality/pkg/model"
)

// headerPattern pairs a header-name regexp with the field type it
// implies. Patterns are evaluated in order, first match wins.
type headerPattern struct {
	pattern   *regexp.Regexp
	fieldType model.FieldType
}

var headerPatterns = []headerPattern{
	{regexp.MustCompile(`(?i)employee[_\s-]?id|^emp[_\s-]?id$|^staff[_\s-]?id$`), model.FieldEmployeeID},
	{regexp.MustCompile(`(?i)e-?mail`), model.FieldEmail},
	{regexp.MustCompile(`(?i)currency|^ccy$`), model.FieldCurrency},
	{regexp.MustCompile(`(?i)date|^dob$|birth|hired|joined`), model.FieldDate},
	{regexp.MustCompile(`(?i)salary|bonus|amount|wage|commission|^pay\b|compensation`), model.FieldNumber},
}

// resolveFieldType maps a header name to a field type. An explicit
// caller-supplied mapping always wins over pattern inference; headers
// matching nothing stay untyped and only get hidden-character scanning.
func resolveFieldType(header string, explicit map[string]model.FieldType) model.FieldType {
	if ft, ok := explicit[strings.ToLower(strings.TrimSpace(header))]; ok {
		return ft
	}
	for _, hp := range headerPatterns {
		if hp.pattern.MatchString(header) {
			return hp.fieldType
		}
	}
	return model.FieldNone
}

// lowerMapping normalizes the explicit column mapping to lowercase keys
// so header matching is case-insensitive.
func lowerMapping(mapping map[string]model.FieldType) map[string]model.FieldType {
	if len(mapping) == 0 {
		return nil
	}
	out := make(map[string]model.FieldType, len(mapping))
	for name, ft := range mapping {
		out[strings.ToLower(strings.TrimSpace(name))] = ft
	}
	return out
}
