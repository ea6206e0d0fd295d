// pkg/scanner/hidden.go
package scanner

import (
	"fmt"
	"strings"

	"github.com/rosterdata/ingest-quality/pkg/model"
)

// hiddenChar describes one invisible or typographic codepoint and its
// canonical replacement.
type hiddenChar struct {
	replacement rune // -1 means remove
	issueType   model.IssueType
	label       string
}

var hiddenChars = map[rune]hiddenChar{
	'\u00A0': {' ', model.IssueNBSP, "non-breaking space"},
	'\u200B': {-1, model.IssueZeroWidth, "zero-width space"},
	'\u200C': {-1, model.IssueZeroWidth, "zero-width non-joiner"},
	'\u200D': {-1, model.IssueZeroWidth, "zero-width joiner"},
	'\uFEFF': {-1, model.IssueZeroWidth, "zero-width no-break space"},
	'\u2018': {'\'', model.IssueSmartQuote, "left single smart quote"},
	'\u2019': {'\'', model.IssueSmartQuote, "right single smart quote"},
	'\u201C': {'"', model.IssueSmartQuote, "left double smart quote"},
	'\u201D': {'"', model.IssueSmartQuote, "right double smart quote"},
}

// DetectHiddenCharacters scans decoded text codepoint by codepoint for
// NBSP, zero-width characters, and smart quotes. Each hit reports its
// rune position and numeric codepoint at severity warning; these are
// cosmetic findings and never block a row on their own.
func DetectHiddenCharacters(value string, row, col int) []model.Issue {
	var issues []model.Issue
	pos := 0
	for _, r := range value {
		if hc, ok := hiddenChars[r]; ok {
			fix := ""
			if hc.replacement != -1 {
				fix = string(hc.replacement)
			}
			issues = append(issues, model.Issue{
				Row:           row,
				Column:        col,
				Type:          hc.issueType,
				Severity:      model.SeverityWarning,
				OriginalValue: value,
				SuggestedFix:  fix,
				Description:   fmt.Sprintf("%s (U+%04X) at position %d", hc.label, r, pos),
			})
		}
		pos++
	}
	return issues
}

// ReplaceHidden applies the canonical substitutions to a value: NBSP
// becomes a regular space, zero-width characters are removed, and smart
// quotes become their straight equivalents. The cleaning engine shares
// this table so detection and repair cannot drift apart.
func ReplaceHidden(value string) string {
	return strings.Map(func(r rune) rune {
		if hc, ok := hiddenChars[r]; ok {
			return hc.replacement
		}
		return r
	}, value)
}
