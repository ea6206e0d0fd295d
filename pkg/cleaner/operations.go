// pkg/cleaner/operations.go
package cleaner

import (
	"strings"

	"github.com/rosterdata/ingest-quality/pkg/scanner"
)

// Operation names recorded in cell diffs and tallied in the summary.
const (
	OpStripBOM           = "stripBOM"
	OpReplaceHiddenChars = "replaceHiddenChars"
	OpTrimWhitespace     = "trimWhitespace"
)

// cleanCell runs the normalization pipeline over one value. Each stage
// is independently toggleable and is recorded by name only when it
// actually changed the value. Stage order is fixed: BOM strip, hidden
// character replacement, whitespace trim.
func cleanCell(value string, opts Options) (string, []string) {
	var ops []string

	if opts.StripBOM {
		if stripped := strings.TrimPrefix(value, "\uFEFF"); stripped != value {
			value = stripped
			ops = append(ops, OpStripBOM)
		}
	}

	if opts.ReplaceHiddenChars {
		if replaced := scanner.ReplaceHidden(value); replaced != value {
			value = replaced
			ops = append(ops, OpReplaceHiddenChars)
		}
	}

	if opts.TrimWhitespace {
		if trimmed := strings.TrimSpace(value); trimmed != value {
			value = trimmed
			ops = append(ops, OpTrimWhitespace)
		}
	}

	return value, ops
}
