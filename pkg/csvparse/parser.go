// pkg/csvparse/parser.go
package csvparse

import (
	"fmt"
	"strings"
)

// Options controls parsing. A zero Delimiter enables auto-detection.
// Use DefaultOptions as the starting point; HasHeaders defaults to true.
type Options struct {
	Delimiter  rune
	HasHeaders bool
}

// DefaultOptions returns the parser defaults.
func DefaultOptions() Options {
	return Options{HasHeaders: true}
}

// Result holds the tokenized file. Rows exclude the header row when one
// was present. Delimiter is the delimiter actually used.
type Result struct {
	Headers   []string
	Rows      [][]string
	Delimiter rune
}

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// DetectDelimiter examines the first five lines of content and returns
// the candidate delimiter with the highest occurrence count outside
// quoted fields. Ties and missing signal fall back to a comma.
func DetectDelimiter(content string) rune {
	counts := make(map[rune]int, len(delimiterCandidates))
	inQuotes := false
	lines := 0
	for _, r := range content {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		if r == '\n' {
			lines++
			if lines >= 5 {
				break
			}
			continue
		}
		switch r {
		case ',', ';', '\t', '|':
			counts[r]++
		}
	}

	best := ','
	bestCount := 0
	for _, c := range delimiterCandidates {
		if counts[c] > bestCount {
			best = c
			bestCount = counts[c]
		}
	}
	return best
}

// Parse tokenizes delimited text with a single-pass two-state machine.
// Inside quotes a doubled quote is an escaped literal quote, and
// delimiters and newlines are appended verbatim; that is how embedded
// delimiters and multi-line cells are supported. The parser is
// deliberately permissive: a quote in the middle of an unquoted field is
// kept as-is, and rows shorter than the header are accepted unchanged.
func Parse(content string, opts Options) Result {
	delim := opts.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(content)
	}
	d := byte(delim)

	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	// Delimiter and structural characters are all ASCII, so a byte walk
	// is safe over UTF-8 input.
	for i := 0; i < len(content); i++ {
		c := content[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(content) && content[i+1] == '"' {
					field.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteByte(c)
			}
			continue
		}

		switch c {
		case '"':
			if field.Len() == 0 {
				inQuotes = true
			} else {
				field.WriteByte(c)
			}
		case d:
			row = append(row, field.String())
			field.Reset()
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			row = append(row, field.String())
			field.Reset()
			rows = append(rows, row)
			row = nil
		case '\n':
			row = append(row, field.String())
			field.Reset()
			rows = append(rows, row)
			row = nil
		default:
			field.WriteByte(c)
		}
	}

	if field.Len() > 0 || len(row) > 0 || inQuotes {
		row = append(row, field.String())
		rows = append(rows, row)
	}

	rows = dropEmptyRows(rows)

	var headers []string
	if opts.HasHeaders {
		if len(rows) > 0 {
			headers = rows[0]
			rows = rows[1:]
		}
	} else {
		headers = syntheticHeaders(rows)
	}

	return Result{Headers: headers, Rows: rows, Delimiter: delim}
}

// dropEmptyRows filters rows whose every cell is empty, the usual
// artifact of a trailing newline.
func dropEmptyRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if cell != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}

// syntheticHeaders generates "Column 1".."Column N" sized to the widest row.
func syntheticHeaders(rows [][]string) []string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	headers := make([]string, width)
	for i := range headers {
		headers[i] = fmt.Sprintf("Column %d", i+1)
	}
	return headers
}
