// Package extract turns raw page text and table grids from one statistics
// document into a partial match record. One extractor exists per document
// type; all of them skip malformed rows and keep going, reporting what was
// skipped instead of failing the document.
package extract

import (
	"fmt"
	"strings"
)

// Table is one extracted table: ordered rows of optionally-empty cells.
// Rows may have differing lengths; use cell() for bounds-safe access.
type Table [][]string

// cell returns the trimmed cell at column i, or "" when the row is shorter.
// Zero-width spaces from the PDF layer are stripped.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	s := strings.ReplaceAll(row[i], "​", "")
	return strings.TrimSpace(s)
}

// RowError records one skipped table row.
type RowError struct {
	Table  int    `json:"table"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("table %d row %d: %s", e.Table, e.Row, e.Reason)
}

// Report summarizes one extraction pass. Skipped rows are the expected
// failure mode for this document family, so they are collected as values
// rather than surfaced as errors.
type Report struct {
	Rows    int        `json:"rows"`
	Skipped []RowError `json:"skipped,omitempty"`
}

func (r *Report) skip(table, row int, reason string) {
	r.Skipped = append(r.Skipped, RowError{Table: table, Row: row, Reason: reason})
}
