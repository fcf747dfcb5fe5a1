package extract

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WorkbookTables reads the first sheet of an xlsx workbook as a single
// table grid, the shape the extractors consume. Rows are ragged; trailing
// empty cells are absent and handled by bounds-safe access.
func WorkbookTables(r io.Reader) ([]Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return []Table{Table(rows)}, nil
}
