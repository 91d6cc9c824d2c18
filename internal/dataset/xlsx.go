package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the benchmark table from a workbook sheet. Sheet selection
// follows Options: name first, then 1-based index, then the first sheet.
func LoadXLSX(path string, opt Options) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := opt.SheetName
	if sheet == "" {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		sheet = f.GetSheetName(idx - 1)
		if sheet == "" {
			return nil, fmt.Errorf("sheet index %d not found in %q (sheets: %s)",
				idx, path, strings.Join(f.GetSheetList(), ", "))
		}
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opt.LengthColumn)
	}

	lenIdx, gasIdx := -1, -1
	for i, h := range records[0] {
		switch {
		case strings.EqualFold(strings.TrimSpace(h), opt.LengthColumn):
			lenIdx = i
		case strings.EqualFold(strings.TrimSpace(h), opt.GasColumn):
			gasIdx = i
		}
	}
	if lenIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opt.LengthColumn)
	}
	if gasIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, opt.GasColumn)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if opt.MaxRows > 0 && len(rows) >= opt.MaxRows {
			break
		}
		rows = append(rows, Row{Length: cellAt(rec, lenIdx), Gas: cellAt(rec, gasIdx)})
	}
	return rows, nil
}

// cellAt tolerates short records; GetRows trims trailing empty cells.
func cellAt(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
