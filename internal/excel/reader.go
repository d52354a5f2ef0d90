// Package excel is the decode boundary: it turns an uploaded workbook into
// ordered raw rows for the importer. A workbook that cannot be opened at all
// is the only failure that aborts a whole batch; everything past this point
// is per-row.
package excel

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ebulut/progress-tracker/internal/importer"
)

// ErrUnreadableWorkbook marks a file that could not be decoded as a
// spreadsheet.
var ErrUnreadableWorkbook = errors.New("dosya elektronik tablo olarak okunamadı")

// ReadRows decodes the first sheet of a workbook into importer rows.
// Raw cell values are requested so date cells come back as their serial
// numbers instead of display strings.
func ReadRows(r io.Reader) ([]importer.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: çalışma sayfası yok", ErrUnreadableWorkbook)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}

	cells := make([][]importer.Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]importer.Cell, len(row))
		for j, raw := range row {
			cells[i][j] = toCell(raw)
		}
	}
	return importer.Rows(cells), nil
}

// toCell classifies a raw cell value. Raw numeric values (including date
// serials) arrive as plain decimal strings.
func toCell(raw string) importer.Cell {
	if raw == "" {
		return importer.Cell{Kind: importer.CellEmpty}
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return importer.NumberCell(v)
	}
	return importer.TextCell(raw)
}
