package importer

import "strconv"

// CellKind discriminates the three raw cell states handed over by the
// spreadsheet decoding layer.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one raw spreadsheet cell. The decoding layer fills Number only
// when the cell held a true numeric value; Text always carries the raw
// string form for diagnostics.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell builds a text cell, collapsing blank strings to empty cells.
func TextCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell builds a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// IsEmpty reports whether the cell carries no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the raw form of the cell for error messages.
func (c Cell) String() string {
	return c.Text
}

// RawRow is one ordered spreadsheet row. SheetRow is the 1-based row number
// as the user sees it in their editor; the header row is row 1.
type RawRow struct {
	SheetRow int
	Cells    []Cell
}

// Cell returns the cell at the given column index, or an empty cell when the
// row is shorter than the requested column.
func (r RawRow) Cell(col int) Cell {
	if col < 0 || col >= len(r.Cells) {
		return Cell{Kind: CellEmpty}
	}
	return r.Cells[col]
}

// IsBlank reports whether every cell in the row is empty.
func (r RawRow) IsBlank() bool {
	for _, c := range r.Cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
