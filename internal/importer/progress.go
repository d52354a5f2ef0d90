package importer

import (
	"fmt"
	"time"
)

// ProgressRecord is a validated daily progress row.
type ProgressRecord struct {
	WorkItemID int64     `json:"workItemId"`
	BudgetCode string    `json:"budgetCode"`
	Date       time.Time `json:"date"`
	Quantity   float64   `json:"quantity"`
	Ratio      float64   `json:"ratio,omitempty"`
	Region     string    `json:"region,omitempty"`
}

// ValidateProgress validates a daily progress upload against the caller's
// budget code lookup. rows[0] is the header row. A quantity that parses to
// exactly zero drops the row with a warning: nothing happened that day, it
// is not a data point worth storing.
func ValidateProgress(rows []RawRow, lookup CodeLookup) *ValidationResult[ProgressRecord] {
	res := NewValidationResult[ProgressRecord]()
	if len(rows) == 0 {
		return res
	}

	cols, warnings := ResolveColumns(ProgressFields(), rows[0])
	res.Warnings = append(res.Warnings, warnings...)

	for _, row := range rows[1:] {
		if row.IsBlank() {
			continue
		}
		fr := newFieldReader(row, cols)

		date, _ := fr.requiredDay(FieldDate, "tarih")
		code, codeOK := fr.requiredText(FieldBudgetCode, "bütçe kodu")
		qty, qtyOK := fr.requiredNumber(FieldQuantity, "metraj")

		var itemID int64
		if codeOK {
			itemID, _ = fr.resolveCode(FieldBudgetCode, code, lookup)
		}
		if qtyOK && qty < 0 {
			cell, _ := fr.cell(FieldQuantity)
			fr.addError(FieldQuantity, cell, "metraj negatif olamaz")
		}

		var ratio float64
		if cell, ok := fr.cell(FieldRatio); ok && !cell.IsEmpty() {
			n := NormalizeNumber(cell)
			if !n.OK {
				fr.addError(FieldRatio, cell, "oran sayı olarak okunamadı")
			}
			ratio = n.Value
		}

		if fr.failed() {
			fr.flushInto(&res.Errors)
			continue
		}

		if qty == 0 {
			res.AddWarning(fmt.Sprintf("satır %d: metraj sıfır, satır atlandı", row.SheetRow))
			continue
		}

		res.AddItem(ProgressRecord{
			WorkItemID: itemID,
			BudgetCode: code,
			Date:       date,
			Quantity:   qty,
			Ratio:      ratio,
			Region:     fr.optionalText(FieldRegion),
		})
	}
	return res
}
