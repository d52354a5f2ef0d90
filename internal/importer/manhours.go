package importer

import (
	"fmt"
	"time"
)

// ManHoursRecord is a validated daily man-hour row. The value arrives in the
// column labeled "Miktar"/"quantity" by sheet convention.
type ManHoursRecord struct {
	WorkItemID int64     `json:"workItemId"`
	BudgetCode string    `json:"budgetCode"`
	Date       time.Time `json:"date"`
	ManHours   float64   `json:"manHours"`
}

// ValidateManHours validates a daily man-hour upload. Same row rules as
// ValidateProgress: zero is a warning drop, an unknown budget code is a hard
// error listing known codes.
func ValidateManHours(rows []RawRow, lookup CodeLookup) *ValidationResult[ManHoursRecord] {
	res := NewValidationResult[ManHoursRecord]()
	if len(rows) == 0 {
		return res
	}

	cols, warnings := ResolveColumns(ManHoursFields(), rows[0])
	res.Warnings = append(res.Warnings, warnings...)

	for _, row := range rows[1:] {
		if row.IsBlank() {
			continue
		}
		fr := newFieldReader(row, cols)

		date, _ := fr.requiredDay(FieldDate, "tarih")
		code, codeOK := fr.requiredText(FieldBudgetCode, "bütçe kodu")
		hours, hoursOK := fr.requiredNumber(FieldQuantity, "adam saat")

		var itemID int64
		if codeOK {
			itemID, _ = fr.resolveCode(FieldBudgetCode, code, lookup)
		}
		if hoursOK && hours < 0 {
			cell, _ := fr.cell(FieldQuantity)
			fr.addError(FieldQuantity, cell, "adam saat negatif olamaz")
		}

		if fr.failed() {
			fr.flushInto(&res.Errors)
			continue
		}

		if hours == 0 {
			res.AddWarning(fmt.Sprintf("satır %d: adam saat sıfır, satır atlandı", row.SheetRow))
			continue
		}

		res.AddItem(ManHoursRecord{
			WorkItemID: itemID,
			BudgetCode: code,
			Date:       date,
			ManHours:   hours,
		})
	}
	return res
}
