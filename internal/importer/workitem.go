package importer

import "fmt"

// WorkItemRecord is a validated work item row from a catalog upload.
type WorkItemRecord struct {
	BudgetCode     string  `json:"budgetCode"`
	ParentCode     string  `json:"parentCode,omitempty"`
	Category       string  `json:"category,omitempty"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	TargetQuantity float64 `json:"targetQuantity"`
	TargetManHours float64 `json:"targetManHours"`
}

// ValidateWorkItems validates a work item catalog upload. rows[0] is the
// header row. A budget code repeated within the upload is a warning, not an
// error: both rows stay in ValidItems in row order, and the consumer of
// ValidItems applies them in order so the later row's values win.
func ValidateWorkItems(rows []RawRow) *ValidationResult[WorkItemRecord] {
	res := NewValidationResult[WorkItemRecord]()
	if len(rows) == 0 {
		return res
	}

	cols, warnings := ResolveColumns(WorkItemFields(), rows[0])
	res.Warnings = append(res.Warnings, warnings...)

	seen := make(map[string]int)
	for _, row := range rows[1:] {
		if row.IsBlank() {
			continue
		}
		fr := newFieldReader(row, cols)

		code, _ := fr.requiredText(FieldBudgetCode, "bütçe kodu")
		name, _ := fr.requiredText(FieldName, "imalat adı")
		unit, _ := fr.requiredText(FieldUnit, "birim")
		qty, qtyOK := fr.requiredNumber(FieldTargetQuantity, "hedef metraj")
		hours, hoursOK := fr.requiredNumber(FieldTargetManHours, "hedef adam saat")

		if qtyOK && qty < 0 {
			cell, _ := fr.cell(FieldTargetQuantity)
			fr.addError(FieldTargetQuantity, cell, "hedef metraj negatif olamaz")
		}
		if hoursOK && hours < 0 {
			cell, _ := fr.cell(FieldTargetManHours)
			fr.addError(FieldTargetManHours, cell, "hedef adam saat negatif olamaz")
		}

		if fr.failed() {
			fr.flushInto(&res.Errors)
			continue
		}

		if firstRow, dup := seen[code]; dup {
			res.AddWarning(fmt.Sprintf(
				"satır %d: bütçe kodu %q satır %d ile aynı, son satırın değerleri geçerli olacak",
				row.SheetRow, code, firstRow))
		} else {
			seen[code] = row.SheetRow
		}

		res.AddItem(WorkItemRecord{
			BudgetCode:     code,
			ParentCode:     fr.optionalText(FieldParentCode),
			Category:       fr.optionalText(FieldCategory),
			Name:           name,
			Unit:           unit,
			TargetQuantity: qty,
			TargetManHours: hours,
		})
	}
	return res
}
