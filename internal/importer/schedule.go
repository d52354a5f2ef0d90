package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ScheduleItemTarget is one work item's planned quantity for a schedule
// period, keyed by the dynamic column label.
type ScheduleItemTarget struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// ScheduleRecord is one validated schedule period row.
type ScheduleRecord struct {
	Year     int                  `json:"year"`
	Month    time.Month           `json:"month"`
	Items    []ScheduleItemTarget `json:"items"`
	ManHours float64              `json:"manHours"`
	// HasManHours distinguishes an absent aggregate column from a zero value.
	HasManHours bool `json:"hasManHours"`
}

// ValidateSchedule validates a work schedule upload. Column 0 is the period
// axis; the layout of the remaining columns is dynamic, resolved from the
// header. Rows whose period cell does not parse are skipped and reported in
// one batched warning, because schedule sheets routinely carry stray header
// and footer rows.
func ValidateSchedule(rows []RawRow) *ValidationResult[ScheduleRecord] {
	res := NewValidationResult[ScheduleRecord]()
	if len(rows) == 0 {
		return res
	}

	sc := ResolveScheduleColumns(rows[0])

	var skipped []int
	for _, row := range rows[1:] {
		if row.IsBlank() {
			continue
		}

		period := NormalizeDate(row.Cell(0))
		if period.Kind == DateUnparseable {
			skipped = append(skipped, row.SheetRow)
			continue
		}

		rec := ScheduleRecord{Year: period.Year, Month: period.Month}
		rowOK := true

		for _, col := range sc.Items {
			cell := row.Cell(col.Index)
			if cell.IsEmpty() {
				continue
			}
			n := NormalizeNumber(cell)
			if !n.OK {
				res.AddError(row.SheetRow, col.Label, cell.String(),
					fmt.Sprintf("%s hedefi sayı olarak okunamadı", col.Label))
				rowOK = false
				continue
			}
			rec.Items = append(rec.Items, ScheduleItemTarget{Name: col.Label, Quantity: n.Value})
		}

		if sc.ManHourCol >= 0 {
			cell := row.Cell(sc.ManHourCol)
			if !cell.IsEmpty() {
				n := NormalizeNumber(cell)
				if !n.OK {
					res.AddError(row.SheetRow, "adam saat", cell.String(),
						"adam saat sayı olarak okunamadı")
					rowOK = false
				} else {
					rec.ManHours = n.Value
					rec.HasManHours = true
				}
			}
		}

		if !rowOK {
			continue
		}
		res.AddItem(rec)
	}

	if len(skipped) > 0 {
		labels := make([]string, len(skipped))
		for i, r := range skipped {
			labels[i] = strconv.Itoa(r)
		}
		res.AddWarning(fmt.Sprintf(
			"%d satırın dönem değeri okunamadığı için atlandı (satırlar: %s)",
			len(skipped), strings.Join(labels, ", ")))
	}
	return res
}
