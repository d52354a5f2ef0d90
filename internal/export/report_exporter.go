// Package export writes aggregation reports to spreadsheet workbooks for
// download.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ebulut/progress-tracker/internal/report"
)

// ReportExporter renders a report into an xlsx workbook.
type ReportExporter struct {
	logger *zap.Logger
}

// NewReportExporter creates a new report exporter.
func NewReportExporter(logger *zap.Logger) *ReportExporter {
	return &ReportExporter{logger: logger}
}

// Export writes the report as a workbook with one sheet per series plus the
// work item table, and returns the encoded file.
func (e *ReportExporter) Export(projectName string, r *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeDaily(f, r); err != nil {
		return nil, err
	}
	if err := e.writeMonthly(f, r); err != nil {
		return nil, err
	}
	if err := e.writeWorkItems(f, r); err != nil {
		return nil, err
	}

	// The default sheet is replaced by the first one we created.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	e.logger.Info("Report exported",
		zap.String("project", projectName),
		zap.Int("days", len(r.Daily)),
		zap.Int("work_items", len(r.WorkItems)))
	return buf.Bytes(), nil
}

func (e *ReportExporter) writeDaily(f *excelize.File, r *report.Report) error {
	const sheet = "Günlük"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []interface{}{"Tarih", "Adam Saat", "Metraj", "Hedef"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, d := range r.Daily {
		row := []interface{}{d.Date, d.ManHours, d.Quantity, d.Target}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write daily row: %w", err)
		}
	}
	return nil
}

func (e *ReportExporter) writeMonthly(f *excelize.File, r *report.Report) error {
	const sheet = "Aylık"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []interface{}{"Ay", "Adam Saat", "Metraj", "Hedef"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, m := range r.Monthly {
		row := []interface{}{m.Month, m.ManHours, m.Quantity, m.Target}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write monthly row: %w", err)
		}
	}
	return nil
}

func (e *ReportExporter) writeWorkItems(f *excelize.File, r *report.Report) error {
	const sheet = "İmalatlar"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	header := []interface{}{
		"Bütçe Kodu", "İmalat Adı", "Birim",
		"Hedef Metraj", "Hedef Adam Saat",
		"Gerçekleşen Metraj", "Gerçekleşen Adam Saat",
		"İlerleme %", "Verimlilik %",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, w := range r.WorkItems {
		efficiency := "-"
		if w.EfficiencyPercent != nil {
			efficiency = fmt.Sprintf("%.1f", *w.EfficiencyPercent)
		}
		row := []interface{}{
			w.BudgetCode, w.Name, w.Unit,
			w.TargetQuantity, w.TargetManHours,
			w.ActualQuantity, w.ActualManHours,
			fmt.Sprintf("%.1f", w.ProgressPercent), efficiency,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write work item row: %w", err)
		}
	}
	return nil
}
