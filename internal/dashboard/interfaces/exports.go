package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	dashboardapp "warehouse-cloud/internal/dashboard/application"
)

// BuildOccupancyXLSX renders the occupancy overview as a workbook.
func BuildOccupancyXLSX(summary *dashboardapp.Summary) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	levelsSheet := "levels"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(levelsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Warehouse Occupancy")
	_ = f.SetCellValue(summarySheet, "A3", "Total Slots")
	_ = f.SetCellValue(summarySheet, "B3", summary.TotalSlots)
	_ = f.SetCellValue(summarySheet, "A4", "Occupied Slots")
	_ = f.SetCellValue(summarySheet, "B4", summary.OccupiedSlots)
	_ = f.SetCellValue(summarySheet, "A5", "Available Slots")
	_ = f.SetCellValue(summarySheet, "B5", summary.AvailableSlots)
	_ = f.SetCellValue(summarySheet, "A6", "Pending Receipts")
	_ = f.SetCellValue(summarySheet, "B6", summary.PendingReceipts)
	_ = f.SetCellValue(summarySheet, "A7", "Open Picks")
	_ = f.SetCellValue(summarySheet, "B7", summary.OpenPicks)
	_ = f.SetCellValue(summarySheet, "A8", "Stock Value")
	_ = f.SetCellValue(summarySheet, "B8", summary.StockValue.String())
	_ = f.SetCellValue(summarySheet, "A9", "Generated")
	_ = f.SetCellValue(summarySheet, "B9", summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	_ = f.SetCellValue(levelsSheet, "A1", "Level")
	_ = f.SetCellValue(levelsSheet, "B1", "Tier")
	_ = f.SetCellValue(levelsSheet, "C1", "Slots")
	_ = f.SetCellValue(levelsSheet, "D1", "Weight (kg)")
	_ = f.SetCellValue(levelsSheet, "E1", "Cap (kg)")
	_ = f.SetCellValue(levelsSheet, "F1", "Utilization")
	for i, level := range summary.Levels {
		row := i + 2
		_ = f.SetCellValue(levelsSheet, fmt.Sprintf("A%d", row), level.LevelKey)
		_ = f.SetCellValue(levelsSheet, fmt.Sprintf("B%d", row), level.Tier)
		_ = f.SetCellValue(levelsSheet, fmt.Sprintf("C%d", row), level.SlotCount)
		_ = f.SetCellValue(levelsSheet, fmt.Sprintf("D%d", row), level.WeightKg)
		_ = f.SetCellValue(levelsSheet, fmt.Sprintf("E%d", row), level.CapKg)
		_ = f.SetCellValue(levelsSheet, fmt.Sprintf("F%d", row), level.Utilization)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildLocationLabelsPDF renders printable slot labels.
func BuildLocationLabelsPDF(labels []dashboardapp.LocationLabel) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Location Labels")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, "Code", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Max Weight (kg)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Verified", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, label := range labels {
		verified := "no"
		if label.Verified {
			verified = "yes"
		}
		pdf.CellFormat(50, 6, label.Code, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.1f", label.MaxWeightKg), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, verified, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
