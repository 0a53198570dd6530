package utils

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// ExportColumn is one ordered column descriptor for tabular exports: Key
// selects the value from each row, Label is printed in the header exactly as
// given.
type ExportColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// cellValue: a missing key renders as an empty cell, never as an error.
func cellValue(row map[string]string, key string) string {
	return row[key]
}

// TabularPDF renders a flat table (one row per guest) as a paginated PDF:
// title line, header row repeated on every page, striped body. Zero rows
// produce a headers-only document.
func TabularPDF(title string, columns []ExportColumn, rows []map[string]string) ([]byte, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("tabular pdf: no columns given")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageWidth, pageHeight := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right
	colWidth := usable / float64(len(columns))
	rowHeight := 7.0

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(usable, 10, title)
	pdf.Ln(14)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(27, 54, 49)
		pdf.SetTextColor(255, 255, 255)
		for _, col := range columns {
			pdf.CellFormat(colWidth, rowHeight, col.Label, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
	}

	writeHeader()
	for i, row := range rows {
		if pdf.GetY()+rowHeight > pageHeight-15 {
			pdf.AddPage()
			writeHeader()
		}
		fill := i%2 == 1
		pdf.SetFillColor(249, 250, 251)
		for _, col := range columns {
			pdf.CellFormat(colWidth, rowHeight, cellValue(row, col.Key), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("tabular pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// TabularExcel renders the same flat table as an xlsx workbook with a single
// Sheet1, preserving column order and header labels exactly.
func TabularExcel(columns []ExportColumn, rows []map[string]string) ([]byte, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("tabular excel: no columns given")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("tabular excel: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col.Label); err != nil {
			return nil, fmt.Errorf("tabular excel: %w", err)
		}
	}

	for r, row := range rows {
		for i, col := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return nil, fmt.Errorf("tabular excel: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(row, col.Key)); err != nil {
				return nil, fmt.Errorf("tabular excel: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("tabular excel: %w", err)
	}
	return buf.Bytes(), nil
}
