// Package export renders tabular admin downloads in CSV and PDF form.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Table is the content of one rendered download: optional summary lines
// above a column/row grid.
type Table struct {
	Title   string
	Summary []string
	Columns []string
	Rows    [][]string
}

// RenderCSV encodes the table as CSV. Summary lines become single-cell
// rows before the header.
func RenderCSV(t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	for _, line := range t.Summary {
		if err := writer.Write([]string{line}); err != nil {
			return nil, fmt.Errorf("write csv summary: %w", err)
		}
	}
	if err := writer.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range t.Rows {
		record := make([]string, len(t.Columns))
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF lays the table out on A4 portrait pages.
func RenderPDF(t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("pdf requires at least one column")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	if t.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, translate(t.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	if len(t.Summary) > 0 {
		pdf.SetFont("Arial", "", 10)
		for _, line := range t.Summary {
			pdf.CellFormat(0, 6, translate(line), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	colWidth := 190.0 / float64(len(t.Columns))
	pdf.SetFont("Arial", "B", 10)
	for _, col := range t.Columns {
		pdf.CellFormat(colWidth, 8, translate(col), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range t.Rows {
		for i := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colWidth, 7, translate(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
