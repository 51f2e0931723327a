// Package excelize renders pbidoc reports as Excel workbooks.
package excelize

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/pbidoc"
	"github.com/xuri/excelize/v2"
)

// SummarySheet is the name of the first worksheet, holding report metadata.
const SummarySheet = "Report"

// Ensure Renderer implements pbidoc.Renderer at compile time.
var _ pbidoc.Renderer = (*Renderer)(nil)

// Renderer writes one worksheet per dataset after a summary sheet.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the report as an xlsx workbook.
func (r *Renderer) Render(ctx context.Context, w io.Writer, report *pbidoc.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summary := [][]any{
		{"Power BI Report Documentation"},
		{"Documentation date", report.GeneratedAt.Format(pbidoc.DateLayout)},
		{"Report name", report.Title},
		{"Package", report.PackageName},
		{"Checksum", report.Checksum},
	}
	for i, row := range summary {
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SummarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return err
	}

	for _, d := range report.Datasets() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeDataset(f, d, bold); err != nil {
			return fmt.Errorf("writing sheet %s: %w", d.Title, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func writeDataset(f *excelize.File, d *pbidoc.Dataset, headerStyle int) error {
	if _, err := f.NewSheet(d.Title); err != nil {
		return err
	}

	headers := make([]any, 0, len(d.Columns))
	for _, h := range d.Headers() {
		headers = append(headers, h)
	}
	if err := setRow(f, d.Title, 1, headers); err != nil {
		return err
	}
	if err := f.SetRowStyle(d.Title, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, row := range d.Rows {
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}
		if err := setRow(f, d.Title, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// cellValue keeps numbers and booleans typed and formats everything else
// the way other renderers display it.
func cellValue(v any) any {
	switch v := v.(type) {
	case int, bool, string:
		return v
	default:
		return pbidoc.FormatValue(v)
	}
}

// Extension returns ".xlsx".
func (r *Renderer) Extension() string {
	return ".xlsx"
}
