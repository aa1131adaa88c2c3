package export

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/stockbridge/reval/internal/reval"
)

// WorkbookWriter writes the per-location valuation breakdown of a run to an
// xlsx workbook. The file is write-only output for operators; nothing reads
// it back.
type WorkbookWriter struct {
	path string
}

// NewWorkbookWriter creates a WorkbookWriter targeting path.
func NewWorkbookWriter(path string) *WorkbookWriter {
	return &WorkbookWriter{path: path}
}

// Export implements reval.Hook.
func (w *WorkbookWriter) Export(_ context.Context, result reval.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Revaluation"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &[]any{"Date", "Location", "Source", "Value"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, t := range result.Locations {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", row, err)
		}
		values := []any{result.Date.UTC().Format("2006-01-02"), t.Location.Label(), t.Source, toFloat(t.Value)}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		row++
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("addressing total row: %w", err)
	}
	status := "posted"
	if result.Skipped {
		status = "skipped"
	}
	totals := []any{result.Date.UTC().Format("2006-01-02"), "total", status, toFloat(result.Total)}
	if err := f.SetSheetRow(sheet, cell, &totals); err != nil {
		return fmt.Errorf("writing total row: %w", err)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
