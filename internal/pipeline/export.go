package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"orderreg/internal"
)

// ExportDashboardXLSX flattens dashboard summaries to one row per order line.
// Validation notes are joined onto the record's first row.
func ExportDashboardXLSX(summaries []internal.RecordSummary, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"request_id", "customer", "channel", "status",
		"line_no", "source_description", "quantity", "matched_sku", "confidence",
		"validation_notes",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	r := 1
	for _, rec := range summaries {
		for lineNo, line := range rec.Lines {
			r++
			set := func(col int, value any) {
				cell, _ := excelize.CoordinatesToCellName(col, r)
				_ = f.SetCellValue(sheet, cell, value)
			}

			set(1, rec.RequestID)
			set(2, rec.Customer)
			set(3, rec.Channel)
			set(4, string(rec.Status))
			set(5, lineNo+1)
			set(6, line.SourceDescription)
			set(7, line.Quantity)
			if line.MatchedSKU != nil {
				set(8, *line.MatchedSKU)
			} else {
				set(8, "")
			}
			set(9, line.Confidence)
			if lineNo == 0 {
				set(10, strings.Join(rec.ValidationNotes, "; "))
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
