package report

import (
	"encoding/json"
	"fmt"
	"io"

	"orderreg/internal"
)

// PrintRecord writes a human-readable block for one processed record.
func PrintRecord(w io.Writer, record *internal.GoldenRecord) {
	fmt.Fprintf(w, "\nRequest %s from %s via %s\n", record.RequestID, record.Customer, record.Channel)
	fmt.Fprintf(w, "Status: %s\n", record.Status)
	for _, line := range record.Lines {
		sku := "<no match>"
		if line.MatchedSKU != nil {
			sku = *line.MatchedSKU
		}
		fmt.Fprintf(w, "  - %d x %s -> %s (confidence %.2f)\n", line.Quantity, line.SourceDescription, sku, line.Confidence)
	}
	if len(record.ValidationNotes) > 0 {
		fmt.Fprintln(w, "  Validation notes:")
		for _, note := range record.ValidationNotes {
			fmt.Fprintf(w, "    * %s\n", note)
		}
	}
}

// PrintDashboard writes every summary as indented JSON.
func PrintDashboard(w io.Writer, summaries []internal.RecordSummary) error {
	fmt.Fprintln(w, "\nDashboard snapshot:")
	for _, rec := range summaries {
		blob, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(blob))
	}
	return nil
}
