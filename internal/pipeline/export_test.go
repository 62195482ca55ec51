package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"orderreg/internal"
)

func TestExportDashboardXLSX(t *testing.T) {
	pipe := New(testCatalog(), testConfig())
	pipe.Ingest("Need 2x red widget and 3 blue widget today", "Acme Steel", "LINE OA")
	pipe.Ingest("repeat the usual", "Bright Energy", "Email")

	out := filepath.Join(t.TempDir(), "dashboard.xlsx")
	if err := ExportDashboardXLSX(pipe.Dashboard(), out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatal(err)
	}
	// header + 2 lines for the first record + 1 fallback line for the second
	if len(rows) != 4 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0][0] != "request_id" || rows[0][5] != "source_description" {
		t.Fatalf("header=%v", rows[0])
	}

	customer, err := f.GetCellValue(sheet, "B2")
	if err != nil {
		t.Fatal(err)
	}
	if customer != "Acme Steel" {
		t.Fatalf("customer=%q", customer)
	}
}

func TestSmokeIngestToExport(t *testing.T) {
	items := []internal.CatalogItem{
		{SKUID: "SKU-PVC-2IN", Name: "PVC pipe 2in", Synonyms: []string{"pvc pipe", "2\" pvc"}},
		{SKUID: "SKU-CU-15", Name: "copper cable 1.5", Synonyms: []string{"copper cable"}},
		{SKUID: "SKU-SW-8P", Name: "8 port switch", Synonyms: []string{"8p switch"}},
	}
	pipe := New(items, testConfig())

	messages := []struct{ message, customer, channel string }{
		{"Need 2x PVC pipe 2in and 5 copper cable 1.5 for Monday", "Acme Steel", "LINE OA"},
		{"Order: 3 pcs 8p switch, 50m 1.5mm wire", "Bright Energy", "Email"},
		{"repeat last order of 2\" pvc", "Acme Steel", "LINE OA"},
	}
	for _, m := range messages {
		pipe.Ingest(m.message, m.customer, m.channel)
	}

	dash := pipe.Dashboard()
	if len(dash) != 3 {
		t.Fatalf("dashboard=%d", len(dash))
	}
	if dash[2].Lines[0].MatchedSKU == nil || *dash[2].Lines[0].MatchedSKU != "SKU-PVC-2IN" {
		t.Fatalf("fallback line should match the pvc synonym: %+v", dash[2].Lines[0])
	}

	out := filepath.Join(t.TempDir(), "result.xlsx")
	if err := ExportDashboardXLSX(dash, out); err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) < 4 {
		t.Fatalf("rows=%d", len(rows))
	}
}
