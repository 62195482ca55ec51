package intake

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestFromEmailRaw(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "sample_order.eml"))
	if err != nil {
		t.Fatal(err)
	}

	msg, err := FromEmailRaw(raw)
	if err != nil {
		t.Fatal(err)
	}
	if msg.Subject != "New purchase order" {
		t.Fatalf("subject=%q", msg.Subject)
	}
	if !strings.Contains(msg.From, "orders@acme.example") {
		t.Fatalf("from=%q", msg.From)
	}
	if !strings.Contains(msg.Text, "2x PVC pipe 2in") {
		t.Fatalf("text=%q", msg.Text)
	}
}

func TestFromHTMLTable(t *testing.T) {
	html := `<table>
		<tr><th>Product</th><th>Qty</th></tr>
		<tr><td>PVC pipe 2in</td><td>10</td></tr>
		<tr><td>copper cable 1.5</td><td>5 pcs</td></tr>
	</table>`

	text := FromHTML(html)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%v", lines)
	}
	if lines[0] != "10x PVC pipe 2in" {
		t.Fatalf("line0=%q", lines[0])
	}
	if lines[1] != "5x copper cable 1.5" {
		t.Fatalf("line1=%q", lines[1])
	}
}

func TestFromHTMLWithoutTable(t *testing.T) {
	text := FromHTML(`<div><p>Need   2x PVC pipe</p><p>urgent</p></div>`)
	if !strings.Contains(text, "Need 2x PVC pipe") {
		t.Fatalf("text=%q", text)
	}
}

func TestFromXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetCellValue(sheet, "A1", "Item name")
	_ = f.SetCellValue(sheet, "B1", "Quantity")
	_ = f.SetCellValue(sheet, "A2", "PVC pipe 2in")
	_ = f.SetCellValue(sheet, "B2", 10)
	_ = f.SetCellValue(sheet, "A3", "8p switch")
	_ = f.SetCellValue(sheet, "B3", 3)

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	text, err := FromXLSX(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%v", lines)
	}
	if lines[0] != "10x PVC pipe 2in" || lines[1] != "3x 8p switch" {
		t.Fatalf("lines=%v", lines)
	}
}

func TestFromFileUnsupportedType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.txt")
	if err := os.WriteFile(path, []byte("2x pipe"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(path, "docx"); err == nil {
		t.Fatal("expected error")
	}
	text, err := FromFile(path, "text")
	if err != nil {
		t.Fatal(err)
	}
	if text != "2x pipe" {
		t.Fatalf("text=%q", text)
	}
}

func TestDetectOrder(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		text    string
		want    bool
	}{
		{name: "order email", subject: "New purchase order", text: "Need 2x pipe and 5 cable", want: true},
		{name: "body keywords and quantities", subject: "hello", text: "need 2x pipe\n5 cable today", want: true},
		{name: "quantities alone stay under threshold", subject: "hello", text: "2x pipe\n5 cable today", want: false},
		{name: "newsletter", subject: "Monthly digest", text: "What happened this month in steel.", want: false},
		{name: "empty", subject: "", text: "", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectOrder(tc.subject, tc.text)
			if got.IsOrder != tc.want {
				t.Fatalf("IsOrder=%v score=%v", got.IsOrder, got.Score)
			}
		})
	}
}
