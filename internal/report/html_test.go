package report

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"orderreg/internal"
	"orderreg/internal/util"
)

func sampleSummaries() []internal.RecordSummary {
	return []internal.RecordSummary{
		{
			RequestID: "REQ-aaaa1111",
			Customer:  "Acme Steel",
			Channel:   "LINE OA",
			Status:    internal.StatusValidated,
			Lines: []internal.LineSummary{
				{SourceDescription: "PVC pipe 2in", Quantity: 2, MatchedSKU: util.StringPtr("SKU-PVC"), Confidence: 0.9},
			},
			ValidationNotes: []string{},
		},
		{
			RequestID: "REQ-bbbb2222",
			Customer:  "Bright Energy",
			Channel:   "Email",
			Status:    internal.StatusNeedsReview,
			Lines: []internal.LineSummary{
				{SourceDescription: "unobtainium rod", Quantity: 4, MatchedSKU: nil, Confidence: 0},
			},
			ValidationNotes: []string{"No SKU match for 'unobtainium rod' (qty 4)"},
		},
	}
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(sampleSummaries())
	if err != nil {
		t.Fatal(err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	cards := doc.Find("article.card")
	if cards.Length() != 2 {
		t.Fatalf("cards=%d", cards.Length())
	}

	first := cards.First()
	if got := first.Find(".value").First().Text(); got != "REQ-aaaa1111" {
		t.Fatalf("request id=%q", got)
	}
	if got := first.Find(".chip").First().Text(); got != "0.90" {
		t.Fatalf("chip=%q", got)
	}
	if got := strings.TrimSpace(first.Find(".list.notes li").First().Text()); got != "None" {
		t.Fatalf("notes=%q", got)
	}

	second := cards.Last()
	if !second.Find(".status").HasClass("needs_review") {
		t.Fatal("needs_review status class missing")
	}
	if got := second.Find("code").First().Text(); got != "—" {
		t.Fatalf("unmatched sku=%q", got)
	}
	if got := strings.TrimSpace(second.Find(".list.notes li").First().Text()); !strings.Contains(got, "No SKU match") {
		t.Fatalf("note=%q", got)
	}
}

func TestWriteHTML(t *testing.T) {
	out := t.TempDir() + "/dash/index.html"
	if err := WriteHTML(sampleSummaries(), out); err != nil {
		t.Fatal(err)
	}
}
