package internal

import "math"

// Status is the lifecycle state of a GoldenRecord. It only moves forward:
// received -> extracted -> validated | needs_review.
type Status string

const (
	StatusReceived    Status = "received"
	StatusExtracted   Status = "extracted"
	StatusValidated   Status = "validated"
	StatusNeedsReview Status = "needs_review"
)

// CatalogItem is one product in the master catalog. Catalog order is
// significant: the matcher breaks score ties in favor of earlier items.
type CatalogItem struct {
	SKUID    string   `json:"sku_id"`
	Name     string   `json:"name"`
	Synonyms []string `json:"synonyms"`
}

// OrderLine is one candidate line item inside a request. The extractor fills
// SourceDescription and Quantity; the matching step sets the rest exactly once.
type OrderLine struct {
	SourceDescription     string
	Quantity              int
	MatchedSKU            *string
	NormalizedDescription string
	Confidence            float64
}

// GoldenRecord is the canonical representation of a single ingested order
// request. Immutable once Status reaches validated or needs_review.
type GoldenRecord struct {
	RequestID       string
	Customer        string
	Channel         string
	Status          Status
	Lines           []OrderLine
	ValidationNotes []string
}

type LineSummary struct {
	SourceDescription string  `json:"source_description"`
	Quantity          int     `json:"quantity"`
	MatchedSKU        *string `json:"matched_sku"`
	Confidence        float64 `json:"confidence"`
}

type RecordSummary struct {
	RequestID       string        `json:"request_id"`
	Customer        string        `json:"customer"`
	Channel         string        `json:"channel"`
	Status          Status        `json:"status"`
	Lines           []LineSummary `json:"lines"`
	ValidationNotes []string      `json:"validation_notes"`
}

// Summary projects the record for the dashboard. Confidence is rounded to two
// decimal places; everything else passes through untouched.
func (r *GoldenRecord) Summary() RecordSummary {
	lines := make([]LineSummary, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, LineSummary{
			SourceDescription: line.SourceDescription,
			Quantity:          line.Quantity,
			MatchedSKU:        line.MatchedSKU,
			Confidence:        math.Round(line.Confidence*100) / 100,
		})
	}
	notes := r.ValidationNotes
	if notes == nil {
		notes = []string{}
	}
	return RecordSummary{
		RequestID:       r.RequestID,
		Customer:        r.Customer,
		Channel:         r.Channel,
		Status:          r.Status,
		Lines:           lines,
		ValidationNotes: notes,
	}
}

// InboundMessage is a raw message pulled from a mail provider before intake
// turns it into pipeline input.
type InboundMessage struct {
	Provider   string
	MessageID  string
	ReceivedAt string
	Raw        []byte
}
