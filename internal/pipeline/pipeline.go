// Package pipeline turns free-text order messages into validated Golden
// Records: extraction, SKU matching, validation and the in-memory register.
package pipeline

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"orderreg/internal"
	"orderreg/internal/config"
	"orderreg/internal/util"
)

// Pipeline owns the register of processed requests. One instance per owner;
// callers needing concurrent ingestion must serialize access themselves,
// Ingest performs an unguarded read-modify-write on the register.
type Pipeline struct {
	matcher  *Matcher
	cfg      config.Config
	register map[string]*internal.GoldenRecord
	order    []string
}

func New(items []internal.CatalogItem, cfg config.Config) *Pipeline {
	return &Pipeline{
		matcher:  NewMatcher(items),
		cfg:      cfg,
		register: map[string]*internal.GoldenRecord{},
	}
}

// RequestID derives the deterministic record key: "REQ-" plus the first
// 8 hex chars of SHA-1 over "{customer}-{message}". The channel never
// participates, so the same order text from the same customer maps to the
// same id regardless of where it arrived.
func RequestID(message, customer string) string {
	digest := sha1.Sum([]byte(customer + "-" + message))
	return "REQ-" + hex.EncodeToString(digest[:])[:8]
}

// Ingest creates a Golden Record from a raw order message. Re-ingesting the
// same (customer, message) pair overwrites the prior register entry for that
// id without moving its dashboard position; there is no merging.
func (p *Pipeline) Ingest(message, customer, channel string) *internal.GoldenRecord {
	if strings.TrimSpace(channel) == "" {
		channel = p.cfg.DefaultChannel
	}

	record := &internal.GoldenRecord{
		RequestID:       RequestID(message, customer),
		Customer:        customer,
		Channel:         channel,
		Status:          internal.StatusReceived,
		ValidationNotes: []string{},
	}

	record.Lines = ExtractLines(message)
	record.Status = internal.StatusExtracted

	p.matchAndValidate(record)

	if _, exists := p.register[record.RequestID]; !exists {
		p.order = append(p.order, record.RequestID)
	}
	p.register[record.RequestID] = record
	return record
}

// matchAndValidate runs every line through the matcher in extraction order
// and derives the final status. The fallback line is not special-cased: its
// provisional 0.1 confidence is overwritten by the matcher score like any
// other line. No-match and low-confidence results are validation notes, not
// errors; the record is always produced.
func (p *Pipeline) matchAndValidate(record *internal.GoldenRecord) {
	for i := range record.Lines {
		line := &record.Lines[i]
		sku, score := p.matcher.Match(line.SourceDescription)
		line.MatchedSKU = sku
		line.Confidence = score
		line.NormalizedDescription = util.Normalize(line.SourceDescription)

		switch {
		case sku == nil:
			record.ValidationNotes = append(record.ValidationNotes,
				fmt.Sprintf("No SKU match for '%s' (qty %d)", line.SourceDescription, line.Quantity))
		case score < p.cfg.AcceptThreshold:
			record.ValidationNotes = append(record.ValidationNotes,
				fmt.Sprintf("Low confidence (%.2f) match for '%s' -> %s", score, line.SourceDescription, *sku))
		}
	}

	if len(record.ValidationNotes) == 0 {
		record.Status = internal.StatusValidated
	} else {
		record.Status = internal.StatusNeedsReview
	}
}

// Get looks up a processed record by request id.
func (p *Pipeline) Get(requestID string) (*internal.GoldenRecord, bool) {
	record, ok := p.register[requestID]
	return record, ok
}

// Dashboard projects every register entry, in first-ingest order.
func (p *Pipeline) Dashboard() []internal.RecordSummary {
	out := make([]internal.RecordSummary, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.register[id].Summary())
	}
	return out
}
