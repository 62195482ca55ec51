package pipeline

import (
	"strings"
	"testing"
)

func TestExtractQuantityPrefixedItems(t *testing.T) {
	lines := ExtractLines("Need 2x PVC pipe 2in and 5 copper cable 1.5 for Monday")
	if len(lines) != 2 {
		t.Fatalf("len=%d lines=%+v", len(lines), lines)
	}
	if lines[0].Quantity != 2 || !strings.HasPrefix(lines[0].SourceDescription, "PVC pipe") {
		t.Fatalf("line0=%+v", lines[0])
	}
	if lines[1].Quantity != 5 || !strings.HasPrefix(lines[1].SourceDescription, "copper cable") {
		t.Fatalf("line1=%+v", lines[1])
	}
}

func TestExtractStopsAtDisallowedChar(t *testing.T) {
	lines := ExtractLines("Order: 3 pcs 8p switch, 50m 1.5mm wire")
	if len(lines) != 1 {
		t.Fatalf("len=%d lines=%+v", len(lines), lines)
	}
	if lines[0].Quantity != 3 || lines[0].SourceDescription != "pcs 8p switch" {
		t.Fatalf("line=%+v", lines[0])
	}
}

func TestExtractDecimalTailIsNotQuantity(t *testing.T) {
	// The "5" in "1.5" must not open a new line.
	lines := ExtractLines("2x cable 1.5 for Monday")
	if len(lines) != 1 {
		t.Fatalf("len=%d lines=%+v", len(lines), lines)
	}
	if lines[0].Quantity != 2 || lines[0].SourceDescription != "cable 1.5 for Monday" {
		t.Fatalf("line=%+v", lines[0])
	}
}

func TestExtractFallback(t *testing.T) {
	input := "repeat last order of 2\" pvc"
	lines := ExtractLines(input)
	if len(lines) != 1 {
		t.Fatalf("len=%d", len(lines))
	}
	if lines[0].Quantity != 1 || lines[0].SourceDescription != input {
		t.Fatalf("line=%+v", lines[0])
	}
	if lines[0].Confidence != 0.1 {
		t.Fatalf("fallback confidence=%v", lines[0].Confidence)
	}
}

func TestExtractNeverEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "no numbers here", "2x pipe"} {
		if lines := ExtractLines(input); len(lines) == 0 {
			t.Fatalf("empty extraction for %q", input)
		}
	}
}

func TestExtractedLineDefaults(t *testing.T) {
	lines := ExtractLines("2x pipe")
	if lines[0].MatchedSKU != nil || lines[0].Confidence != 0 || lines[0].NormalizedDescription != "" {
		t.Fatalf("pre-match defaults violated: %+v", lines[0])
	}
}
