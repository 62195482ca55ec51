package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"orderreg/internal"
)

// fallbackConfidence marks a line the extractor could not parse: the whole
// message becomes one qty-1 guess. The matching step still runs on it and
// overwrites this value with the real matcher score.
const fallbackConfidence = 0.1

// A quantity prefix is a digit run, optionally suffixed with 'x', followed by
// whitespace: "2x ", "5 ", "50 ".
var qtyPrefix = regexp.MustCompile(`(\d+)x?\s+`)

// ExtractLines scans the message left to right for quantity-prefixed items.
// The item description is the run of letters/digits/spaces/hyphens/periods/
// quotes after the prefix, ending early at the start of the next quantity
// prefix so "2x pipe and 5 cable" yields two lines. A digit run directly
// preceded by a digit or '.' (the "5" in "1.5") never opens a prefix.
// Zero matches produce exactly one fallback line covering the whole message.
func ExtractLines(message string) []internal.OrderLine {
	type prefix struct {
		start, end, qty int
	}

	var prefixes []prefix
	for _, m := range qtyPrefix.FindAllStringSubmatchIndex(message, -1) {
		start, end := m[0], m[1]
		if start > 0 {
			prev := message[start-1]
			if (prev >= '0' && prev <= '9') || prev == '.' {
				continue
			}
		}
		qty, err := strconv.Atoi(message[m[2]:m[3]])
		if err != nil || qty <= 0 {
			continue
		}
		prefixes = append(prefixes, prefix{start: start, end: end, qty: qty})
	}

	lines := make([]internal.OrderLine, 0, len(prefixes))
	for i, p := range prefixes {
		limit := len(message)
		if i+1 < len(prefixes) {
			limit = prefixes[i+1].start
		}
		end := p.end
		for end < limit && isItemChar(message[end]) {
			end++
		}
		description := strings.TrimSpace(message[p.end:end])
		if description == "" {
			continue
		}
		lines = append(lines, internal.OrderLine{
			SourceDescription: description,
			Quantity:          p.qty,
		})
	}

	if len(lines) == 0 {
		return []internal.OrderLine{{
			SourceDescription: strings.TrimSpace(message),
			Quantity:          1,
			Confidence:        fallbackConfidence,
		}}
	}
	return lines
}

func isItemChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == ' ', c == '-', c == '.', c == '"', c == '\'':
		return true
	default:
		return false
	}
}
