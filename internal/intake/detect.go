package intake

import (
	"regexp"
	"strings"
)

type DetectResult struct {
	IsOrder bool
	Score   float64
}

var orderKeywords = []string{"order", "purchase", "quote", "need", "qty", "pcs", "repeat", "deliver"}

var qtyToken = regexp.MustCompile(`\d+x?\s+[a-z]`)

// DetectOrder scores how order-like an inbound email is so the listener can
// skip newsletters and replies. Cheap keyword and quantity-pattern rules, no
// language understanding.
func DetectOrder(subject, text string) DetectResult {
	subject = strings.ToLower(subject)
	text = strings.ToLower(text)

	score := 0.0
	for _, kw := range orderKeywords {
		if strings.Contains(subject, kw) {
			score += 0.2
		}
		if strings.Contains(text, kw) {
			score += 0.1
		}
	}

	switch hits := len(qtyToken.FindAllString(text, -1)); {
	case hits >= 2:
		score += 0.4
	case hits == 1:
		score += 0.2
	}

	if score > 1 {
		score = 1
	}

	return DetectResult{IsOrder: score >= 0.45, Score: score}
}
