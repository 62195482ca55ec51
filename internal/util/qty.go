package util

import (
	"regexp"
	"strconv"
	"strings"
)

var reDigits = regexp.MustCompile(`\d+`)

// ParseQuantity pulls the first integer run out of a table or spreadsheet
// cell ("10", "10 pcs", "x10"). Returns false when the cell has no digits or
// the quantity is not positive.
func ParseQuantity(cell string) (int, bool) {
	token := reDigits.FindString(strings.ReplaceAll(cell, " ", " "))
	if token == "" {
		return 0, false
	}
	qty, err := strconv.Atoi(token)
	if err != nil || qty <= 0 {
		return 0, false
	}
	return qty, true
}
