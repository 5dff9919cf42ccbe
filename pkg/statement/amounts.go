package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Grouped two-decimal amount, e.g. "5,000.00" or "65.00".
var amountRE = regexp.MustCompile(`[\d,]+\.\d{2}`)

// Soft hyphen (U+00AD) shows up in credit-card statements as the credit
// marker in front of payment amounts.
const softHyphen = "­"

// ParseAmount normalizes a single amount string to a non-negative decimal.
// The boolean reports whether the string carried a credit marker (soft hyphen
// or leading '-'); what a credit means is the issuer's convention, so the
// caller combines sign and value itself.
func ParseAmount(s string) (decimal.Decimal, bool, bool) {
	trimmed := strings.TrimSpace(s)
	negative := strings.Contains(trimmed, softHyphen) || strings.HasPrefix(trimmed, "-")
	clean := strings.NewReplacer(softHyphen, "", "-", "", ",", "", " ", "").Replace(trimmed)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false, false
	}
	return d.Abs(), negative, true
}

// LargestAmount extracts the largest two-decimal amount found in free text.
// Bank statement regions usually list the transaction amount alongside
// balances and reference numbers; the largest grouped value is the best
// generic guess. Confidence is a frozen heuristic constant.
func LargestAmount(text string) (decimal.Decimal, float64) {
	matches := amountRE.FindAllString(text, -1)
	if len(matches) == 0 {
		return decimal.Zero, 0
	}
	best := decimal.Zero
	found := false
	for _, m := range matches {
		d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", ""))
		if err != nil {
			continue
		}
		if !found || d.GreaterThan(best) {
			best = d
			found = true
		}
	}
	if !found {
		return decimal.Zero, 0
	}
	return best, 0.80
}
