package statement

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	dateSlashRE = regexp.MustCompile(`\b(\d{1,2})[/\-](\d{1,2})[/\-](\d{2,4})\b`)
	dateISORE   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

// parseDateConfidence is the fixed confidence assigned to any successfully
// normalized date.
const parseDateConfidence = 0.85

// ParseDate normalizes the first date found in text to ISO YYYY-MM-DD.
//
// Accepts D[D]/M[M]/YY[YY] (also with '-') and YYYY-MM-DD. Two-digit years
// ≤30 are read as CE 20xx; >30 as Thai BE 25xx. Any year above 2500 is
// Buddhist Era and converted to CE by subtracting 543. Returns ("", 0) when
// nothing parses or the calendar date is invalid.
func ParseDate(text string) (string, float64) {
	if m := dateISORE.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if iso, ok := buildDate(y, mo, d); ok {
			return iso, parseDateConfidence
		}
	}
	if m := dateSlashRE.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		y, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			if y <= 30 {
				y += 2000
			} else {
				y += 2500 // two-digit BE year, e.g. 68 means 2568
			}
		}
		if iso, ok := buildDate(y, mo, d); ok {
			return iso, parseDateConfidence
		}
	}
	return "", 0
}

// buildDate validates the calendar date and applies the Buddhist Era to CE conversion.
func buildDate(year, month, day int) (string, bool) {
	if year > 2500 {
		year -= 543
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2200 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. 31/02 becomes 03/03); reject those.
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
