package statement

import (
	"fmt"
	"regexp"
	"strings"
)

// KTC and SCB credit-card statements share a two-date line shape and the
// soft-hyphen credit convention; only the date columns differ.
//
//	KTC:  26/01/26  26/01/26  Payment-SCB(014)Internet  ­7,152.95
//	SCB:  12/01  11/01  STARBUCKS  150.00
//
// KTC dates carry a year; SCB dates do not, so the statement's own year is
// assumed to be the current one. A soft hyphen or '-' in front of the amount
// marks a credit (money in).
var (
	ktcLineRE = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4})\s+(\d{1,2}/\d{1,2}/\d{2,4})\s+(.+?)\s+([\x{00ad}\-]?\s*[\d,]+\.\d{2})\s*$`)
	scbLineRE = regexp.MustCompile(`^(\d{1,2}/\d{1,2})(?:\s+(\d{1,2}/\d{1,2}))?\s+(.+?)\s+([\x{00ad}\-]?\s*[\d,]+\.\d{2})\s*$`)

	// Four-digit statement year (CE or BE) as printed in the header block.
	cardYearRE = regexp.MustCompile(`\b(20\d{2}|25\d{2})\b`)
)

// defaultCardYear is assumed for year-less SCB card lines when the header
// carries no statement year, keeping output stable across runs.
const defaultCardYear = 2026

// cardStatementYear reads the statement year from the header block,
// converting Buddhist Era. Falls back to defaultCardYear.
func cardStatementYear(lines []string) int {
	n := len(lines)
	if n > headerWindow {
		n = headerWindow
	}
	for _, line := range lines[:n] {
		if m := cardYearRE.FindString(line); m != "" {
			y := int(m[0]-'0')*1000 + int(m[1]-'0')*100 + int(m[2]-'0')*10 + int(m[3]-'0')
			if y > 2500 {
				y -= 543
			}
			return y
		}
	}
	return defaultCardYear
}

// ParseCardLines parses the KTC/SCB credit-card format. Lines not matching
// either grammar are skipped; a statement of another layout yields no rows.
func ParseCardLines(lines []string) []Row {
	var rows []Row
	year := cardStatementYear(lines)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var dateStr, desc, amountStr string
		if m := ktcLineRE.FindStringSubmatch(line); m != nil {
			dateStr, desc, amountStr = m[1], m[3], m[4]
		} else if m := scbLineRE.FindStringSubmatch(line); m != nil {
			txDate := m[2]
			if txDate == "" {
				txDate = m[1]
			}
			// No year on SCB card lines; take the statement's own.
			dateStr = fmt.Sprintf("%s/%d", txDate, year)
			desc, amountStr = m[3], m[4]
		} else {
			continue
		}

		amount, credit, ok := ParseAmount(amountStr)
		if !ok {
			continue
		}
		txType := TypeExpense
		if credit {
			txType = TypeIncome // payment/refund onto the card
		}
		desc = strings.TrimSpace(desc)
		txType = ApplyTransferOverrides(txType, desc)
		method := DetectPaymentMethod(desc)
		parsedDate, dateConf := ParseDate(dateStr)
		ref, name := ExtractCounterparty(desc)

		rows = append(rows, Row{
			RawText:          line,
			TransactionDate:  parsedDate,
			Description:      desc,
			Amount:           amount,
			TransactionType:  txType,
			PaymentMethod:    method,
			CounterpartyRef:  ref,
			CounterpartyName: name,
			Confidence: map[string]float64{
				"amount":           0.95,
				"date":             dateConf,
				"transaction_type": 0.70,
				"description":      0.90,
				"payment_method":   methodConf(method, 0.75),
			},
			SortOrder: len(rows),
		})
	}
	return rows
}

// methodConf returns the per-format confidence for a detected payment method,
// or zero when none was detected.
func methodConf(method string, conf float64) float64 {
	if method == "" {
		return 0
	}
	return conf
}
