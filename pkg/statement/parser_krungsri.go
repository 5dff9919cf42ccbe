package statement

import (
	"regexp"
	"strings"
)

// Krungsri T1 credit card (General Card Services). Columnar layout with a
// wide gap between the purchase and billing dates, which is what separates it
// from the KTC two-date shape:
//
//	19/11/25  <10+ spaces>  15/02/26  CPP ON CALL  19,737.33  003/006  5,026.70
//
// Installment rows carry the remaining principal and an NNN/NNN counter
// before the monthly due amount; the due (rightmost) amount is the one that
// bills this cycle, and the billing date is the transaction date.
var (
	krungsriHeaderRE  = regexp.MustCompile(`(?i)เจเนอรัล\s*คาร์ด|General\s*Card\s*Services`)
	krungsriLineRE    = regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s{10,}(\d{2}/\d{2}/\d{2})\s{3,}(.+?)\s{3,}(-?[\d,]+\.\d{2})\s*$`)
	krungsriInstallRE = regexp.MustCompile(`\b(\d{3}/\d{3})\b`)
	// Repayment acknowledgements and subtotal rows are not purchases.
	krungsriSkipRE      = regexp.MustCompile(`ขอบคณสำหรับยอดชำระ|SUBTOTAL|ยอดรวม|คงวดตอเดอน`)
	krungsriTrailNumRE  = regexp.MustCompile(`\s+[\d,]+\.\d{2}.*`)
	krungsriTrailTailRE = regexp.MustCompile(`\s+[\d,]+\.\d{2}\s*$`)
)

// headerWindow is how many leading lines are checked for an issuer header.
const headerWindow = 30

// ParseKrungsriLines parses the Krungsri T1 format. The issuer header must
// appear in the first lines or the whole statement is rejected, keeping this
// narrow grammar from shadowing the generic card parser.
func ParseKrungsriLines(lines []string) []Row {
	if !headerMatches(lines, krungsriHeaderRE) {
		return nil
	}

	var rows []Row
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := krungsriLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		billDate, desc, amountStr := m[2], strings.TrimSpace(m[3]), m[4]

		if krungsriSkipRE.MatchString(desc) {
			continue
		}
		amount, negative, ok := ParseAmount(amountStr)
		if !ok || negative || amount.IsZero() {
			continue // negative = card repayment, not a purchase
		}

		// The lazy description group swallows the principal column on
		// installment rows; strip it and annotate the fraction instead.
		if f := krungsriInstallRE.FindString(desc); f != "" {
			desc = strings.TrimSpace(krungsriTrailNumRE.ReplaceAllString(desc, ""))
			desc = desc + " (" + f + ")"
		} else {
			desc = strings.TrimSpace(krungsriTrailTailRE.ReplaceAllString(desc, ""))
		}

		parsedDate, dateConf := ParseDate(billDate)
		method := DetectPaymentMethod(desc)
		if method == "" {
			method = MethodCreditCard
		}
		txType := ApplyTransferOverrides(TypeExpense, desc)

		rows = append(rows, Row{
			RawText:         line,
			TransactionDate: parsedDate,
			Description:     desc,
			Amount:          amount,
			TransactionType: txType,
			PaymentMethod:   method,
			Confidence: map[string]float64{
				"amount":           0.95,
				"date":             dateConf,
				"transaction_type": 0.90,
				"description":      0.85,
				"payment_method":   0.80,
			},
			SortOrder: len(rows),
		})
	}
	return rows
}

// headerMatches reports whether re matches within the first headerWindow lines.
func headerMatches(lines []string, re *regexp.Regexp) bool {
	n := len(lines)
	if n > headerWindow {
		n = headerWindow
	}
	return re.MatchString(strings.Join(lines[:n], "\n"))
}
