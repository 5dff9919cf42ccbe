package statement

import (
	"regexp"
	"strings"
)

// Bangkok Bank savings passbook e-statement. Buddhist-Era dates, and records
// spill across lines: the dated line opens a record and the transfer detail
// (destination bank, masked account, payee) follows on its own lines.
//
//	03/01/68 10:23 โอนเงิน พร้อมเพย์  500.00  1,734.56
//	ไปยัง SCB x1234 SOMCHAI J
//	05/01/68 09:00 ฝากเงินสด  1,000.00  2,734.56
//
// A record is flushed when the next dated line begins or at end of input.
var (
	bblHeaderRE = regexp.MustCompile(`(?i)ธนาคารกรุงเทพ|Bangkok\s*Bank|BBL\s*e-?statement`)
	bblStartRE  = regexp.MustCompile(`^(\d{2}/\d{2}/\d{2,4})\s+(\d{2}:\d{2})\s+(.*)$`)
	// Headers, footers, totals, page markers, and bare column labels may
	// interrupt a record at any point and are dropped, not accumulated.
	bblIgnoreRE = regexp.MustCompile(`(?i)^(?:หน้า\s*\d+|page\s*\d+(?:\s*/\s*\d+)?|` +
		`วันที่\s+เวลา|รายการ\s+จำนวนเงิน|จำนวนเงิน\s+ยอดคงเหลือ|` +
		`ยอดรวม.*|รวมทั้งสิ้น.*|สิ้นสุดรายการ.*)$`)
	// Whole-record skip keywords: balance carry-over rows and transfers
	// between the customer's own pockets.
	bblSkipRE = regexp.MustCompile(`ยอดยกมา|ยอดยกไป|โอนระหว่างบัญชีตนเอง|บัญชีของตนเอง`)

	bblIncomeRE  = regexp.MustCompile(`รับโอน|ฝากเงิน|รับเงิน|ดอกเบี้ย|เงินเดือน`)
	bblExpenseRE = regexp.MustCompile(`โอนเงิน|ถอนเงิน|ชำระ|จ่าย|หักบัญชี|ซื้อ`)
)

// bblPending is the accumulator for the record currently being assembled.
type bblPending struct {
	raw       []string
	dateStr   string
	timeStr   string
	firstLine string
}

// ParseBBLLines parses the multi-line Bangkok Bank savings format. The issuer
// header must be present in the first lines.
func ParseBBLLines(lines []string) []Row {
	if !headerMatches(lines, bblHeaderRE) {
		return nil
	}

	var rows []Row
	var pending *bblPending

	flush := func() {
		if pending == nil {
			return
		}
		rec := pending
		pending = nil
		full := strings.Join(rec.raw, " ")
		if bblSkipRE.MatchString(full) {
			return
		}
		// The transaction amount is the first grouped amount in the record;
		// the balance follows it on the dated line.
		amtMatch := amountRE.FindString(full)
		if amtMatch == "" {
			return
		}
		amount, _, ok := ParseAmount(amtMatch)
		if !ok {
			return
		}
		// Amount and balance columns are noise in the description, on the
		// dated line and on continuations alike.
		desc := strings.TrimSpace(amountRE.ReplaceAllString(rec.firstLine, ""))
		for _, cont := range rec.raw[1:] {
			if c := strings.TrimSpace(amountRE.ReplaceAllString(cont, "")); c != "" {
				desc = strings.TrimSpace(desc + " " + c)
			}
		}

		var txType string
		switch {
		case bblIncomeRE.MatchString(full):
			txType = TypeIncome
		case bblExpenseRE.MatchString(full):
			txType = TypeExpense
		default:
			return
		}
		txType = ApplyTransferOverrides(txType, desc)

		parsedDate, dateConf := ParseDate(rec.dateStr)
		method := DetectPaymentMethod(desc)
		ref, name := ExtractCounterparty(desc)

		rows = append(rows, Row{
			RawText:          strings.Join(rec.raw, "\n"),
			TransactionDate:  parsedDate,
			TransactionTime:  rec.timeStr,
			Description:      desc,
			Amount:           amount,
			TransactionType:  txType,
			PaymentMethod:    method,
			CounterpartyRef:  ref,
			CounterpartyName: name,
			Confidence: map[string]float64{
				"amount":           0.95,
				"date":             dateConf,
				"transaction_type": 0.70, // keyword guess, no issuer code
				"description":      0.80,
				"payment_method":   methodConf(method, 0.75),
			},
			SortOrder: len(rows),
		})
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || bblIgnoreRE.MatchString(line) {
			continue
		}
		if m := bblStartRE.FindStringSubmatch(line); m != nil {
			flush()
			pending = &bblPending{
				raw:       []string{line},
				dateStr:   m[1],
				timeStr:   m[2],
				firstLine: m[3],
			}
			continue
		}
		if pending != nil {
			pending.raw = append(pending.raw, line)
		}
		// Lines before the first dated line are statement preamble.
	}
	flush()
	return rows
}
