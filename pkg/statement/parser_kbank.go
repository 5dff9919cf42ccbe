package statement

import (
	"regexp"
	"strings"
)

// KBANK savings/current account statement. The Thai description carries the
// debit/credit signal:
//
//	03-01-26 16:25 รับโอนเงิน  5,000.00  5,000.00  K PLUS  จาก...
var (
	kbankLineRE = regexp.MustCompile(`^(\d{2}-\d{2}-\d{2})(?:[ \t]+(\d{2}:\d{2}))?[ \t]+(.+?)[ \t]{2,}([\d,]+\.\d{2})[ \t]+([\d,]+\.\d{2})(?:[ \t]+(.+?))?[ \t]*$`)

	kbankIncomeRE  = regexp.MustCompile(`รับโอน|ฝากเงิน|รับเงิน|ดอกเบี้ย|รับโอนเงิน`)
	kbankExpenseRE = regexp.MustCompile(`ชำระเงิน|โอนเงิน|ถอนเงิน|หักเงิน|จ่ายเงิน`)
	kbankSkipRE    = regexp.MustCompile(`ยอดยกมา|ยอดยกไป|Balance Brought`)
	kbankChannelRE = regexp.MustCompile(`(?i)K PLUS|K-Cash|Internet/Mobile|ATM KBANK|K BIZ`)
)

// ParseKBankLines parses the KBANK savings/current account format. Rows whose
// Thai description matches neither keyword set are dropped rather than
// guessed at.
func ParseKBankLines(lines []string) []Row {
	var rows []Row
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := kbankLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		dateStr, timeStr, desc, amountStr, channelMemo := m[1], m[2], strings.TrimSpace(m[3]), m[4], strings.TrimSpace(m[6])

		if kbankSkipRE.MatchString(desc) {
			continue // opening/closing balance carry-over
		}
		amount, _, ok := ParseAmount(amountStr)
		if !ok {
			continue
		}

		var txType string
		switch {
		case kbankIncomeRE.MatchString(desc):
			txType = TypeIncome
		case kbankExpenseRE.MatchString(desc):
			txType = TypeExpense
		default:
			continue
		}
		fullDesc := desc
		if channelMemo != "" {
			fullDesc = desc + " " + channelMemo
		}
		txType = ApplyTransferOverrides(txType, fullDesc)

		parsedDate, dateConf := ParseDate(strings.ReplaceAll(dateStr, "-", "/"))

		method := DetectPaymentMethod(fullDesc)
		if method == "" && channelMemo != "" && kbankChannelRE.MatchString(channelMemo) {
			method = MethodBankTransfer
		}
		ref, name := ExtractCounterparty(fullDesc)

		rows = append(rows, Row{
			RawText:          line,
			TransactionDate:  parsedDate,
			TransactionTime:  timeStr,
			Description:      desc,
			Amount:           amount,
			TransactionType:  txType,
			PaymentMethod:    method,
			CounterpartyRef:  ref,
			CounterpartyName: name,
			Confidence: map[string]float64{
				"amount":           0.95,
				"date":             dateConf,
				"transaction_type": 0.90,
				"description":      0.80,
				"payment_method":   methodConf(method, 0.75),
			},
			SortOrder: len(rows),
		})
	}
	return rows
}
