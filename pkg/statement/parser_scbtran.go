package statement

import (
	"regexp"
	"strings"
)

// SCB savings/current account statement. One transaction per line:
//
//	01/02/26 11:15 X2 ENET  65.00  496.55  DESC: จ่ายบิล QR
//
// X1 = credit (income), X2 = debit (expense). Of the amounts before DESC:,
// the first is the transaction and the last the running balance.
var scbTranLineRE = regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s+(\d{2}:\d{2})\s+(X[12])\s+([A-Z]+)(.*)DESC\s*:\s*(.*)$`)

// SCB channel codes when the description has nothing more specific.
var scbChannelMethods = map[string]string{
	"ENET": MethodBankTransfer, // internet/net banking
	"ATM":  MethodATM,
	"BCMS": MethodBankTransfer, // direct credit
	"SIPI": MethodPromptPay,
	"KIOS": MethodATM,
}

// ParseSCBTranLines parses the SCB savings/current account format.
func ParseSCBTranLines(lines []string) []Row {
	var rows []Row
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := scbTranLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		dateStr, timeStr, code, channel, amountsStr, desc := m[1], m[2], m[3], m[4], m[5], strings.TrimSpace(m[6])

		amounts := amountRE.FindAllString(amountsStr, -1)
		if len(amounts) == 0 {
			continue
		}
		amount, _, ok := ParseAmount(amounts[0])
		if !ok {
			continue
		}

		txType := TypeExpense
		if code == "X1" {
			txType = TypeIncome
		}
		txType = ApplyTransferOverrides(txType, desc)

		// Description text is more specific than the channel code.
		method := DetectPaymentMethod(desc + " " + channel)
		if method == "" {
			method = scbChannelMethods[strings.ToUpper(channel)]
		}

		parsedDate, dateConf := ParseDate(dateStr)
		ref, name := ExtractCounterparty(desc)

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
				"transaction_type": 0.90, // X1/X2 is the issuer's own signal
				"description":      0.85,
				"payment_method":   methodConf(method, 0.80),
			},
			SortOrder: len(rows),
		})
	}
	return rows
}
