package statement

import (
	"regexp"
	"strings"
)

// Generic debit/credit indicators for text without an issuer-specific signal.
var (
	negativeIndicators = []string{"DR", "ถอน", "จ่าย", "DEBIT", "WITHDRAW"}
	positiveIndicators = []string{"CR", "ฝาก", "รับ", "CREDIT", "DEPOSIT"}
)

// InferTransactionType guesses income/expense from generic keywords. Used by
// the image fallback; issuer parsers have their own base signals.
func InferTransactionType(text string) (string, float64) {
	upper := strings.ToUpper(text)
	for _, ind := range negativeIndicators {
		if strings.Contains(upper, strings.ToUpper(ind)) {
			return TypeExpense, 0.75
		}
	}
	for _, ind := range positiveIndicators {
		if strings.Contains(upper, strings.ToUpper(ind)) {
			return TypeIncome, 0.75
		}
	}
	return "", 0
}

// Transfer override rules, applied in fixed order after the issuer base
// signal. Each can only move a row toward transfer.
var (
	// Paying one's own credit card bill shows up as an expense on savings
	// statements and as a credit on card statements; both are transfers.
	ccBillPaymentRE = regexp.MustCompile(`(?i)ชำระ(?:เงิน)?บัตรเครดิต|จ่ายบิลบัตรเครดิต|credit\s*card\s*payment|payment[-\s]*(ktc|scb|kbank|bbl|ktb|bay|uob|citi)`)
	// Funding a brokerage / fund account moves money between own accounts.
	brokerageTopUpRE = regexp.MustCompile(`(?i)dime!?|finnomena|settrade|streaming\b|หลักทรัพย์|ซื้อกองทุน|เติมเงินลงทุน|บล\.|บลจ\.`)
	// Outgoing / incoming transfer phrasing; only a transfer when a bank is
	// actually named, otherwise merchant payments would be caught.
	transferOutRE = regexp.MustCompile(`(?i)โอนเงินไป|โอนไป|โอนออก|transfer\s*(?:out|to)`)
	transferInRE  = regexp.MustCompile(`(?i)รับโอนเงินจาก|รับโอนจาก|โอนเข้า|transfer\s*(?:in|from)`)
)

// ApplyTransferOverrides reclassifies an income/expense row as a transfer
// when the description matches a known own-account movement. A row already
// typed transfer is returned unchanged; overrides never go the other way.
func ApplyTransferOverrides(txType, description string) string {
	if txType == TypeTransfer || txType == "" {
		return txType
	}
	if ccBillPaymentRE.MatchString(description) {
		return TypeTransfer
	}
	if brokerageTopUpRE.MatchString(description) {
		return TypeTransfer
	}
	if ContainsBankToken(description) {
		if txType == TypeExpense && transferOutRE.MatchString(description) {
			return TypeTransfer
		}
		if txType == TypeIncome && transferInRE.MatchString(description) {
			return TypeTransfer
		}
	}
	return txType
}
