package statement

import "regexp"

// Recognized Thai bank name tokens (English abbreviations and Thai names).
// Shared by the transfer-override rules and counterparty extraction.
var bankTokenRE = regexp.MustCompile(`(?i)\b(SCB|KBANK|KBNK|BBL|KTB|BAY|KTC|TTB|TMB|GSB|UOB|CIMB|LHB|BAAC|KKP)\b` +
	`|ไทยพาณิชย์|กสิกร|กรุงเทพ|กรุงไทย|กรุงศรี|ทหารไทย|ออมสิน|เกียรตินาคิน|ธ\.ก\.ส`)

// Masked account references as they appear after bank tokens in transfer
// descriptions, e.g. "x1234", "xxx-x-12345-x", "****1234".
var maskedRefRE = regexp.MustCompile(`(?i)\b[x*]{1,4}[-\s]?[\dx*]{1,6}(?:[-\s][\dx*]{1,6}){0,3}\b`)

// ContainsBankToken reports whether text mentions a recognized bank.
func ContainsBankToken(text string) bool {
	return bankTokenRE.MatchString(text)
}
