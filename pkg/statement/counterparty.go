package statement

import "strings"

// ExtractCounterparty scans a description for a recognized bank-name token
// optionally followed by a masked account reference; whatever trails is the
// counterparty display name.
//
//	"รับโอนเงินจาก SCB x1234 SOMCHAI J" yields ("x1234", "SOMCHAI J")
//
// Returns ("", "") when no bank token is present.
func ExtractCounterparty(description string) (ref string, name string) {
	loc := bankTokenRE.FindStringIndex(description)
	if loc == nil {
		return "", ""
	}
	tail := strings.TrimSpace(description[loc[1]:])
	if tail == "" {
		return "", ""
	}
	if m := maskedRefRE.FindStringIndex(tail); m != nil && m[0] <= 1 {
		ref = strings.TrimSpace(tail[m[0]:m[1]])
		name = strings.TrimSpace(tail[m[1]:])
		return ref, name
	}
	return "", tail
}
