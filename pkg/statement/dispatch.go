package statement

// ParseFunc turns extracted statement lines into candidate rows. A parser
// whose line grammar does not match returns an empty slice; that is a normal
// outcome, not an error.
type ParseFunc func(lines []string) []Row

// formatParser pairs a format name (recorded in job diagnostics) with its
// parser.
type formatParser struct {
	name  string
	parse ParseFunc
}

// parsers is tried in order; the first one producing rows wins and later
// entries are not attempted. Narrow grammars (header-gated, wide-gap
// columnar) sit above the permissive generic ones so they cannot be shadowed.
var parsers = []formatParser{
	{"krungsri", ParseKrungsriLines}, // Krungsri T1 credit card, header-gated
	{"bbl", ParseBBLLines},           // Bangkok Bank multi-line savings, header-gated
	{"cc", ParseCardLines},           // KTC/SCB credit card
	{"scb_tran", ParseSCBTranLines},  // SCB savings/current (X1/X2 channel)
	{"kbank", ParseKBankLines},       // KBANK savings/current (Thai keywords)
}

// Dispatch runs every known format parser against the lines in priority
// order. Returns the rows and the winning format name, or (nil, "") when no
// format matched.
func Dispatch(lines []string) ([]Row, string) {
	for _, p := range parsers {
		if rows := p.parse(lines); len(rows) > 0 {
			return rows, p.name
		}
	}
	return nil, ""
}
