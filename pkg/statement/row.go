package statement

import "github.com/shopspring/decimal"

// Transaction types produced by parsers.
const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

// Payment method keys. The detection table in payment.go maps description
// text onto these.
const (
	MethodPromptPay     = "promptpay"
	MethodQRCode        = "qr_code"
	MethodDigitalWallet = "digital_wallet"
	MethodSubscription  = "subscription"
	MethodOnline        = "online"
	MethodATM           = "atm"
	MethodBankTransfer  = "bank_transfer"
	MethodCreditCard    = "credit_card"
)

// Row is a single candidate transaction extracted from a statement. It lives
// only long enough to seed a staging record.
type Row struct {
	RawText          string
	TransactionDate  string // ISO YYYY-MM-DD, empty when unparsed
	TransactionTime  string // HH:MM when the format carries one
	Description      string
	Amount           decimal.Decimal
	TransactionType  string
	PaymentMethod    string
	CounterpartyRef  string
	CounterpartyName string
	Confidence       map[string]float64
	SortOrder        int
}

// Result is what a pipeline run hands back to the staging workflow: the rows
// plus a diagnostic record of which strategy and format produced them.
type Result struct {
	RawOutput map[string]any
	Rows      []Row
	PageCount int
}
