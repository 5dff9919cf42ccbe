package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a committed ledger entry. Rows born from a statement carry a
// back-reference to the OCR job and staging row they came from.
type Transaction struct {
	ID              uint `gorm:"primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UserID          uint             `gorm:"index;not null"`
	AccountID       uint             `gorm:"index;not null"`
	CategoryID      *uint            `gorm:"index"`
	AmountTHB       decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	OriginalAmount  *decimal.Decimal `gorm:"type:numeric(14,2)"`
	Currency        string           `gorm:"size:8;not null;default:THB"`
	ExchangeRate    *decimal.Decimal `gorm:"type:numeric(14,6)"`
	TransactionType string           `gorm:"size:16;not null"` // income | expense | transfer
	PaymentMethod   string           `gorm:"size:32"`          // detected method key, "unknown" when undetected
	Description     string           `gorm:"size:512"`
	TransactionDate time.Time        `gorm:"not null;index"`
	Tags            StringSlice      `gorm:"type:jsonb"`
	// Provenance for statement imports.
	SourceJobID  *uint `gorm:"index"`
	StagingRowID *uint `gorm:"index"`
}
