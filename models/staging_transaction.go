package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StagingTransaction review states.
const (
	RowPending   = "pending"
	RowEdited    = "edited"
	RowConfirmed = "confirmed"
	RowDiscarded = "discarded"
)

// StagingTransaction is one parsed candidate row awaiting review. Financial
// fields start from parser output and may be overwritten by the user; the OCR
// metadata (confidence, raw text) is immutable.
type StagingTransaction struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	OcrJobID     uint   `gorm:"index;not null"`
	UserID       uint   `gorm:"index;not null"`
	SortOrder    int    `gorm:"not null"`
	ReviewStatus string `gorm:"size:16;not null;default:pending"`
	// Editable fields.
	AccountID        *uint
	CategoryID       *uint
	AmountTHB        *decimal.Decimal `gorm:"type:numeric(14,2)"`
	OriginalAmount   *decimal.Decimal `gorm:"type:numeric(14,2)"`
	OriginalCurrency string           `gorm:"size:8"`
	ExchangeRate     *decimal.Decimal `gorm:"type:numeric(14,6)"`
	TransactionType  string           `gorm:"size:16"`
	PaymentMethod    string           `gorm:"size:32"`
	CounterpartyRef  string           `gorm:"size:64"`
	CounterpartyName string           `gorm:"size:255"`
	Description      string           `gorm:"size:512"`
	TransactionDate  string           `gorm:"size:10"` // ISO date string as parsed
	Tags             StringSlice      `gorm:"type:jsonb"`
	// Immutable OCR metadata.
	Confidence JSONMap `gorm:"type:jsonb"`
	RawText    string  `gorm:"size:1024"`
}

func (s *StagingTransaction) MarkEdited() { s.ReviewStatus = RowEdited }
func (s *StagingTransaction) Discard()    { s.ReviewStatus = RowDiscarded }
func (s *StagingTransaction) Confirm()    { s.ReviewStatus = RowConfirmed }

func (s *StagingTransaction) Discarded() bool { return s.ReviewStatus == RowDiscarded }

// Committable reports whether the row has the minimum fields required to
// become a ledger transaction.
func (s *StagingTransaction) Committable() bool {
	return !s.Discarded() && s.AmountTHB != nil && s.TransactionType != ""
}
