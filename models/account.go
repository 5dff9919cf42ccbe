package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a user's money container (bank account, credit card, wallet, cash).
type Account struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	UserID         uint            `gorm:"index;not null"`
	Name           string          `gorm:"size:255;not null"`
	AccountType    string          `gorm:"size:32;not null"` // bank | credit_card | wallet | cash
	Currency       string          `gorm:"size:8;not null;default:THB"`
	InitialBalance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Active         bool            `gorm:"default:true;not null"`
}

// Category classifies ledger transactions (groceries, salary, ...).
type Category struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserID       uint   `gorm:"index;not null"`
	Name         string `gorm:"size:255;not null"`
	CategoryType string `gorm:"size:16;not null"` // income | expense | transfer
}
