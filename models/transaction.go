package models

import "time"

const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
	TransactionTypeInfo   = "info"
)

// Transaction is one ledger entry. Rows are append-only: nothing in the
// codebase updates or deletes them after creation.
type Transaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Type         string    `gorm:"size:10;not null" json:"type"`
	Amount       float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Reason       string    `gorm:"size:255;not null" json:"reason"`
	ReferenceID  string    `gorm:"size:40;not null;uniqueIndex" json:"reference_id"`
	WithdrawalID *uint     `gorm:"index" json:"withdrawal_id,omitempty"`
	CreatedAt    time.Time `json:"timestamp"`
}

func (Transaction) TableName() string {
	return "transactions"
}
