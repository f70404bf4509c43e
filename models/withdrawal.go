package models

import "time"

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"

	WithdrawalMethodUPI  = "UPI"
	WithdrawalMethodBank = "BANK"
)

type Withdrawal struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	Amount        float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Method        string     `gorm:"size:10;not null" json:"method"`
	UpiID         *string    `gorm:"size:100" json:"upi_id,omitempty"`
	AccountNumber *string    `gorm:"size:30" json:"account_number,omitempty"`
	IfscCode      *string    `gorm:"size:20" json:"ifsc_code,omitempty"`
	AccountName   *string    `gorm:"size:100" json:"account_name,omitempty"`
	ReferenceID   string     `gorm:"size:40;not null;uniqueIndex" json:"reference_id"`
	Status        string     `gorm:"size:20;default:'pending';index" json:"status"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	AdminReason   *string    `gorm:"type:text" json:"admin_reason,omitempty"`
	ApprovedBy    *int64     `json:"approved_by,omitempty"`
	CreatedAt     time.Time  `json:"requested_at"`
	UpdatedAt     time.Time  `json:"-"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
