package models

import "time"

type User struct {
	ID                        uint      `gorm:"primaryKey" json:"id"`
	Name                      string    `gorm:"size:100;not null" json:"name"`
	Email                     string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Phone                     string    `gorm:"size:20;not null" json:"phone"`
	Password                  string    `gorm:"size:255;not null" json:"-"`
	Verified                  bool      `gorm:"default:false" json:"verified"`
	ReferralCode              string    `gorm:"size:20;uniqueIndex;not null" json:"referral_code"`
	ReferredBy                *uint     `gorm:"column:referred_by;index" json:"referred_by"`
	HasReceivedSignupBonus    bool      `gorm:"default:false" json:"-"`
	HasReceivedFirstTaskBonus bool      `gorm:"default:false" json:"-"`
	Balance                   float64   `gorm:"type:decimal(15,2);default:0" json:"balance"`
	TotalEarned               float64   `gorm:"type:decimal(15,2);default:0" json:"total_earned"`
	TotalWithdrawn            float64   `gorm:"type:decimal(15,2);default:0" json:"total_withdrawn"`
	PendingTasks              int       `gorm:"default:0" json:"pending_tasks"`
	CompletedTasks            int       `gorm:"default:0" json:"completed_tasks"`
	RejectedTasks             int       `gorm:"default:0" json:"rejected_tasks"`
	ReferralCount             int       `gorm:"default:0" json:"referral_count"`
	ReferralEarnings          float64   `gorm:"type:decimal(15,2);default:0" json:"referral_earnings"`
	UpiID                     *string   `gorm:"size:100" json:"upi_id,omitempty"`
	Status                    string    `gorm:"size:20;default:'Active'" json:"status"`
	CreatedAt                 time.Time `json:"joined_at"`
	UpdatedAt                 time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
