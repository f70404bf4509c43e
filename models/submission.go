package models

import "time"

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// Submission is a user's claim of having completed a task, awaiting admin
// review. Task title and price are denormalized at submission time so the
// review record stays meaningful if the task is edited later.
type Submission struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	TaskID        uint       `gorm:"not null;index" json:"task_id"`
	TaskTitle     string     `gorm:"size:200;not null" json:"task_title"`
	TaskPrice     float64    `gorm:"type:decimal(15,2);not null" json:"task_price"`
	ProofURL      *string    `gorm:"size:500" json:"proof_url,omitempty"`
	Status        string     `gorm:"size:20;default:'pending';index" json:"status"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	AdminFeedback *string    `gorm:"type:text" json:"admin_feedback,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
