package models

import "time"

const (
	TaskStatusActive   = "active"
	TaskStatusInactive = "inactive"
)

type Task struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        float64   `gorm:"type:decimal(15,2);not null" json:"price"`
	URL          string    `gorm:"size:500" json:"url"`
	Steps        string    `gorm:"type:text" json:"steps"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	TimeLimit    int       `gorm:"default:0" json:"time_limit"`
	Status       string    `gorm:"size:20;default:'active';index" json:"status"`
	Likes        int       `gorm:"default:0" json:"likes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskCompletion records that a user's submission for a task was approved.
// The unique index makes repeated approvals idempotent: a user can appear in a
// task's completion set at most once.
type TaskCompletion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"not null;uniqueIndex:idx_task_user" json:"task_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_task_user" json:"user_id"`
	CreatedAt time.Time `json:"completed_at"`
}

func (TaskCompletion) TableName() string {
	return "task_completions"
}

// TaskLike is one user's like on a task. The counter on Task is moved with
// atomic SQL increments alongside inserts/deletes here.
type TaskLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"not null;uniqueIndex:idx_like_task_user" json:"task_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_task_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (TaskLike) TableName() string {
	return "task_likes"
}
