// Package review implements the admin review workflows: the
// pending -> approved/rejected state machines for task submissions and
// withdrawal requests. Every transition runs inside a single database
// transaction with the affected rows locked, so a failed step leaves no
// partial state and double reviews are rejected instead of double-paid.
package review

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/royal450/DaillyEarners2/ledger"
	"github.com/royal450/DaillyEarners2/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyReviewed  = errors.New("already reviewed")
	ErrReasonRequired   = errors.New("a non-empty reason is required")
	ErrTaskInactive     = errors.New("task is not active")
	ErrAlreadyCompleted = errors.New("task already completed by this user")
	ErrAlreadyPending   = errors.New("a submission for this task is already under review")
)

// CreateSubmission records a user's claim of having completed a task and bumps
// the pending counter. The balance is not touched until an admin approves.
func CreateSubmission(db *gorm.DB, userID, taskID uint, proofURL *string) (*models.Submission, error) {
	var sub models.Submission
	err := db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if task.Status != models.TaskStatusActive {
			return ErrTaskInactive
		}

		var count int64
		if err := tx.Model(&models.TaskCompletion{}).
			Where("task_id = ? AND user_id = ?", taskID, userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyCompleted
		}
		if err := tx.Model(&models.Submission{}).
			Where("task_id = ? AND user_id = ? AND status = ?", taskID, userID, models.SubmissionStatusPending).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyPending
		}

		sub = models.Submission{
			UserID:      userID,
			TaskID:      taskID,
			TaskTitle:   task.Title,
			TaskPrice:   task.Price,
			ProofURL:    proofURL,
			Status:      models.SubmissionStatusPending,
			SubmittedAt: time.Now(),
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("pending_tasks", gorm.Expr("pending_tasks + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ApproveSubmission makes the pending -> approved transition: credit the
// submitter the task price, move the task history counters, add the user to
// the task's completion set, and evaluate the referral first-task bonus.
// A second approval attempt fails with ErrAlreadyReviewed and changes nothing.
func ApproveSubmission(db *gorm.DB, submissionID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sub models.Submission
		if err := ledger.LockForUpdate(tx).First(&sub, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if sub.Status != models.SubmissionStatusPending {
			return ErrAlreadyReviewed
		}

		// Lock the submitter: the pre-increment completed count decides the
		// referral bonus, and the lock keeps racing approvals serialized.
		var user models.User
		if err := ledger.LockForUpdate(tx).First(&user, sub.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		reason := fmt.Sprintf("Task completion: %d", sub.TaskID)
		if err := ledger.Credit(tx, sub.UserID, sub.TaskPrice, reason); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.Submission{}).Where("id = ?", sub.ID).Updates(map[string]interface{}{
			"status":      models.SubmissionStatusApproved,
			"reviewed_at": now,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", sub.UserID).UpdateColumns(map[string]interface{}{
			"pending_tasks":   gorm.Expr("CASE WHEN pending_tasks > 0 THEN pending_tasks - 1 ELSE 0 END"),
			"completed_tasks": gorm.Expr("completed_tasks + 1"),
		}).Error; err != nil {
			return err
		}

		// Idempotent set append: the unique (task_id, user_id) index plus
		// ON CONFLICT DO NOTHING keeps the completion set duplicate-free.
		completion := models.TaskCompletion{TaskID: sub.TaskID, UserID: sub.UserID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion).Error; err != nil {
			return err
		}

		return ledger.FirstTaskBonus(tx, &user)
	})
}

// RejectSubmission makes the pending -> rejected transition. The reason is
// mandatory and is surfaced back to the user as admin feedback; the balance is
// never touched, only a zero-amount info entry is logged.
func RejectSubmission(db *gorm.DB, submissionID uint, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var sub models.Submission
		if err := ledger.LockForUpdate(tx).First(&sub, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if sub.Status != models.SubmissionStatusPending {
			return ErrAlreadyReviewed
		}

		now := time.Now()
		if err := tx.Model(&models.Submission{}).Where("id = ?", sub.ID).Updates(map[string]interface{}{
			"status":         models.SubmissionStatusRejected,
			"admin_feedback": reason,
			"reviewed_at":    now,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", sub.UserID).UpdateColumns(map[string]interface{}{
			"pending_tasks":  gorm.Expr("CASE WHEN pending_tasks > 0 THEN pending_tasks - 1 ELSE 0 END"),
			"rejected_tasks": gorm.Expr("rejected_tasks + 1"),
		}).Error; err != nil {
			return err
		}

		return ledger.Info(tx, sub.UserID, fmt.Sprintf("Task rejected: %s", reason), nil)
	})
}
