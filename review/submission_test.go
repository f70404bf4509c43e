package review

import (
	"fmt"
	"strings"
	"testing"

	"github.com/royal450/DaillyEarners2/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskCompletion{},
		&models.Submission{},
		&models.Withdrawal{},
		&models.Transaction{},
		&models.Setting{},
	))
	require.NoError(t, db.Create(&models.Setting{
		MinWithdraw:    50,
		MaxWithdraw:    10000,
		SignupBonus:    5,
		FirstTaskBonus: 10,
	}).Error)
	return db
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, balance float64) *models.User {
	t.Helper()
	userSeq++
	u := &models.User{
		Name:         fmt.Sprintf("Test User %d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		Phone:        "9999999999",
		Password:     "hashed",
		ReferralCode: fmt.Sprintf("CODE%04d", userSeq),
		Balance:      balance,
		Status:       "Active",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createTask(t *testing.T, db *gorm.DB, price float64, status string) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:       "Install and review the app",
		Description: "Install, keep for a day, leave a review",
		Price:       price,
		Status:      status,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func reloadUser(t *testing.T, db *gorm.DB, id uint) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, db.First(&u, id).Error)
	return u
}

func TestCreateSubmission(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 0)
	task := createTask(t, db, 25, models.TaskStatusActive)

	sub, err := CreateSubmission(db, user.ID, task.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPending, sub.Status)
	assert.Equal(t, task.Title, sub.TaskTitle)
	assert.Equal(t, 25.0, sub.TaskPrice)

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 1, got.PendingTasks)
	assert.Equal(t, 0.0, got.Balance, "no money moves before approval")
}

func TestCreateSubmissionGuards(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 0)

	t.Run("UnknownTask", func(t *testing.T) {
		_, err := CreateSubmission(db, user.ID, 9999, nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("InactiveTask", func(t *testing.T) {
		task := createTask(t, db, 10, models.TaskStatusInactive)
		_, err := CreateSubmission(db, user.ID, task.ID, nil)
		assert.ErrorIs(t, err, ErrTaskInactive)
	})

	t.Run("AlreadyPending", func(t *testing.T) {
		task := createTask(t, db, 10, models.TaskStatusActive)
		_, err := CreateSubmission(db, user.ID, task.ID, nil)
		require.NoError(t, err)
		_, err = CreateSubmission(db, user.ID, task.ID, nil)
		assert.ErrorIs(t, err, ErrAlreadyPending)
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		task := createTask(t, db, 10, models.TaskStatusActive)
		sub, err := CreateSubmission(db, user.ID, task.ID, nil)
		require.NoError(t, err)
		require.NoError(t, ApproveSubmission(db, sub.ID))
		_, err = CreateSubmission(db, user.ID, task.ID, nil)
		assert.ErrorIs(t, err, ErrAlreadyCompleted)
	})
}

func TestApproveSubmission(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 0)
	task := createTask(t, db, 25, models.TaskStatusActive)
	sub, err := CreateSubmission(db, user.ID, task.ID, nil)
	require.NoError(t, err)

	require.NoError(t, ApproveSubmission(db, sub.ID))

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 25.0, got.Balance)
	assert.Equal(t, 25.0, got.TotalEarned)
	assert.Equal(t, 0, got.PendingTasks)
	assert.Equal(t, 1, got.CompletedTasks)

	var reviewed models.Submission
	require.NoError(t, db.First(&reviewed, sub.ID).Error)
	assert.Equal(t, models.SubmissionStatusApproved, reviewed.Status)
	assert.NotNil(t, reviewed.ReviewedAt)

	var completions int64
	db.Model(&models.TaskCompletion{}).
		Where("task_id = ? AND user_id = ?", task.ID, user.ID).Count(&completions)
	assert.Equal(t, int64(1), completions)

	var entry models.Transaction
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, models.TransactionTypeCredit, entry.Type)
	assert.Equal(t, fmt.Sprintf("Task completion: %d", task.ID), entry.Reason)
}

func TestApproveSubmissionTwiceFails(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 0)
	task := createTask(t, db, 25, models.TaskStatusActive)
	sub, err := CreateSubmission(db, user.ID, task.ID, nil)
	require.NoError(t, err)

	require.NoError(t, ApproveSubmission(db, sub.ID))
	assert.ErrorIs(t, ApproveSubmission(db, sub.ID), ErrAlreadyReviewed)

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 25.0, got.Balance, "no double credit")
	assert.Equal(t, 1, got.CompletedTasks)

	var count int64
	db.Model(&models.Transaction{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestApproveUnknownSubmission(t *testing.T) {
	db := openTestDB(t)
	assert.ErrorIs(t, ApproveSubmission(db, 9999), ErrNotFound)
}

func TestRejectSubmission(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 0)
	task := createTask(t, db, 25, models.TaskStatusActive)
	sub, err := CreateSubmission(db, user.ID, task.ID, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, RejectSubmission(db, sub.ID, "   "), ErrReasonRequired)

	require.NoError(t, RejectSubmission(db, sub.ID, "Screenshot does not show the review"))

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 0.0, got.Balance)
	assert.Equal(t, 0, got.PendingTasks)
	assert.Equal(t, 1, got.RejectedTasks)
	assert.Equal(t, 0, got.CompletedTasks)

	var reviewed models.Submission
	require.NoError(t, db.First(&reviewed, sub.ID).Error)
	assert.Equal(t, models.SubmissionStatusRejected, reviewed.Status)
	require.NotNil(t, reviewed.AdminFeedback)
	assert.Equal(t, "Screenshot does not show the review", *reviewed.AdminFeedback)

	var entry models.Transaction
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, models.TransactionTypeInfo, entry.Type)
	assert.Equal(t, "Task rejected: Screenshot does not show the review", entry.Reason)

	// A rejected task can be submitted again.
	_, err = CreateSubmission(db, user.ID, task.ID, nil)
	assert.NoError(t, err)
}

func TestRejectAfterApproveFails(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 0)
	task := createTask(t, db, 25, models.TaskStatusActive)
	sub, err := CreateSubmission(db, user.ID, task.ID, nil)
	require.NoError(t, err)

	require.NoError(t, ApproveSubmission(db, sub.ID))
	assert.ErrorIs(t, RejectSubmission(db, sub.ID, "changed my mind"), ErrAlreadyReviewed)
}

func TestReferralFirstTaskBonusFlow(t *testing.T) {
	db := openTestDB(t)
	referrer := createUser(t, db, 0)
	referred := createUser(t, db, 5) // signup bonus already on the balance
	referred.ReferredBy = &referrer.ID
	require.NoError(t, db.Save(referred).Error)

	taskA := createTask(t, db, 25, models.TaskStatusActive)
	taskB := createTask(t, db, 40, models.TaskStatusActive)

	subA, err := CreateSubmission(db, referred.ID, taskA.ID, nil)
	require.NoError(t, err)
	require.NoError(t, ApproveSubmission(db, subA.ID))

	gotReferred := reloadUser(t, db, referred.ID)
	assert.Equal(t, 30.0, gotReferred.Balance)
	assert.True(t, gotReferred.HasReceivedFirstTaskBonus)

	gotReferrer := reloadUser(t, db, referrer.ID)
	assert.Equal(t, 10.0, gotReferrer.Balance)
	assert.Equal(t, 10.0, gotReferrer.ReferralEarnings)

	// Second approved task pays the referred user only.
	subB, err := CreateSubmission(db, referred.ID, taskB.ID, nil)
	require.NoError(t, err)
	require.NoError(t, ApproveSubmission(db, subB.ID))

	assert.Equal(t, 70.0, reloadUser(t, db, referred.ID).Balance)
	assert.Equal(t, 10.0, reloadUser(t, db, referrer.ID).Balance, "first-task bonus is one-time")
}
