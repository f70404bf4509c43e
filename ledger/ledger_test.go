package ledger

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

func reload(t *testing.T, db *gorm.DB, id uint) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, db.First(&u, id).Error)
	return u
}

func TestCreditMovesBalanceAndAppendsEntry(t *testing.T) {
	db := openTestDB(t)
	u := createUser(t, db, 0)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Credit(tx, u.ID, 25, "Task completion: 1")
	})
	require.NoError(t, err)

	got := reload(t, db, u.ID)
	assert.Equal(t, 25.0, got.Balance)
	assert.Equal(t, 25.0, got.TotalEarned)

	var entries []models.Transaction
	require.NoError(t, db.Where("user_id = ?", u.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.TransactionTypeCredit, entries[0].Type)
	assert.Equal(t, 25.0, entries[0].Amount)
	assert.Equal(t, "Task completion: 1", entries[0].Reason)
	assert.NotEmpty(t, entries[0].ReferenceID)
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	db := openTestDB(t)
	u := createUser(t, db, 0)

	for _, amount := range []float64{0, -10} {
		err := db.Transaction(func(tx *gorm.DB) error {
			return Credit(tx, u.ID, amount, "bad")
		})
		assert.ErrorIs(t, err, ErrAmountNotPositive)
	}

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Zero(t, count, "rejected credits must not log entries")
}

func TestCreditUnknownUser(t *testing.T) {
	db := openTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Credit(tx, 9999, 10, "ghost")
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDebitInsufficientBalanceChangesNothing(t *testing.T) {
	db := openTestDB(t)
	u := createUser(t, db, 30)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Debit(tx, u.ID, 50, "Withdrawal approved", nil)
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	got := reload(t, db, u.ID)
	assert.Equal(t, 30.0, got.Balance)

	var count int64
	db.Model(&models.Transaction{}).Where("user_id = ?", u.ID).Count(&count)
	assert.Zero(t, count)
}

func TestDebitExactBalanceToZero(t *testing.T) {
	db := openTestDB(t)
	u := createUser(t, db, 100)
	wdID := uint(7)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Debit(tx, u.ID, 100, "Withdrawal approved", &wdID)
	})
	require.NoError(t, err)

	got := reload(t, db, u.ID)
	assert.Equal(t, 0.0, got.Balance)
	assert.Equal(t, 100.0, got.TotalWithdrawn)

	var entry models.Transaction
	require.NoError(t, db.Where("user_id = ?", u.ID).First(&entry).Error)
	assert.Equal(t, models.TransactionTypeDebit, entry.Type)
	require.NotNil(t, entry.WithdrawalID)
	assert.Equal(t, wdID, *entry.WithdrawalID)
}

func TestAdjustSigned(t *testing.T) {
	db := openTestDB(t)
	u := createUser(t, db, 50)

	require.NoError(t, Adjust(db, u.ID, 20, "Admin adjustment"))
	assert.Equal(t, 70.0, reload(t, db, u.ID).Balance)

	require.NoError(t, Adjust(db, u.ID, -30, "Admin adjustment"))
	assert.Equal(t, 40.0, reload(t, db, u.ID).Balance)

	err := Adjust(db, u.ID, -100, "Admin adjustment")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, 40.0, reload(t, db, u.ID).Balance)

	assert.ErrorIs(t, Adjust(db, u.ID, 0, "noop"), ErrAmountNotPositive)
}

func TestSignupBonusPaidOnce(t *testing.T) {
	db := openTestDB(t)
	referrer := createUser(t, db, 0)
	referred := createUser(t, db, 1)
	referred.ReferredBy = &referrer.ID
	require.NoError(t, db.Save(referred).Error)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return SignupBonus(tx, referred.ID, referrer.ID)
	}))

	gotReferred := reload(t, db, referred.ID)
	assert.Equal(t, 6.0, gotReferred.Balance) // 1 starting + 5 bonus
	assert.True(t, gotReferred.HasReceivedSignupBonus)

	gotReferrer := reload(t, db, referrer.ID)
	assert.Equal(t, 0.0, gotReferrer.Balance, "referrer earns nothing at signup")
	assert.Equal(t, 1, gotReferrer.ReferralCount)

	// replay is a no-op
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return SignupBonus(tx, referred.ID, referrer.ID)
	}))
	assert.Equal(t, 6.0, reload(t, db, referred.ID).Balance)
	assert.Equal(t, 1, reload(t, db, referrer.ID).ReferralCount)
}

func TestFirstTaskBonusExactlyOnce(t *testing.T) {
	db := openTestDB(t)
	referrer := createUser(t, db, 0)
	referred := createUser(t, db, 1)
	referred.ReferredBy = &referrer.ID
	require.NoError(t, db.Save(referred).Error)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		u := reload(t, db, referred.ID)
		return FirstTaskBonus(tx, &u)
	}))

	gotReferrer := reload(t, db, referrer.ID)
	assert.Equal(t, 10.0, gotReferrer.Balance)
	assert.Equal(t, 10.0, gotReferrer.ReferralEarnings)
	assert.True(t, reload(t, db, referred.ID).HasReceivedFirstTaskBonus)

	// flag blocks a second payout
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		u := reload(t, db, referred.ID)
		return FirstTaskBonus(tx, &u)
	}))
	assert.Equal(t, 10.0, reload(t, db, referrer.ID).Balance)
}

func TestFirstTaskBonusSkipsUnreferredUser(t *testing.T) {
	db := openTestDB(t)
	u := createUser(t, db, 0)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		got := reload(t, db, u.ID)
		return FirstTaskBonus(tx, &got)
	}))

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Zero(t, count)
	assert.False(t, reload(t, db, u.ID).HasReceivedFirstTaskBonus)
}

func TestBulkBonusCreditsActiveUsersOnly(t *testing.T) {
	db := openTestDB(t)
	a := createUser(t, db, 0)
	b := createUser(t, db, 1)
	suspended := createUser(t, db, 2)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", suspended.ID).
		UpdateColumn("status", "Suspended").Error)

	result, err := BulkBonus(db, 15, "Bulk bonus from admin")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Credited)
	assert.Zero(t, result.Failed)

	assert.Equal(t, 15.0, reload(t, db, a.ID).Balance)
	assert.Equal(t, 16.0, reload(t, db, b.ID).Balance)
	assert.Equal(t, 2.0, reload(t, db, suspended.ID).Balance, "suspended users are skipped")

	var count int64
	db.Model(&models.Transaction{}).Where("reason = ?", "Bulk bonus from admin").Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestBulkBonusRejectsNonPositive(t *testing.T) {
	db := openTestDB(t)
	_, err := BulkBonus(db, 0, "nope")
	assert.ErrorIs(t, err, ErrAmountNotPositive)
}
