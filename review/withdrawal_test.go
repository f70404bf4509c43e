package review

import (
	"testing"

	"github.com/royal450/DaillyEarners2/ledger"
	"github.com/royal450/DaillyEarners2/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func upiRequest(amount float64) WithdrawalRequest {
	return WithdrawalRequest{
		Amount: amount,
		Method: models.WithdrawalMethodUPI,
		UpiID:  "user@upi",
	}
}

func TestCreateWithdrawal(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 200)

	wd, err := CreateWithdrawal(db, user.ID, upiRequest(100))
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusPending, wd.Status)
	assert.Equal(t, 100.0, wd.Amount)
	assert.NotEmpty(t, wd.ReferenceID)
	require.NotNil(t, wd.UpiID)
	assert.Equal(t, "user@upi", *wd.UpiID)

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 200.0, got.Balance, "nothing is debited until approval")
	assert.Equal(t, 0.0, got.TotalWithdrawn)
}

func TestCreateWithdrawalValidation(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 200)

	cases := []struct {
		name string
		req  WithdrawalRequest
		want error
	}{
		{"BelowMinimum", upiRequest(20), ErrBelowMinimum},
		{"AboveMaximum", upiRequest(20000), ErrAboveMaximum},
		{"MissingUpiID", WithdrawalRequest{Amount: 100, Method: models.WithdrawalMethodUPI}, ErrMissingUpiID},
		{"MissingBankFields", WithdrawalRequest{Amount: 100, Method: models.WithdrawalMethodBank, AccountNumber: "123"}, ErrMissingBankField},
		{"InvalidMethod", WithdrawalRequest{Amount: 100, Method: "PAYPAL", UpiID: "x@upi"}, ErrInvalidMethod},
		{"InsufficientBalance", upiRequest(500), ledger.ErrInsufficientBalance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CreateWithdrawal(db, user.ID, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	var count int64
	db.Model(&models.Withdrawal{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count, "failed validation must not leave records behind")
}

func TestCreateWithdrawalBankMethod(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 500)

	wd, err := CreateWithdrawal(db, user.ID, WithdrawalRequest{
		Amount:        150,
		Method:        models.WithdrawalMethodBank,
		AccountNumber: " 123456789 ",
		IfscCode:      "HDFC0001234",
		AccountName:   "Test User",
	})
	require.NoError(t, err)
	require.NotNil(t, wd.AccountNumber)
	assert.Equal(t, "123456789", *wd.AccountNumber, "fields are trimmed")
	require.NotNil(t, wd.IfscCode)
	require.NotNil(t, wd.AccountName)
	assert.Nil(t, wd.UpiID)
}

func TestApproveWithdrawal(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 200)
	wd, err := CreateWithdrawal(db, user.ID, upiRequest(100))
	require.NoError(t, err)

	require.NoError(t, ApproveWithdrawal(db, wd.ID, 42))

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 100.0, got.Balance)
	assert.Equal(t, 100.0, got.TotalWithdrawn)

	var reviewed models.Withdrawal
	require.NoError(t, db.First(&reviewed, wd.ID).Error)
	assert.Equal(t, models.WithdrawalStatusApproved, reviewed.Status)
	assert.NotNil(t, reviewed.ProcessedAt)
	require.NotNil(t, reviewed.ApprovedBy)
	assert.Equal(t, int64(42), *reviewed.ApprovedBy)

	var entry models.Transaction
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, models.TransactionTypeDebit, entry.Type)
	assert.Equal(t, 100.0, entry.Amount)
	assert.Equal(t, "Withdrawal approved", entry.Reason)
	require.NotNil(t, entry.WithdrawalID)
	assert.Equal(t, wd.ID, *entry.WithdrawalID)
}

func TestApproveWithdrawalTwiceFails(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 200)
	wd, err := CreateWithdrawal(db, user.ID, upiRequest(100))
	require.NoError(t, err)

	require.NoError(t, ApproveWithdrawal(db, wd.ID, 42))
	assert.ErrorIs(t, ApproveWithdrawal(db, wd.ID, 42), ErrAlreadyReviewed)
	assert.Equal(t, 100.0, reloadUser(t, db, user.ID).Balance, "no double debit")
}

func TestApproveWithdrawalAfterBalanceDropped(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 200)
	wd, err := CreateWithdrawal(db, user.ID, upiRequest(150))
	require.NoError(t, err)

	// Balance shrinks between request and approval.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("balance", gorm.Expr("balance - ?", 100)).Error)

	err = ApproveWithdrawal(db, wd.ID, 42)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	var reviewed models.Withdrawal
	require.NoError(t, db.First(&reviewed, wd.ID).Error)
	assert.Equal(t, models.WithdrawalStatusPending, reviewed.Status, "stays pending for the admin to resolve")
	assert.Equal(t, 100.0, reloadUser(t, db, user.ID).Balance)
}

func TestRejectWithdrawal(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, 200)
	wd, err := CreateWithdrawal(db, user.ID, upiRequest(100))
	require.NoError(t, err)

	assert.ErrorIs(t, RejectWithdrawal(db, wd.ID, ""), ErrReasonRequired)

	require.NoError(t, RejectWithdrawal(db, wd.ID, "UPI ID does not resolve"))

	got := reloadUser(t, db, user.ID)
	assert.Equal(t, 200.0, got.Balance)
	assert.Equal(t, 0.0, got.TotalWithdrawn)

	var reviewed models.Withdrawal
	require.NoError(t, db.First(&reviewed, wd.ID).Error)
	assert.Equal(t, models.WithdrawalStatusRejected, reviewed.Status)
	require.NotNil(t, reviewed.AdminReason)
	assert.Equal(t, "UPI ID does not resolve", *reviewed.AdminReason)

	var entry models.Transaction
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&entry).Error)
	assert.Equal(t, models.TransactionTypeInfo, entry.Type)
	assert.Equal(t, "Withdrawal rejected: UPI ID does not resolve", entry.Reason)

	assert.ErrorIs(t, ApproveWithdrawal(db, wd.ID, 42), ErrAlreadyReviewed)
}
