package review

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/royal450/DaillyEarners2/ledger"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"

	"gorm.io/gorm"
)

var (
	ErrBelowMinimum     = errors.New("amount is below the minimum withdrawal")
	ErrAboveMaximum     = errors.New("amount is above the maximum withdrawal")
	ErrMissingUpiID     = errors.New("UPI ID is required")
	ErrMissingBankField = errors.New("account number, IFSC code and account holder name are required")
	ErrInvalidMethod    = errors.New("method must be UPI or BANK")
)

// WithdrawalRequest carries the user-supplied fields of a withdrawal.
type WithdrawalRequest struct {
	Amount        float64
	Method        string
	UpiID         string
	AccountNumber string
	IfscCode      string
	AccountName   string
}

// CreateWithdrawal validates and records a withdrawal request. No money moves
// here: the record is created pending and the debit happens only when an
// admin approves it. Validation failures create no record at all.
func CreateWithdrawal(db *gorm.DB, userID uint, req WithdrawalRequest) (*models.Withdrawal, error) {
	setting, err := models.GetSetting(db)
	if err != nil {
		return nil, err
	}
	if req.Amount < setting.MinWithdraw {
		return nil, fmt.Errorf("%w: minimum is %.2f", ErrBelowMinimum, setting.MinWithdraw)
	}
	if setting.MaxWithdraw > 0 && req.Amount > setting.MaxWithdraw {
		return nil, fmt.Errorf("%w: maximum is %.2f", ErrAboveMaximum, setting.MaxWithdraw)
	}

	wd := models.Withdrawal{
		UserID:      userID,
		Amount:      utils.Round2(req.Amount),
		Method:      req.Method,
		ReferenceID: utils.GenerateReferenceID(userID),
		Status:      models.WithdrawalStatusPending,
	}
	switch req.Method {
	case models.WithdrawalMethodUPI:
		upi := strings.TrimSpace(req.UpiID)
		if upi == "" {
			return nil, ErrMissingUpiID
		}
		wd.UpiID = &upi
	case models.WithdrawalMethodBank:
		number := strings.TrimSpace(req.AccountNumber)
		ifsc := strings.TrimSpace(req.IfscCode)
		name := strings.TrimSpace(req.AccountName)
		if number == "" || ifsc == "" || name == "" {
			return nil, ErrMissingBankField
		}
		wd.AccountNumber = &number
		wd.IfscCode = &ifsc
		wd.AccountName = &name
	default:
		return nil, ErrInvalidMethod
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Balance check under row lock; the request is refused up front
		// rather than left to fail at approval time.
		var user models.User
		if err := ledger.LockForUpdate(tx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if user.Balance < req.Amount {
			return fmt.Errorf("%w: balance %.2f, requested %.2f", ledger.ErrInsufficientBalance, user.Balance, req.Amount)
		}
		return tx.Create(&wd).Error
	})
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

// ApproveWithdrawal makes the pending -> approved transition and debits the
// user. The balance is re-checked at approval time: if it no longer covers
// the amount the approval fails with ErrInsufficientBalance and nothing
// changes, for the admin to resolve.
func ApproveWithdrawal(db *gorm.DB, withdrawalID uint, adminID int64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var wd models.Withdrawal
		if err := ledger.LockForUpdate(tx).First(&wd, withdrawalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if wd.Status != models.WithdrawalStatusPending {
			return ErrAlreadyReviewed
		}

		if err := ledger.Debit(tx, wd.UserID, wd.Amount, "Withdrawal approved", &wd.ID); err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(&models.Withdrawal{}).Where("id = ?", wd.ID).Updates(map[string]interface{}{
			"status":       models.WithdrawalStatusApproved,
			"processed_at": now,
			"approved_by":  adminID,
		}).Error
	})
}

// RejectWithdrawal makes the pending -> rejected transition. Requires a
// non-empty reason; the balance is untouched (nothing was debited at
// creation time) and an info ledger entry records the rejection.
func RejectWithdrawal(db *gorm.DB, withdrawalID uint, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var wd models.Withdrawal
		if err := ledger.LockForUpdate(tx).First(&wd, withdrawalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if wd.Status != models.WithdrawalStatusPending {
			return ErrAlreadyReviewed
		}

		now := time.Now()
		if err := tx.Model(&models.Withdrawal{}).Where("id = ?", wd.ID).Updates(map[string]interface{}{
			"status":       models.WithdrawalStatusRejected,
			"admin_reason": reason,
			"processed_at": now,
		}).Error; err != nil {
			return err
		}

		return ledger.Info(tx, wd.UserID, fmt.Sprintf("Withdrawal rejected: %s", reason), &wd.ID)
	})
}
