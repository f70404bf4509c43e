// Package ledger owns every balance-affecting operation. Each credit or debit
// moves the balance with an atomic SQL expression and appends exactly one row
// to the transactions table; plain read-then-write on balances is not allowed
// anywhere in the codebase.
package ledger

import (
	"errors"
	"fmt"

	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAmountNotPositive   = errors.New("amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUserNotFound        = errors.New("user not found")
)

// LockForUpdate adds a FOR UPDATE row lock on dialects that support it.
// SQLite serializes writers on its own and rejects the clause.
func LockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Credit adds amount to the user's balance and total earnings inside the
// caller's transaction, and appends a credit ledger entry.
func Credit(tx *gorm.DB, userID uint, amount float64, reason string) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}
	res := tx.Model(&models.User{}).Where("id = ?", userID).UpdateColumns(map[string]interface{}{
		"balance":      gorm.Expr("balance + ?", amount),
		"total_earned": gorm.Expr("total_earned + ?", amount),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return appendEntry(tx, userID, models.TransactionTypeCredit, amount, reason, nil)
}

// Debit removes amount from the user's balance. The user row is locked for
// the duration of the check so a concurrent debit cannot drive the balance
// negative. When withdrawalID is non-nil the entry is linked to the
// withdrawal and total_withdrawn moves with it.
func Debit(tx *gorm.DB, userID uint, amount float64, reason string, withdrawalID *uint) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}
	var user models.User
	if err := LockForUpdate(tx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.Balance < amount {
		return fmt.Errorf("%w: balance %.2f, requested %.2f", ErrInsufficientBalance, user.Balance, amount)
	}
	cols := map[string]interface{}{
		"balance": gorm.Expr("balance - ?", amount),
	}
	if withdrawalID != nil {
		cols["total_withdrawn"] = gorm.Expr("total_withdrawn + ?", amount)
	}
	if err := tx.Model(&models.User{}).Where("id = ?", userID).UpdateColumns(cols).Error; err != nil {
		return err
	}
	return appendEntry(tx, userID, models.TransactionTypeDebit, amount, reason, withdrawalID)
}

// Info appends a zero-amount informational ledger entry. Used to record
// rejections without touching the balance.
func Info(tx *gorm.DB, userID uint, reason string, withdrawalID *uint) error {
	return appendEntry(tx, userID, models.TransactionTypeInfo, 0, reason, withdrawalID)
}

// Adjust applies a signed admin balance adjustment. Positive amounts credit,
// negative amounts debit with the usual balance check.
func Adjust(db *gorm.DB, userID uint, amount float64, reason string) error {
	if amount == 0 {
		return ErrAmountNotPositive
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if amount > 0 {
			return Credit(tx, userID, amount, reason)
		}
		return Debit(tx, userID, -amount, reason, nil)
	})
}

func appendEntry(tx *gorm.DB, userID uint, entryType string, amount float64, reason string, withdrawalID *uint) error {
	entry := models.Transaction{
		UserID:       userID,
		Type:         entryType,
		Amount:       amount,
		Reason:       reason,
		ReferenceID:  utils.GenerateReferenceID(userID),
		WithdrawalID: withdrawalID,
	}
	return tx.Create(&entry).Error
}
