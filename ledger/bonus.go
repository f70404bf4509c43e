package ledger

import (
	"fmt"
	"log"

	"github.com/royal450/DaillyEarners2/models"

	"gorm.io/gorm"
)

// SignupBonus credits the signup bonus to a newly registered user who joined
// with a valid referral code, and bumps the referrer's referral count. The
// has_received_signup_bonus flag is set in the same transaction, so the bonus
// is paid at most once per user.
func SignupBonus(tx *gorm.DB, userID uint, referrerID uint) error {
	setting, err := models.GetSetting(tx)
	if err != nil {
		return err
	}

	var user models.User
	if err := LockForUpdate(tx).First(&user, userID).Error; err != nil {
		return err
	}
	if user.HasReceivedSignupBonus {
		return nil
	}

	if setting.SignupBonus > 0 {
		if err := Credit(tx, userID, setting.SignupBonus, "Signup referral bonus"); err != nil {
			return err
		}
	}
	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("has_received_signup_bonus", true).Error; err != nil {
		return err
	}

	// The referrer earns nothing at signup, only the headcount moves.
	return tx.Model(&models.User{}).Where("id = ?", referrerID).
		UpdateColumn("referral_count", gorm.Expr("referral_count + 1")).Error
}

// FirstTaskBonus pays the referrer's one-time bonus when the referred user's
// first task is approved. The caller must hold a row lock on the referred
// user (review.ApproveSubmission does); the flag check under that lock is
// what makes the bonus exactly-once under racing approvals.
func FirstTaskBonus(tx *gorm.DB, referred *models.User) error {
	if referred.ReferredBy == nil || referred.HasReceivedFirstTaskBonus {
		return nil
	}
	if referred.CompletedTasks != 0 {
		// Not the 0 -> 1 transition.
		return nil
	}

	setting, err := models.GetSetting(tx)
	if err != nil {
		return err
	}
	referrerID := *referred.ReferredBy

	if setting.FirstTaskBonus > 0 {
		reason := fmt.Sprintf("Referral first task bonus: user %d", referred.ID)
		if err := Credit(tx, referrerID, setting.FirstTaskBonus, reason); err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", referrerID).
			UpdateColumn("referral_earnings", gorm.Expr("referral_earnings + ?", setting.FirstTaskBonus)).Error; err != nil {
			return err
		}
	}

	if err := tx.Model(&models.User{}).Where("id = ?", referred.ID).
		UpdateColumn("has_received_first_task_bonus", true).Error; err != nil {
		return err
	}
	log.Printf("[ledger] first task bonus paid: referred=%d referrer=%d amount=%.2f", referred.ID, referrerID, setting.FirstTaskBonus)
	return nil
}
