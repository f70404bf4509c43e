package ledger

import (
	"log"

	"github.com/royal450/DaillyEarners2/models"

	"gorm.io/gorm"
)

// BulkBonusResult is the per-item accounting of a bulk credit run.
type BulkBonusResult struct {
	Credited  int    `json:"credited"`
	Failed    int    `json:"failed"`
	FailedIDs []uint `json:"failed_ids,omitempty"`
}

// BulkBonus credits amount to every active user, one independent transaction
// per user. There is deliberately no atomicity across users: a failure for
// one user is recorded in the result and the run continues.
func BulkBonus(db *gorm.DB, amount float64, reason string) (*BulkBonusResult, error) {
	if amount <= 0 {
		return nil, ErrAmountNotPositive
	}

	var userIDs []uint
	if err := db.Model(&models.User{}).Where("status = ?", "Active").Pluck("id", &userIDs).Error; err != nil {
		return nil, err
	}

	result := &BulkBonusResult{FailedIDs: make([]uint, 0)}
	for _, uid := range userIDs {
		err := db.Transaction(func(tx *gorm.DB) error {
			return Credit(tx, uid, amount, reason)
		})
		if err != nil {
			log.Printf("[ledger] bulk bonus failed for user %d: %v", uid, err)
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, uid)
			continue
		}
		result.Credited++
	}
	return result, nil
}
