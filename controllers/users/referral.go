package users

import (
	"net/http"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"
)

// GET /api/referrals
func GetReferralsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	var user models.User
	if err := db.First(&user, uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	var referred []models.User
	if err := db.Where("referred_by = ?", uid).Order("id DESC").Find(&referred).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	members := make([]map[string]interface{}, 0, len(referred))
	for _, m := range referred {
		members = append(members, map[string]interface{}{
			"name":            m.Name,
			"joined_at":       m.CreatedAt,
			"completed_tasks": m.CompletedTasks,
			// first task bonus already paid out for this member
			"bonus_earned": m.HasReceivedFirstTaskBonus,
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"referral_code":     user.ReferralCode,
			"referral_count":    user.ReferralCount,
			"referral_earnings": user.ReferralEarnings,
			"members":           members,
		},
	})
}
