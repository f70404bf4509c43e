package users

import (
	"net/http"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"
)

// GET /api/users/me
func GetProfileHandler(w http.ResponseWriter, r *http.Request) {
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

	setting, _ := models.GetSetting(db)

	data := map[string]interface{}{
		"user": user,
	}
	if setting != nil {
		data["application"] = map[string]interface{}{
			"min_withdraw": setting.MinWithdraw,
			"max_withdraw": setting.MaxWithdraw,
			"maintenance":  setting.Maintenance,
			"link_support": setting.LinkSupport,
		}
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: data})
}

// GET /api/users/dashboard
func GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
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

	var pendingWithdrawals int64
	db.Model(&models.Withdrawal{}).Where("user_id = ? AND status = ?", uid, models.WithdrawalStatusPending).Count(&pendingWithdrawals)

	var recent []models.Transaction
	db.Where("user_id = ?", uid).Order("id DESC").Limit(5).Find(&recent)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"balance":             user.Balance,
			"total_earned":        user.TotalEarned,
			"total_withdrawn":     user.TotalWithdrawn,
			"pending_tasks":       user.PendingTasks,
			"completed_tasks":     user.CompletedTasks,
			"rejected_tasks":      user.RejectedTasks,
			"referral_count":      user.ReferralCount,
			"referral_earnings":   user.ReferralEarnings,
			"pending_withdrawals": pendingWithdrawals,
			"recent_transactions": recent,
		},
	})
}
