package admins

import (
	"net/http"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/middleware"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"
)

// GET /api/admin/settings
func GetSettings(w http.ResponseWriter, r *http.Request) {
	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: setting})
}

type SettingsRequest struct {
	MinWithdraw    *float64 `json:"min_withdraw,omitempty"`
	MaxWithdraw    *float64 `json:"max_withdraw,omitempty"`
	SignupBonus    *float64 `json:"signup_bonus,omitempty"`
	FirstTaskBonus *float64 `json:"first_task_bonus,omitempty"`
	Maintenance    *bool    `json:"maintenance,omitempty"`
	ClosedRegister *bool    `json:"closed_register,omitempty"`
	LinkSupport    *string  `json:"link_support,omitempty"`
}

// PUT /api/admin/settings updates only the fields present in the body.
func UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	if req.MinWithdraw != nil {
		if *req.MinWithdraw <= 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Minimum withdrawal must be positive"})
			return
		}
		updates["min_withdraw"] = *req.MinWithdraw
	}
	if req.MaxWithdraw != nil {
		updates["max_withdraw"] = *req.MaxWithdraw
	}
	if req.SignupBonus != nil {
		if *req.SignupBonus < 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Signup bonus must not be negative"})
			return
		}
		updates["signup_bonus"] = *req.SignupBonus
	}
	if req.FirstTaskBonus != nil {
		if *req.FirstTaskBonus < 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "First task bonus must not be negative"})
			return
		}
		updates["first_task_bonus"] = *req.FirstTaskBonus
	}
	if req.Maintenance != nil {
		updates["maintenance"] = *req.Maintenance
	}
	if req.ClosedRegister != nil {
		updates["closed_register"] = *req.ClosedRegister
	}
	if req.LinkSupport != nil {
		updates["link_support"] = *req.LinkSupport
	}
	if len(updates) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Nothing to update"})
		return
	}

	setting, err := models.GetSetting(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if err := database.DB.Model(&models.Setting{}).Where("id = ?", setting.ID).Updates(updates).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Settings updated"})
}
