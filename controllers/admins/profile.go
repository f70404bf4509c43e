package admins

import (
	"net/http"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/middleware"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"
)

// GET /api/admin/profile
func GetAdminProfile(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var admin models.Admin
	if err := database.DB.First(&admin, adminID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Admin not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: admin})
}

type AdminPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,pwdmin"`
}

// PUT /api/admin/password
func UpdateAdminPassword(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var req AdminPasswordRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var admin models.Admin
	if err := database.DB.First(&admin, adminID).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Admin not found"})
		return
	}

	if !admin.ValidatePassword(req.CurrentPassword) {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Current password is incorrect"})
		return
	}

	admin.Password = req.NewPassword
	if err := admin.HashPassword(); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := database.DB.Model(&models.Admin{}).Where("id = ?", adminID).UpdateColumn("password", admin.Password).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Password updated"})
}
