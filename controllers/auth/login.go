package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/middleware"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwdmin"`
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var appSetting models.Setting
	if err := database.DB.Model(&models.Setting{}).Select("maintenance, name").Take(&appSetting).Error; err == nil && appSetting.Maintenance {
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{
			Success: false,
			Message: "The application is under maintenance. Please try again later.",
			Data:    map[string]interface{}{"maintenance": true},
		})
		return
	}

	db := database.DB

	var user models.User
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Incorrect email or password"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if strings.ToLower(user.Status) != "active" {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Your account is not active, please contact support"})
		return
	}

	if locked, retry := middleware.IsAccountLocked(user.ID); locked {
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{Success: false, Message: "Too many login attempts. Please try again later.", Data: map[string]interface{}{"retry_after_seconds": int(retry.Seconds())}})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		middleware.RecordFailedLogin(user.ID)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Incorrect email or password"})
		return
	}

	middleware.ResetFailedLogin(user.ID)

	accessToken, err := utils.GenerateAccessToken(user.ID, "user")
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Login failed"})
		return
	}
	refreshJTI, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store refresh token"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": time.Now().Add(15 * time.Minute).UTC().Format(time.RFC3339),
			"refresh_token": refreshJTI,
			"user":          user,
		},
	})
}
