package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/ledger"
	"github.com/royal450/DaillyEarners2/middleware"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,nameok"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone" validate:"required,phone"`
	Password             string `json:"password" validate:"required,pwdmin"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	ReferralCode         string `json:"referral_code"`
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var appSetting models.Setting
	if err := database.DB.Model(&models.Setting{}).Select("closed_register, maintenance, name").Take(&appSetting).Error; err == nil {
		if appSetting.ClosedRegister {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Registration is currently closed. Please try again later.",
				Data:    map[string]interface{}{"closed_register": true},
			})
			return
		}
		if appSetting.Maintenance {
			utils.WriteJSON(w, http.StatusServiceUnavailable, utils.APIResponse{
				Success: false,
				Message: "The application is under maintenance. Please try again later.",
				Data:    map[string]interface{}{"maintenance": true},
			})
			return
		}
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.ReferralCode = strings.ToUpper(strings.TrimSpace(req.ReferralCode))

	db := database.DB

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Email is already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register] DB error checking email: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Referral code is optional, but when present it has to resolve. An
	// invalid code is rejected rather than silently ignored.
	var referredBy *uint
	if req.ReferralCode != "" {
		var refOwner models.User
		if err := db.Where("referral_code = ?", req.ReferralCode).First(&refOwner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid referral code"})
				return
			}
			log.Printf("[register] DB error fetching referral %s: %v", req.ReferralCode, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
		referredBy = &refOwner.ID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	code, err := generateUniqueReferralCode(db, 8)
	if err != nil {
		log.Printf("[register] generateUniqueReferralCode error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	newUser := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     string(hashed),
		ReferralCode: code,
		ReferredBy:   referredBy,
		Status:       "Active",
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		if referredBy != nil {
			return ledger.SignupBonus(tx, newUser.ID, *referredBy)
		}
		return nil
	})
	if err != nil {
		log.Printf("[register] DB error creating user: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Registration failed, please try again"})
		return
	}

	accessToken, err := utils.GenerateAccessToken(newUser.ID, "user")
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create token"})
		return
	}
	refreshJTI, err := utils.GenerateRefreshToken(newUser.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store refresh token"})
		return
	}

	// Re-read so the response carries the post-bonus balance.
	var created models.User
	if err := db.First(&created, newUser.ID).Error; err != nil {
		created = newUser
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registration successful, welcome!",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": time.Now().Add(15 * time.Minute).UTC().Format(time.RFC3339),
			"refresh_token": refreshJTI,
			"user":          created,
		},
	})
}

// generateUniqueReferralCode draws random codes until one is free. The
// alphabet skips 0/O and 1/I so codes survive being read aloud.
func generateUniqueReferralCode(db *gorm.DB, length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	for attempt := 0; attempt < 10; attempt++ {
		b := make([]byte, length)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}
		for i := range b {
			b[i] = alphabet[int(b[i])%len(alphabet)]
		}
		code := string(b)
		var count int64
		if err := db.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique referral code")
}
