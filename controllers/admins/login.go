package admins

import (
	"encoding/json"
	"net/http"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Invalid JSON body",
		})
		return
	}

	admin, err := models.GetAdminByUsername(database.DB, req.Username)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Incorrect username or password",
		})
		return
	}

	if !admin.ValidatePassword(req.Password) {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
			Success: false,
			Message: "Incorrect username or password",
		})
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{
			Success: false,
			Message: "Failed to create token",
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"admin": admin,
		},
	})
}
