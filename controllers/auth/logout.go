package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"
)

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutHandler revokes the given refresh token and, when an Authorization
// header is present, blacklists the access token's jti for its remaining TTL.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.RefreshToken == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "refresh_token is required"})
		return
	}

	authz := r.Header.Get("Authorization")
	if authz != "" && strings.HasPrefix(authz, "Bearer ") {
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		if _, claims, err := utils.ValidateAccessToken(tokenStr); err == nil && claims != nil {
			if jti, ok := claims["jti"].(string); ok && jti != "" {
				var ttl time.Duration
				if expRaw, ok := claims["exp"].(float64); ok {
					ttl = time.Until(time.Unix(int64(expRaw), 0))
				}
				if ttl < 0 {
					ttl = 0
				}
				_ = utils.RevokeJTI(jti, ttl)
			}
		}
		// a bad access token does not stop refresh-token revocation
	}

	if database.DB == nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	// Unknown tokens still answer 200 to avoid token enumeration.
	_ = database.DB.Model(&models.RefreshToken{}).Where("id = ?", req.RefreshToken).Update("revoked", true).Error
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
