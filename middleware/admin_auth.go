package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"
)

// AdminAuthMiddleware verifies that the request is from an authenticated,
// still-active admin. The admin row is re-read on every request so a
// deactivated admin loses access immediately.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized: No token provided",
			})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		_, claims, err := utils.ValidateAccessToken(tokenString)
		if err != nil {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized: Invalid token",
			})
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Forbidden: Admin access required",
			})
			return
		}

		adminID := utils.ClaimAdminID(claims)

		var admin models.Admin
		if err := database.DB.First(&admin, adminID).Error; err != nil {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized: Admin not found",
			})
			return
		}

		if !admin.IsActive {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Forbidden",
			})
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, admin.ID)
		ctx = context.WithValue(ctx, utils.UserRoleKey, "admin")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID returns the authenticated admin id placed in context above.
func GetAdminID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(utils.UserIDKey).(int64)
	return id, ok
}
