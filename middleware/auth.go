package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/royal450/DaillyEarners2/utils"
)

// AuthMiddleware authenticates user requests via the Bearer access token.
// Admin tokens are rejected here; admin routes have their own middleware.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		_, claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
					Success: false,
					Message: "Session expired, please login again",
				})
				return
			}
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Invalid token",
			})
			return
		}

		userID := utils.ClaimUserID(claims)
		if userID == 0 {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Invalid token",
			})
			return
		}

		role, _ := claims["role"].(string)
		if role == "admin" {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Access denied",
			})
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
		ctx = context.WithValue(ctx, utils.UserRoleKey, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
