package admins

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/ledger"
	"github.com/royal450/DaillyEarners2/middleware"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/notifications"
	"github.com/royal450/DaillyEarners2/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /api/admin/users
func GetUsers(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	countQuery := db.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		countQuery = countQuery.Where("name LIKE ? OR email LIKE ? OR referral_code LIKE ?", like, like, like)
	}
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	q := db.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR email LIKE ? OR referral_code LIKE ?", like, like, like)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var users []models.User
	if err := q.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"users": users,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
			},
		},
	})
}

// GET /api/admin/users/{id}
func GetUserDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}
	db := database.DB

	var user models.User
	if err := db.First(&user, uint(id)).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	var transactions []models.Transaction
	db.Where("user_id = ?", user.ID).Order("id DESC").Limit(20).Find(&transactions)
	var submissions []models.Submission
	db.Where("user_id = ?", user.ID).Order("id DESC").Limit(20).Find(&submissions)
	var withdrawals []models.Withdrawal
	db.Where("user_id = ?", user.ID).Order("id DESC").Limit(20).Find(&withdrawals)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"user":         user,
			"transactions": transactions,
			"submissions":  submissions,
			"withdrawals":  withdrawals,
		},
	})
}

type UpdateUserStatusRequest struct {
	Status   string `json:"status"`
	Verified *bool  `json:"verified,omitempty"`
}

// PUT /api/admin/users/{id}/status
func UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}
	var req UpdateUserStatusRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	updates := map[string]interface{}{}
	if req.Status != "" {
		switch strings.ToLower(req.Status) {
		case "active", "suspended", "banned":
			updates["status"] = strings.ToUpper(req.Status[:1]) + strings.ToLower(req.Status[1:])
		default:
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Status must be Active, Suspended or Banned"})
			return
		}
	}
	if req.Verified != nil {
		updates["verified"] = *req.Verified
	}
	if len(updates) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Nothing to update"})
		return
	}

	res := database.DB.Model(&models.User{}).Where("id = ?", uint(id)).Updates(updates)
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	notifications.AdminAction("user status updated", uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "User updated"})
}

type AdjustBalanceRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// PUT /api/admin/users/{id}/balance applies a signed manual adjustment
// through the ledger, so it shows up in the user's transaction history.
func AdjustUserBalance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}
	var req AdjustBalanceRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Amount == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Amount must not be zero"})
		return
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "Admin adjustment"
	}

	if err := ledger.Adjust(database.DB, uint(id), req.Amount, reason); err != nil {
		switch {
		case errors.Is(err, ledger.ErrUserNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		case errors.Is(err, ledger.ErrInsufficientBalance):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient balance for this deduction"})
		default:
			log.Printf("[admin] balance adjust failed for user %d: %v", id, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	notifications.AdminAction("balance adjusted", uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Balance adjusted"})
}

type BulkBonusRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// POST /api/admin/users/bulk-bonus credits every active user independently;
// one failed credit does not stop the rest.
func BulkBonusHandler(w http.ResponseWriter, r *http.Request) {
	var req BulkBonusRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Amount <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Amount must be positive"})
		return
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "Bulk bonus from admin"
	}

	result, err := ledger.BulkBonus(database.DB, req.Amount, reason)
	if err != nil {
		log.Printf("[admin] bulk bonus failed: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Bulk bonus processed",
		Data:    result,
	})
}

// userProofKeys lists the storage object keys of a user's proof screenshots,
// for cleanup after the user row is gone.
func userProofKeys(db *gorm.DB, userID uint) []string {
	var keys []string
	if err := db.Model(&models.Submission{}).
		Where("user_id = ? AND proof_url IS NOT NULL", userID).
		Pluck("proof_url", &keys).Error; err != nil {
		log.Printf("[admin] listing proof objects for user %d failed: %v", userID, err)
	}
	return keys
}

// DELETE /api/admin/users/{id}
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid user id"})
		return
	}
	db := database.DB
	proofKeys := userProofKeys(db, uint(id))

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, uint(id))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		// referred users keep their rows, the linkage is cleared
		return tx.Model(&models.User{}).Where("referred_by = ?", uint(id)).
			UpdateColumn("referred_by", nil).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		log.Printf("[admin] delete user %d failed: %v", id, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Orphaned proof screenshots are removed from object storage in the
	// background; a failed delete is logged, not surfaced.
	if len(proofKeys) > 0 {
		go func(keys []string) {
			for _, key := range keys {
				if err := utils.DeleteFromS3(key); err != nil {
					log.Printf("[admin] proof cleanup %s failed: %v", key, err)
				}
			}
		}(proofKeys)
	}

	notifications.AdminAction("user deleted", uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "User deleted"})
}
