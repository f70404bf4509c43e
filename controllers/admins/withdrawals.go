package admins

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/ledger"
	"github.com/royal450/DaillyEarners2/middleware"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/notifications"
	"github.com/royal450/DaillyEarners2/review"
	"github.com/royal450/DaillyEarners2/utils"

	"github.com/gorilla/mux"
)

// GET /api/admin/withdrawals
func GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	status := r.URL.Query().Get("status")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	countQuery := db.Model(&models.Withdrawal{})
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	type withdrawalRow struct {
		models.Withdrawal
		UserName  string  `json:"user_name"`
		UserEmail string  `json:"user_email"`
		Balance   float64 `json:"user_balance"`
	}
	var rows []withdrawalRow
	q := db.Model(&models.Withdrawal{}).
		Select("withdrawals.*, users.name AS user_name, users.email AS user_email, users.balance AS balance").
		Joins("JOIN users ON users.id = withdrawals.user_id")
	if status != "" {
		q = q.Where("withdrawals.status = ?", status)
	}
	if err := q.Order("withdrawals.id ASC").Offset((page - 1) * limit).Limit(limit).Scan(&rows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"withdrawals": rows,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
			},
		},
	})
}

// PUT /api/admin/withdrawals/{id}/approve debits the user and marks the
// withdrawal paid, in one transaction.
func ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid withdrawal id"})
		return
	}
	adminID, _ := middleware.GetAdminID(r)

	if err := review.ApproveWithdrawal(database.DB, uint(id), adminID); err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Withdrawal not found"})
		case errors.Is(err, review.ErrAlreadyReviewed):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Withdrawal has already been processed"})
		case errors.Is(err, ledger.ErrInsufficientBalance):
			// balance dropped between the request and the approval
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "User balance is no longer sufficient"})
		default:
			log.Printf("[admin] approve withdrawal %d failed: %v", id, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	notifications.AdminAction("withdrawal approved", uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdrawal approved, balance debited"})
}

// PUT /api/admin/withdrawals/{id}/reject
func RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid withdrawal id"})
		return
	}
	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	if err := review.RejectWithdrawal(database.DB, uint(id), req.Reason); err != nil {
		switch {
		case errors.Is(err, review.ErrReasonRequired):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "A rejection reason is required"})
		case errors.Is(err, review.ErrNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Withdrawal not found"})
		case errors.Is(err, review.ErrAlreadyReviewed):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Withdrawal has already been processed"})
		default:
			log.Printf("[admin] reject withdrawal %d failed: %v", id, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	notifications.AdminAction("withdrawal rejected", uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdrawal rejected, no balance was debited"})
}
