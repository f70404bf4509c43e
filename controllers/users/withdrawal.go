package users

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
	"github.com/royal450/DaillyEarners2/review"
	"github.com/royal450/DaillyEarners2/utils"
)

type WithdrawalRequestBody struct {
	Amount        float64 `json:"amount"`
	Method        string  `json:"method" validate:"required"`
	UpiID         string  `json:"upi_id"`
	AccountNumber string  `json:"account_number"`
	IfscCode      string  `json:"ifsc_code"`
	AccountName   string  `json:"account_name"`
}

// POST /api/withdrawals
func CreateWithdrawalHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var req WithdrawalRequestBody
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	wd, err := review.CreateWithdrawal(database.DB, uid, review.WithdrawalRequest{
		Amount:        req.Amount,
		Method:        req.Method,
		UpiID:         req.UpiID,
		AccountNumber: req.AccountNumber,
		IfscCode:      req.IfscCode,
		AccountName:   req.AccountName,
	})
	if err != nil {
		switch {
		case errors.Is(err, review.ErrBelowMinimum), errors.Is(err, review.ErrAboveMaximum),
			errors.Is(err, review.ErrMissingUpiID), errors.Is(err, review.ErrMissingBankField),
			errors.Is(err, review.ErrInvalidMethod):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: capitalizeError(err)})
		case errors.Is(err, ledger.ErrInsufficientBalance):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient balance"})
		case errors.Is(err, ledger.ErrUserNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		default:
			log.Printf("[withdrawal] create failed for user %d: %v", uid, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	notifications.WithdrawalRequested(uid, wd.Amount, wd.Method)

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Withdrawal request submitted, awaiting approval",
		Data:    wd,
	})
}

// GET /api/withdrawals
func MyWithdrawalsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	status := r.URL.Query().Get("status")

	countQuery := db.Model(&models.Withdrawal{}).Where("user_id = ?", uid)
	if status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	q := db.Where("user_id = ?", uid)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var withdrawals []models.Withdrawal
	if err := q.Order("id DESC").Offset((page - 1) * limit).Limit(limit).Find(&withdrawals).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"withdrawals": withdrawals,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
			},
		},
	})
}

// capitalizeError upper-cases the first letter so sentinel errors read as
// user-facing messages.
func capitalizeError(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
