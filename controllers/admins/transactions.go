package admins

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"

	"gorm.io/gorm"
)

// GET /api/admin/transactions
func GetTransactions(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	txType := strings.TrimSpace(r.URL.Query().Get("type"))
	userID, _ := strconv.ParseUint(r.URL.Query().Get("user_id"), 10, 64)
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 25
	}

	applyFilters := func(q *gorm.DB) *gorm.DB {
		if txType != "" {
			q = q.Where("transactions.type = ?", txType)
		}
		if userID > 0 {
			q = q.Where("transactions.user_id = ?", uint(userID))
		}
		if search != "" {
			q = q.Where("transactions.reference_id LIKE ? OR transactions.reason LIKE ?", "%"+search+"%", "%"+search+"%")
		}
		return q
	}

	var totalRows int64
	if err := applyFilters(db.Model(&models.Transaction{})).Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	type transactionRow struct {
		models.Transaction
		UserName string `json:"user_name"`
	}
	var rows []transactionRow
	err := applyFilters(db.Model(&models.Transaction{})).
		Select("transactions.*, users.name AS user_name").
		Joins("JOIN users ON users.id = transactions.user_id").
		Order("transactions.id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"transactions": rows,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
			},
		},
	})
}
