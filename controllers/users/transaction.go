package users

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"
)

// GET /api/transactions
func GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	txType := strings.TrimSpace(r.URL.Query().Get("type"))
	searchQuery := strings.TrimSpace(r.URL.Query().Get("search"))

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}

	db := database.DB

	countQuery := db.Model(&models.Transaction{}).Where("user_id = ?", uid)
	if txType != "" {
		countQuery = countQuery.Where("type = ?", txType)
	}
	if searchQuery != "" {
		countQuery = countQuery.Where("reference_id LIKE ? OR reason LIKE ?", "%"+searchQuery+"%", "%"+searchQuery+"%")
	}

	var totalRows int64
	if err := countQuery.Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	offset := (page - 1) * limit
	q := db.Where("user_id = ?", uid)
	if txType != "" {
		q = q.Where("type = ?", txType)
	}
	if searchQuery != "" {
		q = q.Where("reference_id LIKE ? OR reason LIKE ?", "%"+searchQuery+"%", "%"+searchQuery+"%")
	}

	var transactions []models.Transaction
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&transactions).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"transactions": transactions,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
			},
		},
	})
}
