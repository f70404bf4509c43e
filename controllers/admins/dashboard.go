package admins

import (
	"net/http"
	"time"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"
)

type TransactionDetail struct {
	UserName  string    `json:"user_name"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

type DashboardStats struct {
	TotalUsers         int64               `json:"total_users"`
	ActiveUsers        int64               `json:"active_users"`
	TotalTasks         int64               `json:"total_tasks"`
	ActiveTasks        int64               `json:"active_tasks"`
	PendingSubmissions int64               `json:"pending_submissions"`
	PendingWithdrawals int64               `json:"pending_withdrawals"`
	TotalBalance       float64             `json:"total_balance"`
	TotalPaidOut       float64             `json:"total_paid_out"`
	LastTransactions   []TransactionDetail `json:"last_transactions"`
}

// GET /api/admin/dashboard
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats
	db := database.DB

	// keep empty arrays in JSON instead of null
	stats.LastTransactions = make([]TransactionDetail, 0)

	db.Model(&models.User{}).Count(&stats.TotalUsers)
	db.Model(&models.User{}).Where("status = ?", "Active").Count(&stats.ActiveUsers)
	db.Model(&models.Task{}).Count(&stats.TotalTasks)
	db.Model(&models.Task{}).Where("status = ?", models.TaskStatusActive).Count(&stats.ActiveTasks)
	db.Model(&models.Submission{}).Where("status = ?", models.SubmissionStatusPending).Count(&stats.PendingSubmissions)
	db.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalStatusPending).Count(&stats.PendingWithdrawals)

	db.Model(&models.User{}).Select("COALESCE(SUM(balance),0)").Scan(&stats.TotalBalance)
	db.Model(&models.Withdrawal{}).Where("status = ?", models.WithdrawalStatusApproved).
		Select("COALESCE(SUM(amount),0)").Scan(&stats.TotalPaidOut)

	rows, err := db.Model(&models.Transaction{}).
		Select("users.name, transactions.amount, transactions.type, transactions.reason, transactions.created_at").
		Joins("JOIN users ON users.id = transactions.user_id").
		Order("transactions.id DESC").
		Limit(10).
		Rows()
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var d TransactionDetail
			if scanErr := rows.Scan(&d.UserName, &d.Amount, &d.Type, &d.Reason, &d.CreatedAt); scanErr == nil {
				stats.LastTransactions = append(stats.LastTransactions, d)
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: stats})
}
