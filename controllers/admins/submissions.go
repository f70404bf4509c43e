package admins

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/notifications"
	"github.com/royal450/DaillyEarners2/review"
	"github.com/royal450/DaillyEarners2/utils"

	"github.com/gorilla/mux"
)

// GET /api/admin/submissions
func GetSubmissions(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	status := r.URL.Query().Get("status")
	if status == "" {
		status = models.SubmissionStatusPending
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	var totalRows int64
	if err := db.Model(&models.Submission{}).Where("status = ?", status).Count(&totalRows).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	type submissionRow struct {
		models.Submission
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}
	var rows []submissionRow
	err := db.Model(&models.Submission{}).
		Select("submissions.*, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = submissions.user_id").
		Where("submissions.status = ?", status).
		Order("submissions.id ASC").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	// attach short-lived proof links for the reviewer
	resp := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		item := map[string]interface{}{
			"submission": row.Submission,
			"user_name":  row.UserName,
			"user_email": row.UserEmail,
		}
		if row.ProofURL != nil {
			if link, err := utils.GenerateSignedURL(*row.ProofURL, 3600); err == nil {
				item["proof_link"] = link
			}
		}
		resp = append(resp, item)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"submissions": resp,
			"pagination": map[string]interface{}{
				"page":        page,
				"limit":       limit,
				"total_rows":  totalRows,
				"total_pages": int(math.Ceil(float64(totalRows) / float64(limit))),
			},
		},
	})
}

// PUT /api/admin/submissions/{id}/approve
func ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid submission id"})
		return
	}

	if err := review.ApproveSubmission(database.DB, uint(id)); err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Submission not found"})
		case errors.Is(err, review.ErrAlreadyReviewed):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Submission has already been reviewed"})
		default:
			log.Printf("[admin] approve submission %d failed: %v", id, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	notifications.AdminAction("submission approved", uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Submission approved, reward credited"})
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// PUT /api/admin/submissions/{id}/reject
func RejectSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid submission id"})
		return
	}
	var req RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	if err := review.RejectSubmission(database.DB, uint(id), req.Reason); err != nil {
		switch {
		case errors.Is(err, review.ErrReasonRequired):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "A rejection reason is required"})
		case errors.Is(err, review.ErrNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Submission not found"})
		case errors.Is(err, review.ErrAlreadyReviewed):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Submission has already been reviewed"})
		default:
			log.Printf("[admin] reject submission %d failed: %v", id, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	notifications.AdminAction("submission rejected", uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Submission rejected"})
}
