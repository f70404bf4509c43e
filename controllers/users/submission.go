package users

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/notifications"
	"github.com/royal450/DaillyEarners2/review"
	"github.com/royal450/DaillyEarners2/utils"

	"github.com/gorilla/mux"
)

// POST /api/tasks/{id}/submit
// Multipart form with an optional "screenshot" file as proof. The screenshot
// goes to object storage and the submission enters the review queue.
func SubmitTaskHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	taskID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}

	var proofURL *string
	if err := r.ParseMultipartForm(2 << 20); err == nil {
		file, header, ferr := r.FormFile("screenshot")
		if ferr == nil {
			defer file.Close()
			objectName := utils.ProofObjectName(uid, header.Filename)
			if uerr := utils.UploadToS3(objectName, file, header.Size); uerr != nil {
				log.Printf("[submission] proof upload failed for user %d: %v", uid, uerr)
				utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to upload screenshot"})
				return
			}
			proofURL = &objectName
		}
	}

	sub, err := review.CreateSubmission(database.DB, uid, uint(taskID), proofURL)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
		case errors.Is(err, review.ErrTaskInactive):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "This task is no longer active"})
		case errors.Is(err, review.ErrAlreadyCompleted):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "You have already completed this task"})
		case errors.Is(err, review.ErrAlreadyPending):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Your submission for this task is already under review"})
		default:
			log.Printf("[submission] create failed for user %d task %d: %v", uid, taskID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	notifications.TaskSubmitted(uid, sub.TaskTitle, sub.TaskPrice)

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Submission received, awaiting review",
		Data:    sub,
	})
}

// GET /api/submissions
func MySubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	status := r.URL.Query().Get("status")
	q := db.Where("user_id = ?", uid)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var subs []models.Submission
	if err := q.Order("id DESC").Find(&subs).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	// Proof objects live in a private bucket; hand out short-lived URLs.
	type submissionView struct {
		models.Submission
		ProofLink string `json:"proof_link,omitempty"`
	}
	resp := make([]submissionView, 0, len(subs))
	for _, s := range subs {
		view := submissionView{Submission: s}
		if s.ProofURL != nil {
			if link, err := utils.GenerateSignedURL(*s.ProofURL, 3600); err == nil {
				view.ProofLink = link
			}
		}
		resp = append(resp, view)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: resp})
}
