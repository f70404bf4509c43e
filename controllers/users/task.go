package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GET /api/tasks
func TaskListHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	var tasks []models.Task
	if err := db.Where("status = ?", models.TaskStatusActive).Order("id DESC").Find(&tasks).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	// Per-user state: which tasks are completed, pending or liked.
	completed := map[uint]bool{}
	var completions []models.TaskCompletion
	db.Where("user_id = ?", uid).Find(&completions)
	for _, c := range completions {
		completed[c.TaskID] = true
	}

	pending := map[uint]bool{}
	var pendingSubs []models.Submission
	db.Where("user_id = ? AND status = ?", uid, models.SubmissionStatusPending).Find(&pendingSubs)
	for _, s := range pendingSubs {
		pending[s.TaskID] = true
	}

	liked := map[uint]bool{}
	var likes []models.TaskLike
	db.Where("user_id = ?", uid).Find(&likes)
	for _, l := range likes {
		liked[l.TaskID] = true
	}

	resp := make([]map[string]interface{}, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, map[string]interface{}{
			"id":          t.ID,
			"title":       t.Title,
			"description": t.Description,
			"price":       t.Price,
			"url":         t.URL,
			"time_limit":  t.TimeLimit,
			"likes":       t.Likes,
			"completed":   completed[t.ID],
			"pending":     pending[t.ID],
			"liked":       liked[t.ID],
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: resp})
}

// GET /api/tasks/{id}
func TaskDetailHandler(w http.ResponseWriter, r *http.Request) {
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
	db := database.DB

	var task models.Task
	if err := db.First(&task, uint(taskID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	var completedCount int64
	db.Model(&models.TaskCompletion{}).Where("task_id = ?", task.ID).Count(&completedCount)
	var myCompletion int64
	db.Model(&models.TaskCompletion{}).Where("task_id = ? AND user_id = ?", task.ID, uid).Count(&myCompletion)
	var myPending int64
	db.Model(&models.Submission{}).Where("task_id = ? AND user_id = ? AND status = ?", task.ID, uid, models.SubmissionStatusPending).Count(&myPending)
	var myLike int64
	db.Model(&models.TaskLike{}).Where("task_id = ? AND user_id = ?", task.ID, uid).Count(&myLike)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"task":            task,
			"completed_count": completedCount,
			"completed":       myCompletion > 0,
			"pending":         myPending > 0,
			"liked":           myLike > 0,
		},
	})
}

// POST /api/tasks/{id}/like toggles the caller's like. The counter on the
// task row moves with atomic increments so concurrent toggles never lose
// updates.
func TaskLikeHandler(w http.ResponseWriter, r *http.Request) {
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
	db := database.DB

	var liked bool
	err = db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, uint(taskID)).Error; err != nil {
			return err
		}
		var existing models.TaskLike
		findErr := tx.Where("task_id = ? AND user_id = ?", task.ID, uid).First(&existing).Error
		if findErr == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
			return tx.Model(&models.Task{}).Where("id = ?", task.ID).
				UpdateColumn("likes", gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}
		like := models.TaskLike{TaskID: task.ID, UserID: uid}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
			return err
		}
		liked = true
		return tx.Model(&models.Task{}).Where("id = ?", task.ID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"liked": liked}})
}
