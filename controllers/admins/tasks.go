package admins

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/royal450/DaillyEarners2/database"
	"github.com/royal450/DaillyEarners2/middleware"
	"github.com/royal450/DaillyEarners2/models"
	"github.com/royal450/DaillyEarners2/notifications"
	"github.com/royal450/DaillyEarners2/utils"

	"github.com/gorilla/mux"
)

type TaskRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	URL          string  `json:"url"`
	Steps        string  `json:"steps"`
	Instructions string  `json:"instructions"`
	TimeLimit    int     `json:"time_limit"`
}

// GET /api/admin/tasks
func GetTasks(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	q := db.Model(&models.Task{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var tasks []models.Task
	if err := q.Order("id DESC").Find(&tasks).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	// completion counts per task in one query
	counts := map[uint]int64{}
	rows, err := db.Model(&models.TaskCompletion{}).
		Select("task_id, COUNT(*)").Group("task_id").Rows()
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var taskID uint
			var n int64
			if scanErr := rows.Scan(&taskID, &n); scanErr == nil {
				counts[taskID] = n
			}
		}
	}

	resp := make([]map[string]interface{}, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, map[string]interface{}{
			"task":            t,
			"completed_count": counts[t.ID],
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: resp})
}

// POST /api/admin/tasks
func CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Price <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Price must be positive"})
		return
	}

	task := models.Task{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Price:        utils.Round2(req.Price),
		URL:          req.URL,
		Steps:        req.Steps,
		Instructions: req.Instructions,
		TimeLimit:    req.TimeLimit,
		Status:       models.TaskStatusActive,
	}
	if err := database.DB.Create(&task).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	notifications.AdminAction("task created", task.ID)
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Task created", Data: task})
}

// PUT /api/admin/tasks/{id}
func UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}
	var req TaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Price <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Price must be positive"})
		return
	}

	res := database.DB.Model(&models.Task{}).Where("id = ?", uint(id)).Updates(map[string]interface{}{
		"title":        strings.TrimSpace(req.Title),
		"description":  req.Description,
		"price":        utils.Round2(req.Price),
		"url":          req.URL,
		"steps":        req.Steps,
		"instructions": req.Instructions,
		"time_limit":   req.TimeLimit,
	})
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task updated"})
}

// PUT /api/admin/tasks/{id}/toggle flips a task between active and inactive.
// Existing submissions stay reviewable either way.
func ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}
	db := database.DB

	var task models.Task
	if err := db.First(&task, uint(id)).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
		return
	}

	newStatus := models.TaskStatusActive
	if task.Status == models.TaskStatusActive {
		newStatus = models.TaskStatusInactive
	}
	if err := db.Model(&models.Task{}).Where("id = ?", task.ID).UpdateColumn("status", newStatus).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task " + newStatus, Data: map[string]interface{}{"status": newStatus}})
}

// DELETE /api/admin/tasks/{id}
func DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}

	// Refuse while reviews are outstanding, the reviewer needs the task row.
	var pendingCount int64
	database.DB.Model(&models.Submission{}).Where("task_id = ? AND status = ?", uint(id), models.SubmissionStatusPending).Count(&pendingCount)
	if pendingCount > 0 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Task has pending submissions, review them first"})
		return
	}

	res := database.DB.Delete(&models.Task{}, uint(id))
	if res.Error != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Database error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
		return
	}

	notifications.AdminAction("task deleted", uint(id))
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task deleted"})
}
