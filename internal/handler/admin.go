package handler

import (
	"net/http"
	"strconv"

	"github.com/taskhive/task-service/internal/service"
)

// AdminListTasks returns all tasks, optionally filtered by status,
// priority and creator
func (h *Handler) AdminListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input := service.AdminListTasksInput{
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
		SortBy:   sortParam(r),
	}
	if raw := query.Get("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "userId must be an integer")
			return
		}
		input.CreatedBy = &userID
	}

	tasks, err := h.svc.AdminListTasks(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(tasks),
		"tasks":   tasks,
	})
}

// AdminGetTask returns any task by id
func (h *Handler) AdminGetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskId")
	if !ok {
		writeFailure(w, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.svc.AdminGetTask(r.Context(), taskID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"task":    task,
	})
}

// AdminListTasksByUser returns the tasks created by one user
func (h *Handler) AdminListTasksByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeFailure(w, http.StatusNotFound, "User not found")
		return
	}

	query := r.URL.Query()
	input := service.AdminListTasksInput{
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
		SortBy:   sortParam(r),
	}

	tasks, err := h.svc.AdminListTasksByUser(r.Context(), userID, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(tasks),
		"tasks":   tasks,
	})
}

// AdminListUsers returns every user
func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.AdminListUsers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(users),
		"users":   users,
	})
}

// AdminGetUser returns a single user by id
func (h *Handler) AdminGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeFailure(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.svc.AdminGetUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"user":    user,
	})
}

// AdminStatistics returns aggregate task and user counts
func (h *Handler) AdminStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.AdminStatistics(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":    true,
		"statistics": stats,
	})
}
