package handler

import (
	"encoding/json"
	"net/http"

	"github.com/taskhive/task-service/internal/middleware"
	"github.com/taskhive/task-service/internal/service"
)

const defaultSort = "-createdAt"

func sortParam(r *http.Request) string {
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		return sortBy
	}
	return defaultSort
}

// CreateTask handles task creation
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input service.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.svc.CreateTask(r.Context(), middleware.UserFromRequest(r), input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Task created successfully",
		"task":    task,
	})
}

// ListTasks returns the tasks the caller created or is assigned to
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input := service.ListTasksInput{
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
		SortBy:   sortParam(r),
	}

	tasks, err := h.svc.ListTasks(r.Context(), middleware.UserFromRequest(r), input)
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

// GetTask returns a single task the caller may view
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskId")
	if !ok {
		writeFailure(w, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.svc.GetTask(r.Context(), middleware.UserFromRequest(r), taskID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"task":    task,
	})
}

// UpdateTask handles task updates
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskId")
	if !ok {
		writeFailure(w, http.StatusNotFound, "Task not found")
		return
	}

	var input service.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.svc.UpdateTask(r.Context(), middleware.UserFromRequest(r), taskID, input)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask handles task deletion
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskId")
	if !ok {
		writeFailure(w, http.StatusNotFound, "Task not found")
		return
	}

	if err := h.svc.DeleteTask(r.Context(), middleware.UserFromRequest(r), taskID); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Task deleted successfully",
	})
}

// CompleteTask marks a task as completed
func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "taskId")
	if !ok {
		writeFailure(w, http.StatusNotFound, "Task not found")
		return
	}

	task, err := h.svc.CompleteTask(r.Context(), middleware.UserFromRequest(r), taskID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Task marked as completed",
		"task":    task,
	})
}
