package service

import "github.com/taskhive/task-service/internal/models"

// canRead reports whether user may view task: creators and assignees see
// their own tasks, admins see everything.
func canRead(user *models.User, task *models.Task) bool {
	if user.IsAdmin() {
		return true
	}
	if task.CreatedBy == user.ID {
		return true
	}
	return task.AssignedTo != nil && *task.AssignedTo == user.ID
}

// canMutate reports whether user may change or delete task. Only the
// creator may; role grants nothing here, so admins stay read-only and
// assignees get visibility without write access.
func canMutate(user *models.User, task *models.Task) bool {
	return task.CreatedBy == user.ID
}
