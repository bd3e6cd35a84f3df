package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/taskhive/task-service/internal/models"
	"github.com/taskhive/task-service/internal/repository"
	"github.com/taskhive/task-service/internal/validation"
)

// CreateTaskInput carries a task creation request. Any creator reference in
// the payload is ignored; the creator is always the acting user.
type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  *int64     `json:"assignedTo"`
	Tags        []string   `json:"tags"`
}

func (in *CreateTaskInput) validate() error {
	v := validation.New()
	v.Check(in.Title != "", "title", "is required")
	v.Check(in.Title == "" || utf8.RuneCountInString(in.Title) >= 3, "title", "must be at least 3 characters")
	v.Check(utf8.RuneCountInString(in.Title) <= 200, "title", "cannot exceed 200 characters")
	v.Check(utf8.RuneCountInString(in.Description) <= 2000, "description", "cannot exceed 2000 characters")
	v.Check(in.Status == "" || models.ValidStatus(in.Status), "status", "must be one of pending, in-progress, completed")
	v.Check(in.Priority == "" || models.ValidPriority(in.Priority), "priority", "must be one of low, medium, high")
	for _, tag := range in.Tags {
		v.Check(tag != "", "tags", "must not contain empty values")
	}
	if !v.Valid() {
		return NewError(ErrInvalidInput, v.Message())
	}
	return nil
}

// UpdateTaskInput carries a task update; nil fields are left untouched
type UpdateTaskInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  *int64     `json:"assignedTo"`
	Tags        []string   `json:"tags"`
}

func (in *UpdateTaskInput) validate() error {
	v := validation.New()
	if in.Title != nil {
		v.Check(utf8.RuneCountInString(*in.Title) >= 3, "title", "must be at least 3 characters")
		v.Check(utf8.RuneCountInString(*in.Title) <= 200, "title", "cannot exceed 200 characters")
	}
	if in.Description != nil {
		v.Check(utf8.RuneCountInString(*in.Description) <= 2000, "description", "cannot exceed 2000 characters")
	}
	if in.Status != nil {
		v.Check(models.ValidStatus(*in.Status), "status", "must be one of pending, in-progress, completed")
	}
	if in.Priority != nil {
		v.Check(models.ValidPriority(*in.Priority), "priority", "must be one of low, medium, high")
	}
	for _, tag := range in.Tags {
		v.Check(tag != "", "tags", "must not contain empty values")
	}
	if !v.Valid() {
		return NewError(ErrInvalidInput, v.Message())
	}
	return nil
}

// ListTasksInput narrows and orders a self-service task listing
type ListTasksInput struct {
	Status   string
	Priority string
	SortBy   string
}

// CreateTask creates a task owned by user
func (s *Service) CreateTask(ctx context.Context, user *models.User, in CreateTaskInput) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedBy:   user.ID,
		AssignedTo:  in.AssignedTo,
		Tags:        in.Tags,
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infof("Task %d created by user %d", task.ID, user.ID)
	return task, nil
}

// ListTasks retrieves the tasks user created or is assigned to. The
// visibility filter is the access control for listings.
func (s *Service) ListTasks(ctx context.Context, user *models.User, in ListTasksInput) ([]*models.Task, error) {
	filter := repository.TaskFilter{
		ViewerID: &user.ID,
		Status:   in.Status,
		Priority: in.Priority,
		SortBy:   in.SortBy,
	}
	return s.tasks.ListTasks(ctx, filter)
}

// GetTask retrieves a single task user is allowed to view
func (s *Service) GetTask(ctx context.Context, user *models.User, taskID int64) (*models.Task, error) {
	task, err := s.tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, NewError(ErrNotFound, "Task not found")
	}
	if !canRead(user, task) {
		return nil, NewError(ErrForbidden, "Not authorized to access this task")
	}
	return task, nil
}

// UpdateTask applies the provided fields to a task user created
func (s *Service) UpdateTask(ctx context.Context, user *models.User, taskID int64, in UpdateTaskInput) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, NewError(ErrNotFound, "Task not found")
	}
	if !canMutate(user, task) {
		return nil, NewError(ErrForbidden, "Not authorized to update this task")
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.AssignedTo != nil {
		task.AssignedTo = in.AssignedTo
	}
	if in.Tags != nil {
		task.Tags = in.Tags
	}

	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infof("Task %d updated by user %d", task.ID, user.ID)
	return task, nil
}

// DeleteTask removes a task user created
func (s *Service) DeleteTask(ctx context.Context, user *models.User, taskID int64) error {
	task, err := s.tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return NewError(ErrNotFound, "Task not found")
	}
	if !canMutate(user, task) {
		return NewError(ErrForbidden, "Not authorized to delete this task")
	}

	if err := s.tasks.DeleteTask(ctx, task.ID); err != nil {
		return err
	}

	s.log.Infof("Task %d deleted by user %d", task.ID, user.ID)
	return nil
}

// CompleteTask marks a task user created as completed, stamping the
// completion time regardless of any caller-supplied status or timestamp
func (s *Service) CompleteTask(ctx context.Context, user *models.User, taskID int64) (*models.Task, error) {
	task, err := s.tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, NewError(ErrNotFound, "Task not found")
	}
	if !canMutate(user, task) {
		return nil, NewError(ErrForbidden, "Not authorized to complete this task")
	}

	now := time.Now()
	task.Status = models.StatusCompleted
	task.CompletedAt = &now

	if err := s.tasks.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infof("Task %d completed by user %d", task.ID, user.ID)
	return task, nil
}
