package service

import (
	"context"

	"github.com/taskhive/task-service/internal/models"
	"github.com/taskhive/task-service/internal/repository"
)

// AdminListTasksInput narrows and orders an admin task listing
type AdminListTasksInput struct {
	Status    string
	Priority  string
	CreatedBy *int64
	SortBy    string
}

// AdminListTasks retrieves tasks across all users
func (s *Service) AdminListTasks(ctx context.Context, in AdminListTasksInput) ([]*models.Task, error) {
	filter := repository.TaskFilter{
		CreatedBy: in.CreatedBy,
		Status:    in.Status,
		Priority:  in.Priority,
		SortBy:    in.SortBy,
	}
	return s.tasks.ListTasks(ctx, filter)
}

// AdminGetTask retrieves any task by id without an ownership check
func (s *Service) AdminGetTask(ctx context.Context, taskID int64) (*models.Task, error) {
	task, err := s.tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, NewError(ErrNotFound, "Task not found")
	}
	return task, nil
}

// AdminListTasksByUser retrieves the tasks created by a specific user
func (s *Service) AdminListTasksByUser(ctx context.Context, userID int64, in AdminListTasksInput) ([]*models.Task, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewError(ErrNotFound, "User not found")
	}
	in.CreatedBy = &userID
	return s.AdminListTasks(ctx, in)
}

// AdminListUsers retrieves every user
func (s *Service) AdminListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.ListUsers(ctx)
}

// AdminGetUser retrieves a user by id
func (s *Service) AdminGetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewError(ErrNotFound, "User not found")
	}
	return user, nil
}

// AdminStatistics computes aggregate task and user counts
func (s *Service) AdminStatistics(ctx context.Context) (*models.Statistics, error) {
	return s.tasks.Statistics(ctx)
}
