package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/taskhive/task-service/internal/models"
)

const taskColumns = `id, title, description, status, priority, due_date, created_by, assigned_to, tags, completed_at, created_at, updated_at`

// TaskFilter narrows and orders a task listing. A nil ViewerID lists tasks
// regardless of ownership; a set ViewerID restricts the listing to tasks the
// viewer created or is assigned to.
type TaskFilter struct {
	ViewerID  *int64
	CreatedBy *int64
	Status    string
	Priority  string
	SortBy    string
}

// sortColumns maps caller-supplied sort keys to columns. Anything outside
// this map falls back to newest-first.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"priority":  "priority",
	"status":    "status",
	"title":     "title",
}

func orderClause(sortBy string) string {
	direction := "ASC"
	if strings.HasPrefix(sortBy, "-") {
		direction = "DESC"
		sortBy = sortBy[1:]
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return "created_at DESC"
	}
	return column + " " + direction
}

func buildTaskQuery(filter TaskFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ViewerID != nil {
		p := arg(*filter.ViewerID)
		conditions = append(conditions, fmt.Sprintf("(created_by = %s OR assigned_to = %s)", p, p))
	}
	if filter.CreatedBy != nil {
		conditions = append(conditions, "created_by = "+arg(*filter.CreatedBy))
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = "+arg(filter.Status))
	}
	if filter.Priority != "" {
		conditions = append(conditions, "priority = "+arg(filter.Priority))
	}

	query := fmt.Sprintf(`SELECT %s FROM tasks`, taskColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + orderClause(filter.SortBy)
	return query, args
}

func scanTask(row *sql.Row) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.DueDate, &task.CreatedBy, &task.AssignedTo, pq.Array(&task.Tags),
		&task.CompletedAt, &task.CreatedAt, &task.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}
	return task, nil
}

// CreateTask creates a new task in the database
func (r *Repository) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (title, description, status, priority, due_date, created_by, assigned_to, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.CreatedBy, task.AssignedTo, pq.Array(task.Tags)).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindTaskByID retrieves a task by id, or nil when no task matches
func (r *Repository) FindTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)
	return scanTask(r.db.QueryRowContext(ctx, query, id))
}

// ListTasks retrieves the tasks matching filter
func (r *Repository) ListTasks(ctx context.Context, filter TaskFilter) ([]*models.Task, error) {
	query, args := buildTaskQuery(filter)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task := &models.Task{}
		err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
			&task.DueDate, &task.CreatedBy, &task.AssignedTo, pq.Array(&task.Tags),
			&task.CompletedAt, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask persists the mutable fields of task. Creator and creation
// timestamp are never written.
func (r *Repository) UpdateTask(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, due_date = $5,
		    assigned_to = $6, tags = $7, completed_at = $8, updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority, task.DueDate,
		task.AssignedTo, pq.Array(task.Tags), task.CompletedAt, task.ID).
		Scan(&task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", task.ID, err)
	}
	return nil
}

// DeleteTask removes a task by id
func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	query := `DELETE FROM tasks WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}
